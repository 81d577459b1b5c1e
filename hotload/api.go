// Package hotload hosts a dynamically loadable game module beside the
// engine. The host owns a persistent game-state block that survives module
// swaps; the module owns no state that outlives a reload except what it
// keeps inside that block.
package hotload

import (
	"errors"
	"unsafe"

	"github.com/emberforge/ember/engine"
)

// API is the resolved entry-point table of a loaded module. Init and Update
// are mandatory; the rest are capability-absent when nil and must be
// nil-checked before calling.
//
// The state pointer is the host-owned block (nil when the module reports a
// zero state size). The same block is passed across every generation.
type API struct {
	StateSize func() int
	Init      func(state unsafe.Pointer, eng *engine.Engine)
	Update    func(state unsafe.Pointer, eng *engine.Engine, dt float64)
	Render    func(state unsafe.Pointer, eng *engine.Engine)
	Shutdown  func(state unsafe.Pointer, eng *engine.Engine)
	OnReload  func(state unsafe.Pointer, eng *engine.Engine)
}

// Valid reports whether the mandatory entry points are present.
func (a API) Valid() bool {
	return a.Init != nil && a.Update != nil
}

var (
	// ErrNotLoaded is returned by operations that need a loaded module.
	ErrNotLoaded = errors.New("hotload: no module loaded")
	// ErrMissingEntry is returned when a module lacks a mandatory entry point.
	ErrMissingEntry = errors.New("hotload: missing required entry point")
)

// Loader resolves a module file into an API table. The production loader
// uses Go plugins; tests substitute in-memory loaders.
type Loader interface {
	Load(path string) (API, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (API, error)

// Load implements Loader.
func (f LoaderFunc) Load(path string) (API, error) {
	return f(path)
}
