package hotload

import (
	"fmt"
	"plugin"
	"unsafe"

	"github.com/emberforge/ember/engine"
)

// Module symbol names. A game module is a Go plugin exporting these at
// package level; GameInit and GameUpdate are mandatory.
const (
	symStateSize = "GameStateSize"
	symInit      = "GameInit"
	symUpdate    = "GameUpdate"
	symRender    = "GameRender"
	symShutdown  = "GameShutdown"
	symOnReload  = "GameOnReload"
)

// PluginLoader resolves modules through the stdlib plugin package.
// Plugins can never be unloaded and a pluginpath can only be opened once
// per process, which is why the host always loads a fresh versioned side
// copy per generation.
type PluginLoader struct{}

// Load implements Loader.
func (PluginLoader) Load(path string) (API, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return API{}, fmt.Errorf("failed to open module %s: %w", path, err)
	}

	var api API

	if sym, err := p.Lookup(symStateSize); err == nil {
		fn, ok := sym.(func() int)
		if !ok {
			return API{}, fmt.Errorf("%s has wrong signature", symStateSize)
		}
		api.StateSize = fn
	}

	initSym, err := p.Lookup(symInit)
	if err != nil {
		return API{}, fmt.Errorf("%w: %s", ErrMissingEntry, symInit)
	}
	initFn, ok := initSym.(func(unsafe.Pointer, *engine.Engine))
	if !ok {
		return API{}, fmt.Errorf("%s has wrong signature", symInit)
	}
	api.Init = initFn

	updateSym, err := p.Lookup(symUpdate)
	if err != nil {
		return API{}, fmt.Errorf("%w: %s", ErrMissingEntry, symUpdate)
	}
	updateFn, ok := updateSym.(func(unsafe.Pointer, *engine.Engine, float64))
	if !ok {
		return API{}, fmt.Errorf("%s has wrong signature", symUpdate)
	}
	api.Update = updateFn

	if sym, err := p.Lookup(symRender); err == nil {
		if fn, ok := sym.(func(unsafe.Pointer, *engine.Engine)); ok {
			api.Render = fn
		}
	}
	if sym, err := p.Lookup(symShutdown); err == nil {
		if fn, ok := sym.(func(unsafe.Pointer, *engine.Engine)); ok {
			api.Shutdown = fn
		}
	}
	if sym, err := p.Lookup(symOnReload); err == nil {
		if fn, ok := sym.(func(unsafe.Pointer, *engine.Engine)); ok {
			api.OnReload = fn
		}
	}

	return api, nil
}
