// Package display defines the presentation boundary: windowing, per-frame
// input polling, draw primitives and frame presentation. The engine core
// only sees the Backend interface; the shipped implementation renders to a
// terminal through tcell.
package display

import "github.com/emberforge/ember/core"

// Options carries backend-specific open parameters.
type Options struct {
	// DesignWidth/DesignHeight enable letterboxed scaling: draw calls use
	// design coordinates and the backend centers them in the real surface.
	DesignWidth  int
	DesignHeight int
	Mode         string
}

// Backend is the opaque presentation interface.
type Backend interface {
	Init(width, height int, title string, opts Options) error
	Shutdown()

	// Update polls input and returns false on a close request.
	Update() bool
	// Present flushes the frame to the surface.
	Present()
	Clear(c core.RGB)

	// FrameTime returns the wall-clock seconds elapsed since the previous
	// call, the raw delta fed into the engine's time state.
	FrameTime() float64

	Input() *Input
	Size() (int, int)

	DrawRect(x, y, w, h float64, c core.RGB, filled bool)
	DrawRectRot(x, y, w, h, rot float64, c core.RGB)
	DrawCircle(x, y, r float64, c core.RGB, filled bool)
	DrawLine(x1, y1, x2, y2 float64, c core.RGB)
	DrawText(x, y float64, s string, c core.RGB)
}
