package display

import "github.com/emberforge/ember/core"

// Camera maps between world space and screen space for render systems.
// Position is the world point at the viewport center.
type Camera struct {
	Position core.Vec2
	Zoom     float64
	Viewport core.Vec2 // screen size in pixels/cells
}

// ScreenToWorld converts a screen point under this camera to world space.
func (c Camera) ScreenToWorld(p core.Vec2) core.Vec2 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	centered := p.Sub(c.Viewport.Scale(0.5))
	return centered.Scale(1 / zoom).Add(c.Position)
}

// WorldToScreen converts a world point to screen space under this camera.
func (c Camera) WorldToScreen(p core.Vec2) core.Vec2 {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return p.Sub(c.Position).Scale(zoom).Add(c.Viewport.Scale(0.5))
}
