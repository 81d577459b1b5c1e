package system

import (
	"sort"

	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/display"
	"github.com/emberforge/ember/engine"
)

// SpriteRender draws visible sprites through the display backend, lowest
// layer first. With a camera attached, transform positions are world space;
// without one they are raw screen coordinates.
type SpriteRender struct {
	Display display.Backend
	Camera  *display.Camera
}

// NewSpriteRender creates the sprite render system.
func NewSpriteRender(d display.Backend) *SpriteRender {
	return &SpriteRender{Display: d}
}

type drawItem struct {
	pos   core.Vec2
	r     rune
	fg    core.RGB
	layer int
	order int
}

// Render implements the layered sprite pass.
func (s *SpriteRender) Render(w *engine.World) {
	cs := &w.Components
	entities := cs.Sprites.Entities()
	items := make([]drawItem, 0, len(entities))

	for i, e := range entities {
		sp, ok := cs.Sprites.Get(e)
		if !ok || !sp.Visible {
			continue
		}
		tr, ok := cs.Transforms.Get(e)
		if !ok {
			continue
		}
		pos := tr.Position
		if s.Camera != nil {
			pos = s.Camera.WorldToScreen(pos)
		}
		items = append(items, drawItem{pos: pos, r: sp.Rune, fg: sp.FG, layer: sp.Layer, order: i})
	}

	// Stable by layer: equal layers keep store order so z-fighting sprites
	// do not flicker between frames.
	sort.Slice(items, func(a, b int) bool {
		if items[a].layer != items[b].layer {
			return items[a].layer < items[b].layer
		}
		return items[a].order < items[b].order
	})

	for _, it := range items {
		s.Display.DrawText(it.pos.X, it.pos.Y, string(it.r), it.fg)
	}
}
