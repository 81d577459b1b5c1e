package component

import "github.com/emberforge/ember/core"

// SpriteComponent is the drawable cell for an entity on a terminal backend.
type SpriteComponent struct {
	Rune    rune
	FG      core.RGB
	Layer   int // higher draws later
	Visible bool
}

// NewSprite creates a visible sprite.
func NewSprite(r rune, fg core.RGB) SpriteComponent {
	return SpriteComponent{Rune: r, FG: fg, Visible: true}
}
