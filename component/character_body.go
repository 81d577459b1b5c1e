package component

import "github.com/emberforge/ember/core"

// CharacterBodyComponent is an independent kinematic capsule controller.
// It owns no backend body; the capsule geometry is value data rebuilt from
// Width/Height each tick, so resizing takes effect immediately.
//
// Velocity is screen space (Y-down). The contact flags are recomputed every
// physics tick by the mover system.
type CharacterBodyComponent struct {
	Width  float64
	Height float64

	Velocity core.Vec2

	OnFloor   bool
	OnWall    bool
	OnCeiling bool

	Initialized bool
}

// NewCharacterBody creates a capsule controller declaration.
func NewCharacterBody(width, height float64) CharacterBodyComponent {
	return CharacterBodyComponent{Width: width, Height: height}
}
