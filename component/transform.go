package component

import "github.com/emberforge/ember/core"

// TransformComponent holds an entity's 2D placement in screen space (Y-down).
// For entities with a rigidbody or character body it is overwritten every
// fixed tick by the physics sync; otherwise game code mutates it freely.
type TransformComponent struct {
	Position core.Vec2
	Rotation float64 // radians
	Scale    core.Vec2
}

// NewTransform creates a transform at (x, y) with unit scale.
func NewTransform(x, y float64) TransformComponent {
	return TransformComponent{
		Position: core.Vec2{X: x, Y: y},
		Scale:    core.Vec2{X: 1, Y: 1},
	}
}
