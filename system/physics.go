// Package system ships the built-in engine systems: physics stepping and
// transform sync, the kinematic character mover, animation playback, sprite
// rendering and the debug overlay. Games register them on the scheduler
// through the engine; none are mandatory.
package system

import (
	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/engine"
	"github.com/emberforge/ember/physics"
)

// Physics steps the backend once per fixed tick and copies body poses back
// into ECS transforms for every initialized rigidbody. Runs in the fixed
// update phase; registering it anywhere else breaks determinism.
type Physics struct {
	Substeps int
}

// NewPhysics creates the physics step system.
func NewPhysics(substeps int) *Physics {
	if substeps <= 0 {
		substeps = 4
	}
	return &Physics{Substeps: substeps}
}

// Update implements the fixed-tick body step and transform sync.
func (s *Physics) Update(w *engine.World, dt float64) {
	w.Physics.Step(dt, s.Substeps)

	cs := &w.Components
	for _, e := range cs.Rigidbodies.Entities() {
		rb, ok := cs.Rigidbodies.Get(e)
		if !ok || !rb.Initialized {
			continue
		}
		pos := physics.ToScreen(w.Physics.Position(rb.Body))
		rot := physics.ToScreenAngle(w.Physics.Rotation(rb.Body))
		cs.Transforms.Update(e, func(t *component.TransformComponent) {
			t.Position = pos
			t.Rotation = rot
		})
	}
}
