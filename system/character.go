package system

import (
	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/engine"
	"github.com/emberforge/ember/physics"
)

const (
	// moverIterations bounds the cast-clip-recast slide loop per tick.
	moverIterations = 4
	// floorNormalY is the minimum upward (sim space) normal component for a
	// contact to count as floor rather than wall. cos(45°).
	floorNormalY = 0.7
	// contactSkin inflates the contact probe so resting contacts register:
	// the cast stops a hair short of surfaces, which a plain overlap query
	// would miss.
	contactSkin = 2e-3
)

// Mover advances every initialized character body each fixed tick: apply
// gravity, sweep the capsule through the world, clip velocity against
// collected planes and slide along them, then publish contact flags.
//
// Character bodies own no backend body; the capsule is rebuilt from the
// component's Width/Height every tick, so geometry edits apply immediately.
type Mover struct {
	// Gravity is screen space (Y-down positive), matching the engine config.
	Gravity core.Vec2
}

// NewMover creates the character mover system.
func NewMover(gravity core.Vec2) *Mover {
	return &Mover{Gravity: gravity}
}

// Update implements the fixed-tick move-and-slide.
func (s *Mover) Update(w *engine.World, dt float64) {
	cs := &w.Components
	for _, e := range cs.Characters.Entities() {
		cb, ok := cs.Characters.Get(e)
		if !ok || !cb.Initialized {
			continue
		}
		tr, ok := cs.Transforms.Get(e)
		if !ok {
			continue
		}

		vel := physics.ToSim(cb.Velocity.Add(s.Gravity.Scale(dt)))
		cap := physics.NewCapsule(physics.ToSim(tr.Position), cb.Width, cb.Height)

		var onFloor, onWall, onCeiling bool
		remaining := 1.0

		for i := 0; i < moverIterations && remaining > 0; i++ {
			delta := vel.Scale(dt * remaining)
			if delta.IsZero() {
				break
			}

			frac := w.Physics.CastMover(cap, delta)
			cap.Center = cap.Center.Add(delta.Scale(frac))
			remaining *= 1 - frac

			probe := cap
			probe.Radius += contactSkin
			planes := w.Physics.CollideMover(probe)
			if len(planes) == 0 {
				break // moved the full distance with nothing to slide on
			}

			// Only true penetration gets positional correction; grazing
			// contacts from the inflated probe must not lift the capsule.
			if deep := w.Physics.CollideMover(cap); len(deep) > 0 {
				cap.Center = w.Physics.SolveMoverPenetration(cap, deep)
			}

			for _, p := range planes {
				switch {
				case p.Normal.Y > floorNormalY:
					onFloor = true
				case p.Normal.Y < -floorNormalY:
					onCeiling = true
				default:
					onWall = true
				}
			}

			vel = physics.ClipVelocity(vel, planes)
		}

		screenVel := physics.ToScreen(vel)
		screenPos := physics.ToScreen(cap.Center)

		cs.Characters.Update(e, func(c *component.CharacterBodyComponent) {
			c.Velocity = screenVel
			c.OnFloor = onFloor
			c.OnWall = onWall
			c.OnCeiling = onCeiling
		})
		cs.Transforms.Update(e, func(t *component.TransformComponent) {
			t.Position = screenPos
		})
	}
}
