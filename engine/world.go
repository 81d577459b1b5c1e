package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/physics"
)

// World owns the component stores and one physics backend instance, and
// hosts the auto-physics-initialization rule: adding components lazily
// creates backend bodies, removing them destroys bodies. The rule is wired
// into the store hooks, so any add path (direct Set, builder) triggers it.
type World struct {
	mu           sync.Mutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	Components ComponentStore
	Physics    physics.Backend

	log *zap.Logger
}

// NewWorld creates a world over the given physics backend.
func NewWorld(backend physics.Backend, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Components:   newComponentStore(),
		Physics:      backend,
		log:          log,
	}

	// Composition hooks: every add path that could complete the
	// collider+transform(+rigidbody) set re-runs the init rule; the rule
	// itself is idempotent so redundant invocations are no-ops.
	cs := &w.Components
	cs.Colliders.OnAdd(w.TryInitPhysics)
	cs.Rigidbodies.OnAdd(w.TryInitPhysics)
	cs.Transforms.OnAdd(func(e core.Entity) {
		w.TryInitPhysics(e)
		w.TryInitCharacterBody(e)
	})
	cs.Characters.OnAdd(w.TryInitCharacterBody)

	cs.Rigidbodies.OnRemove(func(e core.Entity, rb component.RigidbodyComponent) {
		if rb.Initialized {
			w.Physics.DestroyBody(rb.Body)
			w.log.Debug("destroyed rigidbody", zap.Uint64("entity", uint64(e)), zap.Uint64("body", uint64(rb.Body)))
		}
	})
	cs.Colliders.OnRemove(func(e core.Entity, c component.ColliderComponent) {
		if c.Initialized && c.Owner == component.OwnerColliderImplicit {
			w.Physics.DestroyBody(c.Body)
			w.log.Debug("destroyed implicit body", zap.Uint64("entity", uint64(e)), zap.Uint64("body", uint64(c.Body)))
		}
	})

	return w
}

// CreateEntity reserves a new entity ID.
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes all components associated with an entity.
// Removal hooks fire, so any backend bodies the entity owned are destroyed.
func (w *World) DestroyEntity(e core.Entity) {
	cs := &w.Components
	cs.Rigidbodies.Remove(e)
	cs.Colliders.Remove(e)
	cs.Characters.Remove(e)
	cs.Transforms.Remove(e)
	cs.Sprites.Remove(e)
	cs.Animators.Remove(e)

	w.mu.Lock()
	delete(w.alive, e)
	w.mu.Unlock()
}

// Clear destroys every entity in the world.
func (w *World) Clear() {
	w.mu.Lock()
	entities := make([]core.Entity, 0, len(w.alive))
	for e := range w.alive {
		entities = append(entities, e)
	}
	w.mu.Unlock()

	for _, e := range entities {
		w.DestroyEntity(e)
	}
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.alive)
}

// TryInitPhysics creates the backend body and shape for an entity once its
// collider and transform both exist. Safe to call redundantly from any
// component-add call site; all repeated invocations are no-ops.
func (w *World) TryInitPhysics(e core.Entity) {
	cs := &w.Components

	col, ok := cs.Colliders.Get(e)
	if !ok {
		return // deferred until a collider exists
	}
	tr, ok := cs.Transforms.Get(e)
	if !ok {
		return // deferred until a transform exists
	}
	if col.Initialized {
		return
	}

	var target physics.BodyID
	var owner component.BodyOwner

	if rb, hasRB := cs.Rigidbodies.Get(e); hasRB {
		if rb.Initialized {
			// Another path already created the body and attached the
			// shape; bail out rather than attach a second shape.
			return
		}
		// The body sits exactly at the transform: the fixed-tick sync
		// copies the body pose straight back, so any offset baked in
		// here would teleport the entity on the first tick.
		simPos := physics.ToSim(tr.Position)

		var body physics.BodyID
		switch rb.Type {
		case component.BodyDynamic:
			body = w.Physics.CreateDynamicBody(simPos, rb.GravityScale)
		case component.BodyKinematic:
			body = w.Physics.CreateKinematicBody(simPos)
		default:
			body = w.Physics.CreateStaticBody(simPos)
		}
		if rb.FixedRotation {
			w.Physics.SetFixedRotation(body, true)
		}
		cs.Rigidbodies.Update(e, func(r *component.RigidbodyComponent) {
			r.Body = body
			r.Initialized = true
		})
		target = body
		owner = component.OwnerRigidbody
	} else {
		// No rigidbody: the collider owns an implicit static body. Nothing
		// syncs back into the transform, so the offset goes into the body
		// position directly.
		target = w.Physics.CreateStaticBody(physics.ToSim(tr.Position.Add(col.Offset)))
		owner = component.OwnerColliderImplicit
	}

	var shape physics.ShapeID
	switch col.Kind {
	case component.ShapeCircle:
		shape = w.Physics.AddCircleShape(target, col.Radius, col.Material())
	default:
		shape = w.Physics.AddBoxShape(target, col.Width/2, col.Height/2, col.Material())
	}

	cs.Colliders.Update(e, func(c *component.ColliderComponent) {
		c.Shape = shape
		c.Owner = owner
		if owner == component.OwnerColliderImplicit {
			c.Body = target
		}
		c.Initialized = true
	})

	w.log.Debug("initialized physics",
		zap.Uint64("entity", uint64(e)),
		zap.Uint64("body", uint64(target)),
		zap.Bool("implicit", owner == component.OwnerColliderImplicit))
}

// TryInitCharacterBody marks a capsule controller ready once its character
// body and transform both exist. The capsule geometry itself is value data
// rebuilt from Width/Height every tick by the mover system, so size changes
// need no re-init.
func (w *World) TryInitCharacterBody(e core.Entity) {
	cs := &w.Components
	cb, ok := cs.Characters.Get(e)
	if !ok {
		return
	}
	if !cs.Transforms.Has(e) {
		return
	}
	if cb.Initialized {
		return
	}
	cs.Characters.Update(e, func(c *component.CharacterBodyComponent) {
		c.Initialized = true
	})
}

// resolveBody returns the authoritative backend body for an entity:
// initialized rigidbody first, then a collider-owned implicit body.
func (w *World) resolveBody(e core.Entity) (physics.BodyID, bool) {
	if rb, ok := w.Components.Rigidbodies.Get(e); ok && rb.Initialized {
		return rb.Body, true
	}
	if c, ok := w.Components.Colliders.Get(e); ok && c.Initialized && c.Owner == component.OwnerColliderImplicit {
		return c.Body, true
	}
	return 0, false
}

// Entity-level physics wrappers. All positions and vectors are screen space.
// Calls against entities with no resolved body are deliberate no-ops so game
// code can call them speculatively.

// SetVelocity sets the linear velocity of an entity's body.
func (w *World) SetVelocity(e core.Entity, v core.Vec2) {
	if body, ok := w.resolveBody(e); ok {
		w.Physics.SetLinearVelocity(body, physics.ToSim(v))
	}
}

// Velocity returns the linear velocity of an entity's body, or zero.
func (w *World) Velocity(e core.Entity) core.Vec2 {
	if body, ok := w.resolveBody(e); ok {
		return physics.ToScreen(w.Physics.LinearVelocity(body))
	}
	return core.Vec2{}
}

// ApplyForce accumulates a force on an entity's body over the next step.
func (w *World) ApplyForce(e core.Entity, f core.Vec2) {
	if body, ok := w.resolveBody(e); ok {
		w.Physics.ApplyForce(body, physics.ToSim(f))
	}
}

// ApplyImpulse applies an instant velocity change to an entity's body.
func (w *World) ApplyImpulse(e core.Entity, imp core.Vec2) {
	if body, ok := w.resolveBody(e); ok {
		w.Physics.ApplyImpulse(body, physics.ToSim(imp))
	}
}

// SetPosition teleports an entity's body.
func (w *World) SetPosition(e core.Entity, pos core.Vec2) {
	if body, ok := w.resolveBody(e); ok {
		w.Physics.SetPosition(body, physics.ToSim(pos))
	}
}

// Position returns the body position of an entity, or zero.
func (w *World) Position(e core.Entity) core.Vec2 {
	if body, ok := w.resolveBody(e); ok {
		return physics.ToScreen(w.Physics.Position(body))
	}
	return core.Vec2{}
}

// Raycast sweeps a ray through the physics backend. Arguments and results
// are screen space.
func (w *World) Raycast(origin, translation core.Vec2) (physics.RayHit, bool) {
	hit, ok := w.Physics.Raycast(physics.ToSim(origin), physics.ToSim(translation))
	if !ok {
		return physics.RayHit{}, false
	}
	hit.Point = physics.ToScreen(hit.Point)
	hit.Normal = physics.ToScreen(hit.Normal)
	return hit, true
}
