package engine

import (
	"testing"

	"github.com/emberforge/ember/component"
	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/physics"
)

func newTestWorld() (*World, *physics.Mock) {
	mock := physics.NewMock()
	return NewWorld(mock, nil), mock
}

func TestPhysicsInitDeferredUntilComposed(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	w.Components.Colliders.Set(e, component.NewBoxCollider(2, 2))
	if mock.BodyCreateCalls() != 0 {
		t.Fatal("body created before transform existed")
	}

	w.Components.Transforms.Set(e, component.NewTransform(10, 5))
	if mock.StaticCalls != 1 {
		t.Fatalf("StaticCalls = %d, want 1 implicit body", mock.StaticCalls)
	}
	if mock.BoxShapeCalls != 1 {
		t.Fatalf("BoxShapeCalls = %d, want 1", mock.BoxShapeCalls)
	}

	col, _ := w.Components.Colliders.Get(e)
	if !col.Initialized {
		t.Error("collider not marked initialized")
	}
	if col.Owner != component.OwnerColliderImplicit {
		t.Errorf("Owner = %v, want implicit", col.Owner)
	}
}

func TestPhysicsInitWithRigidbody(t *testing.T) {
	w, mock := newTestWorld()

	e := With(With(With(w.NewEntity(),
		w.Components.Transforms, component.NewTransform(3, 4)),
		w.Components.Rigidbodies, component.NewRigidbody(component.BodyDynamic)),
		w.Components.Colliders, component.NewCircleCollider(1)).
		Build()

	if mock.DynamicCalls != 1 {
		t.Fatalf("DynamicCalls = %d, want 1", mock.DynamicCalls)
	}
	if mock.StaticCalls != 0 {
		t.Errorf("StaticCalls = %d, want 0 (rigidbody owns the body)", mock.StaticCalls)
	}
	if mock.CircleCalls != 1 {
		t.Errorf("CircleCalls = %d, want 1", mock.CircleCalls)
	}

	rb, _ := w.Components.Rigidbodies.Get(e)
	if !rb.Initialized || rb.Body == 0 {
		t.Fatalf("rigidbody not initialized: %+v", rb)
	}
	col, _ := w.Components.Colliders.Get(e)
	if col.Owner != component.OwnerRigidbody {
		t.Errorf("collider owner = %v, want rigidbody", col.Owner)
	}
	if mock.ShapeBody[col.Shape] != rb.Body {
		t.Error("shape attached to a different body than the rigidbody's")
	}
}

func TestPhysicsInitIdempotent(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	w.Components.Transforms.Set(e, component.NewTransform(0, 0))
	w.Components.Rigidbodies.Set(e, component.NewRigidbody(component.BodyDynamic))
	w.Components.Colliders.Set(e, component.NewBoxCollider(1, 1))

	// Redundant invocations from any add path must be no-ops.
	w.TryInitPhysics(e)
	w.TryInitPhysics(e)

	if mock.BodyCreateCalls() != 1 {
		t.Errorf("BodyCreateCalls = %d, want exactly 1", mock.BodyCreateCalls())
	}
	if mock.ShapeCalls() != 1 {
		t.Errorf("ShapeCalls = %d, want exactly 1", mock.ShapeCalls())
	}
}

func TestPhysicsInitConvertsToSimSpace(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	col := component.NewBoxCollider(2, 2)
	col.Offset = core.Vec2{X: 1, Y: 2}
	w.Components.Colliders.Set(e, col)
	w.Components.Transforms.Set(e, component.NewTransform(10, 5))

	got, _ := w.Components.Colliders.Get(e)
	pos := mock.Position(got.Body)
	want := core.Vec2{X: 11, Y: -7} // screen (11,7) with Y negated
	if pos != want {
		t.Errorf("body created at %+v, want %+v", pos, want)
	}
}

func TestRigidbodyBodyIgnoresColliderOffset(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	col := component.NewBoxCollider(2, 2)
	col.Offset = core.Vec2{X: 5, Y: 0}
	w.Components.Transforms.Set(e, component.NewTransform(10, 20))
	w.Components.Rigidbodies.Set(e, component.NewRigidbody(component.BodyDynamic))
	w.Components.Colliders.Set(e, col)

	// The fixed-tick sync copies the body pose back into the transform,
	// so an offset baked into the body would teleport the entity.
	rb, _ := w.Components.Rigidbodies.Get(e)
	if pos := mock.Position(rb.Body); pos != (core.Vec2{X: 10, Y: -20}) {
		t.Errorf("rigidbody body created at %+v, want transform position {10 -20}", pos)
	}
}

func TestRemovalDestroysOwnedBodies(t *testing.T) {
	w, mock := newTestWorld()

	// Implicit body dies with its collider.
	implicit := With(With(w.NewEntity(),
		w.Components.Transforms, component.NewTransform(0, 0)),
		w.Components.Colliders, component.NewBoxCollider(1, 1)).
		Build()
	col, _ := w.Components.Colliders.Get(implicit)
	w.Components.Colliders.Remove(implicit)
	if mock.Alive(col.Body) {
		t.Error("implicit body survived collider removal")
	}

	// Rigidbody-owned body dies with the rigidbody, and the collider's
	// removal must not double-destroy it.
	owned := With(With(With(w.NewEntity(),
		w.Components.Transforms, component.NewTransform(0, 0)),
		w.Components.Rigidbodies, component.NewRigidbody(component.BodyDynamic)),
		w.Components.Colliders, component.NewBoxCollider(1, 1)).
		Build()
	rb, _ := w.Components.Rigidbodies.Get(owned)

	destroys := mock.DestroyCalls
	w.DestroyEntity(owned)
	if mock.Alive(rb.Body) {
		t.Error("rigidbody body survived entity destruction")
	}
	if mock.DestroyCalls != destroys+1 {
		t.Errorf("DestroyCalls delta = %d, want 1", mock.DestroyCalls-destroys)
	}
}

func TestCharacterBodyInitNeedsTransform(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	w.Components.Characters.Set(e, component.NewCharacterBody(1, 2))
	if cb, _ := w.Components.Characters.Get(e); cb.Initialized {
		t.Fatal("character initialized without a transform")
	}

	w.Components.Transforms.Set(e, component.NewTransform(5, 5))
	if cb, _ := w.Components.Characters.Get(e); !cb.Initialized {
		t.Fatal("character not initialized once transform exists")
	}

	// Controllers are backend-free.
	if mock.BodyCreateCalls() != 0 {
		t.Errorf("character init created %d backend bodies", mock.BodyCreateCalls())
	}
}

func TestEntityPhysicsWrappersSoftFail(t *testing.T) {
	w, mock := newTestWorld()
	e := w.CreateEntity()

	// No resolved body anywhere: all wrappers are silent no-ops.
	w.SetVelocity(e, core.Vec2{X: 1})
	w.ApplyForce(e, core.Vec2{X: 1})
	w.ApplyImpulse(e, core.Vec2{X: 1})
	w.SetPosition(e, core.Vec2{X: 1})
	if v := w.Velocity(e); !v.IsZero() {
		t.Errorf("Velocity on bodiless entity = %+v", v)
	}
	if p := w.Position(e); !p.IsZero() {
		t.Errorf("Position on bodiless entity = %+v", p)
	}
	if mock.BodyCreateCalls() != 0 {
		t.Error("wrapper calls created bodies")
	}
}

func TestEntityPhysicsWrappersRoundTrip(t *testing.T) {
	w, _ := newTestWorld()

	e := With(With(With(w.NewEntity(),
		w.Components.Transforms, component.NewTransform(0, 0)),
		w.Components.Rigidbodies, component.NewRigidbody(component.BodyDynamic)),
		w.Components.Colliders, component.NewBoxCollider(1, 1)).
		Build()

	w.SetVelocity(e, core.Vec2{X: 3, Y: -4})
	if got := w.Velocity(e); got != (core.Vec2{X: 3, Y: -4}) {
		t.Errorf("velocity round trip = %+v", got)
	}

	w.SetPosition(e, core.Vec2{X: 8, Y: 6})
	if got := w.Position(e); got != (core.Vec2{X: 8, Y: 6}) {
		t.Errorf("position round trip = %+v", got)
	}
}

func TestWorldClear(t *testing.T) {
	w, mock := newTestWorld()
	for i := 0; i < 3; i++ {
		With(With(w.NewEntity(),
			w.Components.Transforms, component.NewTransform(float64(i), 0)),
			w.Components.Colliders, component.NewBoxCollider(1, 1)).
			Build()
	}
	if w.EntityCount() != 3 {
		t.Fatalf("EntityCount = %d, want 3", w.EntityCount())
	}

	w.Clear()
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount after Clear = %d", w.EntityCount())
	}
	if mock.DestroyCalls != 3 {
		t.Errorf("DestroyCalls = %d, want 3", mock.DestroyCalls)
	}
}
