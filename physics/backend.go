// Package physics defines the boundary to the rigid-body solver and ships a
// minimal built-in Space implementation of it. The engine only ever talks to
// the Backend interface; swapping in an external solver means implementing
// this interface and nothing else.
package physics

import "github.com/emberforge/ember/core"

// BodyID is an opaque handle to a backend body. Zero is never valid.
type BodyID uint64

// ShapeID is an opaque handle to a shape attached to a body. Zero is never valid.
type ShapeID uint64

// Material bundles the surface properties of a shape.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
	Sensor      bool
}

// RayHit describes the nearest intersection found by Raycast.
type RayHit struct {
	Point    core.Vec2
	Normal   core.Vec2
	Fraction float64
	Body     BodyID
}

// Plane is a collision plane collected by the mover. Normal points away from
// the obstacle toward the capsule; Distance is the penetration depth.
type Plane struct {
	Normal   core.Vec2
	Distance float64
}

// Capsule is the value-type geometry of a kinematic character controller.
// It is a vertical segment of half-length HalfLen around Center, inflated by
// Radius. No backend body backs it; the mover API operates on it directly.
type Capsule struct {
	Center  core.Vec2
	HalfLen float64
	Radius  float64
}

// NewCapsule builds a vertical capsule from controller width/height.
// Width sets the radius; any height beyond the two caps becomes segment length.
func NewCapsule(center core.Vec2, width, height float64) Capsule {
	r := width / 2
	half := height/2 - r
	if half < 0 {
		half = 0
	}
	return Capsule{Center: center, HalfLen: half, Radius: r}
}

// Backend is the opaque solver interface. All coordinates are simulation
// space (Y-up); callers convert with ToSim/ToScreen at the boundary.
type Backend interface {
	CreateDynamicBody(pos core.Vec2, gravityScale float64) BodyID
	CreateStaticBody(pos core.Vec2) BodyID
	CreateKinematicBody(pos core.Vec2) BodyID
	DestroyBody(id BodyID)

	AddBoxShape(body BodyID, halfW, halfH float64, mat Material) ShapeID
	AddCircleShape(body BodyID, radius float64, mat Material) ShapeID

	Step(dt float64, substeps int)

	Position(id BodyID) core.Vec2
	SetPosition(id BodyID, pos core.Vec2)
	Rotation(id BodyID) float64
	SetRotation(id BodyID, angle float64)
	LinearVelocity(id BodyID) core.Vec2
	SetLinearVelocity(id BodyID, v core.Vec2)
	AngularVelocity(id BodyID) float64
	SetAngularVelocity(id BodyID, w float64)
	ApplyForce(id BodyID, f core.Vec2)
	ApplyImpulse(id BodyID, imp core.Vec2)
	SetGravityScale(id BodyID, scale float64)
	SetFixedRotation(id BodyID, fixed bool)

	// Raycast sweeps a ray from origin along translation and returns the
	// nearest hit, or false if nothing intersects.
	Raycast(origin, translation core.Vec2) (RayHit, bool)

	// Mover API for kinematic capsule controllers.
	CastMover(c Capsule, delta core.Vec2) float64
	CollideMover(c Capsule) []Plane
	SolveMoverPenetration(c Capsule, planes []Plane) core.Vec2
}

// ClipVelocity removes the into-plane component of v for every plane it is
// moving against, producing a slide along the obstacle surfaces.
func ClipVelocity(v core.Vec2, planes []Plane) core.Vec2 {
	for _, p := range planes {
		d := v.Dot(p.Normal)
		if d < 0 {
			v = v.Sub(p.Normal.Scale(d))
		}
	}
	return v
}
