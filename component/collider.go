package component

import (
	"github.com/emberforge/ember/core"
	"github.com/emberforge/ember/physics"
)

// ShapeKind selects the collider geometry variant.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// BodyOwner records who owns the backend body a collider's shape is attached
// to. Computed once at init time instead of being re-derived from component
// presence at every call site.
type BodyOwner uint8

const (
	// OwnerNone: not initialized yet.
	OwnerNone BodyOwner = iota
	// OwnerRigidbody: the sibling rigidbody owns the body; the collider
	// only owns the shape.
	OwnerRigidbody
	// OwnerColliderImplicit: no sibling rigidbody; the collider owns an
	// implicit static body exclusively.
	OwnerColliderImplicit
)

// ColliderComponent declares a collision shape for an entity. Shape, Body,
// Owner and Initialized are engine-assigned during auto-init.
type ColliderComponent struct {
	Kind   ShapeKind
	Width  float64 // box
	Height float64 // box
	Radius float64 // circle
	Offset core.Vec2

	Density     float64
	Friction    float64
	Restitution float64
	Sensor      bool

	Shape       physics.ShapeID
	Body        physics.BodyID // implicit static body, set only when Owner == OwnerColliderImplicit
	Owner       BodyOwner
	Initialized bool
}

// NewBoxCollider creates a box collider declaration with default material.
func NewBoxCollider(width, height float64) ColliderComponent {
	return ColliderComponent{
		Kind:     ShapeBox,
		Width:    width,
		Height:   height,
		Density:  1,
		Friction: 0.5,
	}
}

// NewCircleCollider creates a circle collider declaration with default material.
func NewCircleCollider(radius float64) ColliderComponent {
	return ColliderComponent{
		Kind:     ShapeCircle,
		Radius:   radius,
		Density:  1,
		Friction: 0.5,
	}
}

// Material bundles the declared surface properties for the backend.
func (c ColliderComponent) Material() physics.Material {
	return physics.Material{
		Density:     c.Density,
		Friction:    c.Friction,
		Restitution: c.Restitution,
		Sensor:      c.Sensor,
	}
}
