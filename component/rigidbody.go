package component

import "github.com/emberforge/ember/physics"

// BodyType selects the simulation category of a rigidbody.
type BodyType uint8

const (
	BodyStatic BodyType = iota
	BodyKinematic
	BodyDynamic
)

// RigidbodyComponent declares a simulated body for an entity. Game code sets
// the declared fields; Body and Initialized are engine-assigned when the
// auto-init rule fires and must not be touched.
//
// The backend body is created lazily once a collider and transform are also
// present, and destroyed when the component is removed (if initialized).
type RigidbodyComponent struct {
	Type          BodyType
	GravityScale  float64
	FixedRotation bool

	Body        physics.BodyID
	Initialized bool
}

// NewRigidbody creates a rigidbody declaration with unit gravity scale.
func NewRigidbody(typ BodyType) RigidbodyComponent {
	return RigidbodyComponent{Type: typ, GravityScale: 1}
}
