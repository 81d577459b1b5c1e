package physics

import "github.com/emberforge/ember/core"

// Mock is a recording Backend for tests. It hands out sequential handles,
// stores transforms verbatim, and counts lifecycle calls so tests can assert
// exactly-once body creation and shape attachment.
type Mock struct {
	DynamicCalls   int
	StaticCalls    int
	KinematicCalls int
	DestroyCalls   int
	BoxShapeCalls  int
	CircleCalls    int
	StepCalls      int

	// ShapeBody records which body each created shape was attached to.
	ShapeBody map[ShapeID]BodyID
	// Destroyed records bodies in destruction order.
	Destroyed []BodyID

	positions  map[BodyID]core.Vec2
	rotations  map[BodyID]float64
	velocities map[BodyID]core.Vec2
	angular    map[BodyID]float64
	alive      map[BodyID]bool

	nextBody  BodyID
	nextShape ShapeID
}

// NewMock creates an empty recording backend.
func NewMock() *Mock {
	return &Mock{
		ShapeBody:  make(map[ShapeID]BodyID),
		positions:  make(map[BodyID]core.Vec2),
		rotations:  make(map[BodyID]float64),
		velocities: make(map[BodyID]core.Vec2),
		angular:    make(map[BodyID]float64),
		alive:      make(map[BodyID]bool),
	}
}

// BodyCreateCalls returns the total number of body creations of any type.
func (m *Mock) BodyCreateCalls() int {
	return m.DynamicCalls + m.StaticCalls + m.KinematicCalls
}

// ShapeCalls returns the total number of shape attachments of any kind.
func (m *Mock) ShapeCalls() int {
	return m.BoxShapeCalls + m.CircleCalls
}

// Alive reports whether a body has been created and not destroyed.
func (m *Mock) Alive(id BodyID) bool {
	return m.alive[id]
}

func (m *Mock) newBody(pos core.Vec2) BodyID {
	m.nextBody++
	m.positions[m.nextBody] = pos
	m.alive[m.nextBody] = true
	return m.nextBody
}

func (m *Mock) CreateDynamicBody(pos core.Vec2, gravityScale float64) BodyID {
	m.DynamicCalls++
	return m.newBody(pos)
}

func (m *Mock) CreateStaticBody(pos core.Vec2) BodyID {
	m.StaticCalls++
	return m.newBody(pos)
}

func (m *Mock) CreateKinematicBody(pos core.Vec2) BodyID {
	m.KinematicCalls++
	return m.newBody(pos)
}

func (m *Mock) DestroyBody(id BodyID) {
	m.DestroyCalls++
	m.Destroyed = append(m.Destroyed, id)
	m.alive[id] = false
}

func (m *Mock) addShape(body BodyID) ShapeID {
	m.nextShape++
	m.ShapeBody[m.nextShape] = body
	return m.nextShape
}

func (m *Mock) AddBoxShape(body BodyID, halfW, halfH float64, mat Material) ShapeID {
	m.BoxShapeCalls++
	return m.addShape(body)
}

func (m *Mock) AddCircleShape(body BodyID, radius float64, mat Material) ShapeID {
	m.CircleCalls++
	return m.addShape(body)
}

func (m *Mock) Step(dt float64, substeps int) {
	m.StepCalls++
}

func (m *Mock) Position(id BodyID) core.Vec2  { return m.positions[id] }
func (m *Mock) Rotation(id BodyID) float64    { return m.rotations[id] }
func (m *Mock) AngularVelocity(id BodyID) float64 { return m.angular[id] }

func (m *Mock) SetPosition(id BodyID, pos core.Vec2) { m.positions[id] = pos }
func (m *Mock) SetRotation(id BodyID, angle float64) { m.rotations[id] = angle }

func (m *Mock) LinearVelocity(id BodyID) core.Vec2 { return m.velocities[id] }

func (m *Mock) SetLinearVelocity(id BodyID, v core.Vec2) { m.velocities[id] = v }
func (m *Mock) SetAngularVelocity(id BodyID, w float64)  { m.angular[id] = w }

func (m *Mock) ApplyForce(id BodyID, f core.Vec2) {}

func (m *Mock) ApplyImpulse(id BodyID, imp core.Vec2) {
	m.velocities[id] = m.velocities[id].Add(imp)
}

func (m *Mock) SetGravityScale(id BodyID, scale float64) {}
func (m *Mock) SetFixedRotation(id BodyID, fixed bool)   {}

func (m *Mock) Raycast(origin, translation core.Vec2) (RayHit, bool) {
	return RayHit{}, false
}

func (m *Mock) CastMover(c Capsule, delta core.Vec2) float64 { return 1 }

func (m *Mock) CollideMover(c Capsule) []Plane { return nil }

func (m *Mock) SolveMoverPenetration(c Capsule, planes []Plane) core.Vec2 {
	return c.Center
}
