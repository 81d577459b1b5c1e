package physics

import (
	"math"

	"github.com/emberforge/ember/core"
)

type bodyType uint8

const (
	bodyStatic bodyType = iota
	bodyKinematic
	bodyDynamic
)

type spaceBody struct {
	typ           bodyType
	pos           core.Vec2
	angle         float64
	vel           core.Vec2
	angVel        float64
	force         core.Vec2
	gravityScale  float64
	fixedRotation bool
	shapes        []ShapeID
}

type spaceShape struct {
	body   BodyID
	circle bool
	halfW  float64
	halfH  float64
	radius float64
	mat    Material
}

// Space is the built-in Backend: a semi-implicit Euler integrator with
// ray and capsule queries. It has no contact solver between rigid bodies;
// gameplay collision goes through the mover and raycast queries. Projects
// that need full rigid-body contact response plug an external solver in
// behind the Backend interface instead.
type Space struct {
	gravity   core.Vec2
	bodies    map[BodyID]*spaceBody
	shapes    map[ShapeID]*spaceShape
	nextBody  BodyID
	nextShape ShapeID
}

// NewSpace creates an empty space with the given gravity (simulation space, Y-up).
func NewSpace(gravity core.Vec2) *Space {
	return &Space{
		gravity: gravity,
		bodies:  make(map[BodyID]*spaceBody),
		shapes:  make(map[ShapeID]*spaceShape),
	}
}

func (s *Space) addBody(typ bodyType, pos core.Vec2, gravityScale float64) BodyID {
	s.nextBody++
	id := s.nextBody
	s.bodies[id] = &spaceBody{typ: typ, pos: pos, gravityScale: gravityScale}
	return id
}

// CreateDynamicBody implements Backend.
func (s *Space) CreateDynamicBody(pos core.Vec2, gravityScale float64) BodyID {
	return s.addBody(bodyDynamic, pos, gravityScale)
}

// CreateStaticBody implements Backend.
func (s *Space) CreateStaticBody(pos core.Vec2) BodyID {
	return s.addBody(bodyStatic, pos, 0)
}

// CreateKinematicBody implements Backend.
func (s *Space) CreateKinematicBody(pos core.Vec2) BodyID {
	return s.addBody(bodyKinematic, pos, 0)
}

// DestroyBody removes a body and every shape attached to it.
func (s *Space) DestroyBody(id BodyID) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	for _, sh := range b.shapes {
		delete(s.shapes, sh)
	}
	delete(s.bodies, id)
}

func (s *Space) addShape(body BodyID, sh *spaceShape) ShapeID {
	b, ok := s.bodies[body]
	if !ok {
		return 0
	}
	s.nextShape++
	id := s.nextShape
	sh.body = body
	s.shapes[id] = sh
	b.shapes = append(b.shapes, id)
	return id
}

// AddBoxShape implements Backend. The box is centered on the body origin.
func (s *Space) AddBoxShape(body BodyID, halfW, halfH float64, mat Material) ShapeID {
	return s.addShape(body, &spaceShape{halfW: halfW, halfH: halfH, mat: mat})
}

// AddCircleShape implements Backend.
func (s *Space) AddCircleShape(body BodyID, radius float64, mat Material) ShapeID {
	return s.addShape(body, &spaceShape{circle: true, radius: radius, mat: mat})
}

// Step advances the simulation by dt split across substeps.
// Dynamic bodies integrate gravity and accumulated force (unit mass),
// kinematic bodies integrate velocity only, static bodies never move.
func (s *Space) Step(dt float64, substeps int) {
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		for _, b := range s.bodies {
			switch b.typ {
			case bodyDynamic:
				accel := s.gravity.Scale(b.gravityScale).Add(b.force)
				b.vel = b.vel.Add(accel.Scale(h))
				b.pos = b.pos.Add(b.vel.Scale(h))
				if !b.fixedRotation {
					b.angle += b.angVel * h
				}
			case bodyKinematic:
				b.pos = b.pos.Add(b.vel.Scale(h))
				b.angle += b.angVel * h
			}
		}
	}
	for _, b := range s.bodies {
		b.force = core.Vec2{}
	}
}

// Position implements Backend.
func (s *Space) Position(id BodyID) core.Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.pos
	}
	return core.Vec2{}
}

// SetPosition implements Backend.
func (s *Space) SetPosition(id BodyID, pos core.Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.pos = pos
	}
}

// Rotation implements Backend.
func (s *Space) Rotation(id BodyID) float64 {
	if b, ok := s.bodies[id]; ok {
		return b.angle
	}
	return 0
}

// SetRotation implements Backend.
func (s *Space) SetRotation(id BodyID, angle float64) {
	if b, ok := s.bodies[id]; ok {
		b.angle = angle
	}
}

// LinearVelocity implements Backend.
func (s *Space) LinearVelocity(id BodyID) core.Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.vel
	}
	return core.Vec2{}
}

// SetLinearVelocity implements Backend.
func (s *Space) SetLinearVelocity(id BodyID, v core.Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.vel = v
	}
}

// AngularVelocity implements Backend.
func (s *Space) AngularVelocity(id BodyID) float64 {
	if b, ok := s.bodies[id]; ok {
		return b.angVel
	}
	return 0
}

// SetAngularVelocity implements Backend.
func (s *Space) SetAngularVelocity(id BodyID, w float64) {
	if b, ok := s.bodies[id]; ok {
		b.angVel = w
	}
}

// ApplyForce accumulates a force (unit mass) applied over the next Step.
func (s *Space) ApplyForce(id BodyID, f core.Vec2) {
	if b, ok := s.bodies[id]; ok && b.typ == bodyDynamic {
		b.force = b.force.Add(f)
	}
}

// ApplyImpulse changes velocity immediately (unit mass).
func (s *Space) ApplyImpulse(id BodyID, imp core.Vec2) {
	if b, ok := s.bodies[id]; ok && b.typ == bodyDynamic {
		b.vel = b.vel.Add(imp)
	}
}

// SetGravityScale implements Backend.
func (s *Space) SetGravityScale(id BodyID, scale float64) {
	if b, ok := s.bodies[id]; ok {
		b.gravityScale = scale
	}
}

// SetFixedRotation implements Backend.
func (s *Space) SetFixedRotation(id BodyID, fixed bool) {
	if b, ok := s.bodies[id]; ok {
		b.fixedRotation = fixed
		if fixed {
			b.angVel = 0
		}
	}
}

// Raycast finds the nearest non-sensor shape hit by the ray.
// Query shapes are treated as axis-aligned; body rotation is ignored.
func (s *Space) Raycast(origin, translation core.Vec2) (RayHit, bool) {
	best := RayHit{Fraction: math.Inf(1)}
	found := false
	for _, sh := range s.shapes {
		if sh.mat.Sensor {
			continue
		}
		center := s.bodies[sh.body].pos
		var frac float64
		var normal core.Vec2
		var hit bool
		if sh.circle {
			frac, normal, hit = rayCircle(origin, translation, center, sh.radius)
		} else {
			frac, normal, hit = rayAABB(origin, translation, center, sh.halfW, sh.halfH)
		}
		if hit && frac < best.Fraction {
			best = RayHit{
				Point:    origin.Add(translation.Scale(frac)),
				Normal:   normal,
				Fraction: frac,
				Body:     sh.body,
			}
			found = true
		}
	}
	return best, found
}

// rayCircle intersects o+t*d, t in [0,1], with a circle.
func rayCircle(o, d, c core.Vec2, r float64) (float64, core.Vec2, bool) {
	m := o.Sub(c)
	a := d.Dot(d)
	if a == 0 {
		return 0, core.Vec2{}, false
	}
	b := m.Dot(d)
	cc := m.Dot(m) - r*r
	disc := b*b - a*cc
	if disc < 0 {
		return 0, core.Vec2{}, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return 0, core.Vec2{}, false
	}
	p := o.Add(d.Scale(t))
	return t, p.Sub(c).Normalized(), true
}

// rayAABB intersects o+t*d, t in [0,1], with an axis-aligned box (slab method).
func rayAABB(o, d, c core.Vec2, halfW, halfH float64) (float64, core.Vec2, bool) {
	tmin, tmax := 0.0, 1.0
	normal := core.Vec2{}

	lo := [2]float64{c.X - halfW, c.Y - halfH}
	hi := [2]float64{c.X + halfW, c.Y + halfH}
	ov := [2]float64{o.X, o.Y}
	dv := [2]float64{d.X, d.Y}

	for axis := 0; axis < 2; axis++ {
		if dv[axis] == 0 {
			if ov[axis] < lo[axis] || ov[axis] > hi[axis] {
				return 0, core.Vec2{}, false
			}
			continue
		}
		inv := 1 / dv[axis]
		t1 := (lo[axis] - ov[axis]) * inv
		t2 := (hi[axis] - ov[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tmin {
			tmin = t1
			if axis == 0 {
				normal = core.Vec2{X: sign}
			} else {
				normal = core.Vec2{Y: sign}
			}
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, core.Vec2{}, false
		}
	}
	if normal.IsZero() {
		// Ray starts inside the box
		return 0, core.Vec2{}, false
	}
	return tmin, normal, true
}
