package physics

import (
	"math"

	"github.com/emberforge/ember/core"
)

// Capsule mover queries for the built-in Space. External solvers that carry
// a native character-sweep primitive implement these directly; here the
// sweep is a conservative-advancement loop over closest-distance queries.

const (
	// moverSkin keeps the swept capsule a hair off surfaces so the
	// penetration solver and the cast never fight over the same contact.
	moverSkin = 1e-3

	castMaxSteps = 16
)

func capsuleSegment(c Capsule) (core.Vec2, core.Vec2) {
	return core.Vec2{X: c.Center.X, Y: c.Center.Y + c.HalfLen},
		core.Vec2{X: c.Center.X, Y: c.Center.Y - c.HalfLen}
}

func closestOnSegment(a, b, p core.Vec2) core.Vec2 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// pointAABBClosest returns the closest point on the box surface-or-interior
// to p, and whether p lies inside the box.
func pointAABBClosest(p, c core.Vec2, halfW, halfH float64) (core.Vec2, bool) {
	cp := core.Vec2{
		X: math.Max(c.X-halfW, math.Min(p.X, c.X+halfW)),
		Y: math.Max(c.Y-halfH, math.Min(p.Y, c.Y+halfH)),
	}
	inside := cp == p
	return cp, inside
}

// shapeSeparation computes the signed distance from the capsule surface to
// one shape's surface (negative when overlapping) and the contact normal
// pointing from the shape toward the capsule.
func (s *Space) shapeSeparation(c Capsule, sh *spaceShape) (float64, core.Vec2) {
	a, b := capsuleSegment(c)
	center := s.bodies[sh.body].pos

	if sh.circle {
		q := closestOnSegment(a, b, center)
		diff := q.Sub(center)
		d := diff.Length()
		n := diff.Normalized()
		if n.IsZero() {
			n = core.Vec2{Y: 1}
		}
		return d - sh.radius - c.Radius, n
	}

	// Box: test both segment ends and the segment point nearest the box
	// center. Exact for the vertical capsules the engine uses.
	bestDist := math.Inf(1)
	bestNormal := core.Vec2{Y: 1}
	for _, q := range [3]core.Vec2{a, b, closestOnSegment(a, b, center)} {
		cp, inside := pointAABBClosest(q, center, sh.halfW, sh.halfH)
		if inside {
			// Segment point inside the box: push out along the shallowest axis.
			pushX := sh.halfW - math.Abs(q.X-center.X)
			pushY := sh.halfH - math.Abs(q.Y-center.Y)
			var depth float64
			var n core.Vec2
			if pushX < pushY {
				depth = pushX
				n = core.Vec2{X: 1}
				if q.X < center.X {
					n.X = -1
				}
			} else {
				depth = pushY
				n = core.Vec2{Y: 1}
				if q.Y < center.Y {
					n.Y = -1
				}
			}
			return -depth - c.Radius, n
		}
		diff := q.Sub(cp)
		d := diff.Length()
		if d < bestDist {
			bestDist = d
			if n := diff.Normalized(); !n.IsZero() {
				bestNormal = n
			}
		}
	}
	return bestDist - c.Radius, bestNormal
}

// advanceBound returns how far the capsule can move along dir before its
// surface comes within moverSkin of any shape it is closing on. Shapes the
// capsule moves away from or parallel to never limit the step: distance to
// a surface shrinks at the closing rate dir·(-n), so a grazing contact must
// not stall a slide along it.
func (s *Space) advanceBound(c Capsule, dir core.Vec2) float64 {
	bound := math.Inf(1)
	for _, sh := range s.shapes {
		if sh.mat.Sensor {
			continue
		}
		sep, n := s.shapeSeparation(c, sh)
		closing := -dir.Dot(n)
		if closing <= 0 {
			continue
		}
		adv := (sep - moverSkin) / closing
		if adv < bound {
			bound = adv
		}
	}
	return bound
}

// CastMover sweeps the capsule along delta by conservative advancement and
// returns the fraction of delta traveled before contact (1 = full move).
func (s *Space) CastMover(c Capsule, delta core.Vec2) float64 {
	dist := delta.Length()
	if dist == 0 {
		return 1
	}
	dir := delta.Scale(1 / dist)
	traveled := 0.0
	for i := 0; i < castMaxSteps; i++ {
		step := s.advanceBound(c, dir)
		if step <= 0 {
			break
		}
		if traveled+step >= dist {
			return 1
		}
		c.Center = c.Center.Add(dir.Scale(step))
		traveled += step
	}
	return traveled / dist
}

// CollideMover collects one collision plane per shape the capsule overlaps.
func (s *Space) CollideMover(c Capsule) []Plane {
	var planes []Plane
	for _, sh := range s.shapes {
		if sh.mat.Sensor {
			continue
		}
		sep, n := s.shapeSeparation(c, sh)
		if sep < 0 {
			planes = append(planes, Plane{Normal: n, Distance: -sep})
		}
	}
	return planes
}

// SolveMoverPenetration pushes the capsule center out of every collected
// plane and returns the corrected center.
func (s *Space) SolveMoverPenetration(c Capsule, planes []Plane) core.Vec2 {
	center := c.Center
	for _, p := range planes {
		center = center.Add(p.Normal.Scale(p.Distance + moverSkin))
	}
	return center
}
