package physics

import "github.com/emberforge/ember/core"

// The presentation side is Y-down, the simulation side is Y-up. The mapping
// is a pure vertical negation and lives in exactly these two functions;
// applying it twice is the identity. It is linear, so it is valid for
// positions, velocities, forces and gravity alike. Pixel-to-meter scaling is
// a camera concern and deliberately not part of this hop.

// ToSim converts a screen-space (Y-down) vector to simulation space (Y-up).
func ToSim(p core.Vec2) core.Vec2 {
	return core.Vec2{X: p.X, Y: -p.Y}
}

// ToScreen converts a simulation-space (Y-up) vector to screen space (Y-down).
func ToScreen(p core.Vec2) core.Vec2 {
	return core.Vec2{X: p.X, Y: -p.Y}
}

// ToSimAngle converts a screen-space rotation to simulation space.
// Mirroring the Y axis flips the sense of rotation.
func ToSimAngle(a float64) float64 {
	return -a
}

// ToScreenAngle converts a simulation-space rotation to screen space.
func ToScreenAngle(a float64) float64 {
	return -a
}
