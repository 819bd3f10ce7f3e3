package physics

import "github.com/mrchimp/zombies-vs-medics/vmath"

// CapSpeed limits the velocity magnitude to maxSpeed preserving direction
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec2, maxSpeed float64) bool {
	if vmath.V2MagSq(*vel) <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vmath.V2ClampMag(*vel, maxSpeed)
	return true
}

// Integrate advances pos by vel and clamps the result into [0, width) x [0, height)
func Integrate(pos *vmath.Vec2, vel vmath.Vec2, width, height float64) {
	pos.X = vmath.ClampHalfOpen(pos.X+vel.X, width)
	pos.Y = vmath.ClampHalfOpen(pos.Y+vel.Y, height)
}
