package vmath

import "math"

// Vec2 is a float64 2D vector used for continuous board coordinates and velocities
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2DistSq returns squared euclidean distance, avoids sqrt for range checks
func V2DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// V2Dist returns euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return math.Sqrt(V2DistSq(a, b))
}

// V2ClampMag limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func V2ClampMag(v Vec2, maxMag float64) Vec2 {
	mag := V2Mag(v)
	if mag <= maxMag || mag == 0 {
		return v
	}
	return Vec2{v.X / mag * maxMag, v.Y / mag * maxMag}
}

// ClampHalfOpen constrains x into [0, limit) using the last whole unit below limit as ceiling
// Limits below one collapse to 0
func ClampHalfOpen(x, limit float64) float64 {
	return math.Max(math.Min(x, limit-1), 0)
}
