package vmath

import "time"

// RandomSource produces uniform values in [0, 1)
// Simulation draws placement, velocity and jitter from it; seeded sources make runs repeatable
type RandomSource interface {
	Float64() float64
}

// FastRand is a xorshift64 generator, not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// NewTimeSeededRand returns a FastRand seeded from the wall clock, the default unseeded source
func NewTimeSeededRand() *FastRand {
	return NewFastRand(uint64(time.Now().UnixNano()))
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Uniform returns a value in [lo, hi) drawn from src
func Uniform(src RandomSource, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// RandomVelocity returns a vector with both components uniform in [-1, 1)
func RandomVelocity(src RandomSource) Vec2 {
	return Vec2{Uniform(src, -1, 1), Uniform(src, -1, 1)}
}
