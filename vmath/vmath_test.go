package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastRandFloat64Range(t *testing.T) {
	rng := NewFastRand(42)
	for i := 0; i < 10000; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %f, want [0, 1)", v)
		}
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(7)
	b := NewFastRand(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	// Zero state would be a fixed point for xorshift
	rng := NewFastRand(0)
	assert.NotZero(t, rng.Next())
}

func TestRandomVelocityRange(t *testing.T) {
	rng := NewFastRand(99)
	for i := 0; i < 1000; i++ {
		v := RandomVelocity(rng)
		assert.GreaterOrEqual(t, v.X, -1.0)
		assert.Less(t, v.X, 1.0)
		assert.GreaterOrEqual(t, v.Y, -1.0)
		assert.Less(t, v.Y, 1.0)
	}
}

func TestV2ClampMag(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		max  float64
		want Vec2
	}{
		{"under cap", Vec2{0.3, 0.4}, 1, Vec2{0.3, 0.4}},
		{"over cap", Vec2{3, 4}, 1, Vec2{0.6, 0.8}},
		{"zero", Vec2{}, 1, Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V2ClampMag(tt.in, tt.max)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestClampHalfOpen(t *testing.T) {
	tests := []struct {
		x, limit, want float64
	}{
		{-3, 100, 0},
		{50.5, 100, 50.5},
		{100, 100, 99},
		{250, 100, 99},
		{0.7, 0.5, 0},
	}

	for _, tt := range tests {
		got := ClampHalfOpen(tt.x, tt.limit)
		assert.Equal(t, tt.want, got)
		assert.Less(t, got, tt.limit)
	}
}

func TestV2Dist(t *testing.T) {
	assert.InDelta(t, 5.0, V2Dist(Vec2{0, 0}, Vec2{3, 4}), 1e-12)
	assert.InDelta(t, 25.0, V2DistSq(Vec2{1, 1}, Vec2{4, 5}), 1e-12)
	assert.False(t, math.IsNaN(V2Mag(Vec2{})))
}
