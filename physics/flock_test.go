package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

func testParams() Params {
	p := Params{
		Width:            200,
		Height:           200,
		ReservedBottom:   20,
		VisualRange:      25,
		Margin:           10,
		TurnFactor:       0.5,
		BottomTurnFactor: 1.0,
	}
	for _, k := range component.Kinds {
		p.Steering[k] = Steering{Centering: 0.001, Matching: 0.05, MinDistance: 4, Avoid: 0.03, SpeedLimit: 1}
	}
	p.Steering[component.KindZombie] = Steering{Centering: 0.0005, Matching: 0.01, MinDistance: 4, Avoid: 0.03, SpeedLimit: 0.3}
	return p
}

// stepOne runs a single update on population[idx] against a copy of population
func stepOne(f *Flock, population []component.Entity, idx int) component.Entity {
	snapshot := append([]component.Entity(nil), population...)
	e := population[idx]
	f.Update(&e, snapshot)
	return e
}

func TestFlockZeroNeighborStability(t *testing.T) {
	f := NewFlock(testParams(), nil)

	// Lone agent well inside the board: no steering term may touch velocity
	lone := []component.Entity{{Pos: vmath.Vec2{X: 100, Y: 100}, Vel: vmath.Vec2{X: 0.3, Y: -0.4}}}
	got := stepOne(f, lone, 0)
	assert.Equal(t, vmath.Vec2{X: 0.3, Y: -0.4}, got.Vel)
	assert.InDelta(t, 100.3, got.Pos.X, 1e-9)
	assert.InDelta(t, 99.6, got.Pos.Y, 1e-9)

	// Far away agent outside visual range changes nothing either
	withFar := []component.Entity{
		lone[0],
		{Pos: vmath.Vec2{X: 160, Y: 160}, Vel: vmath.Vec2{X: -1, Y: 0}},
	}
	got = stepOne(f, withFar, 0)
	assert.Equal(t, vmath.Vec2{X: 0.3, Y: -0.4}, got.Vel)
}

func TestFlockZeroNeighborOnlySpeedAndBounds(t *testing.T) {
	f := NewFlock(testParams(), nil)

	// Too fast, near left edge: speed cap then inward turn
	lone := []component.Entity{{Pos: vmath.Vec2{X: 5, Y: 100}, Vel: vmath.Vec2{X: -3, Y: 4}}}
	got := stepOne(f, lone, 0)
	assert.InDelta(t, -0.6+0.5, got.Vel.X, 1e-12)
	assert.InDelta(t, 0.8, got.Vel.Y, 1e-12)
}

func TestFlockCohesion(t *testing.T) {
	p := testParams()
	p.Steering[component.KindCivilian].Matching = 0
	p.Steering[component.KindCivilian].Avoid = 0
	f := NewFlock(p, nil)

	pop := []component.Entity{
		{Pos: vmath.Vec2{X: 100, Y: 100}},
		{Pos: vmath.Vec2{X: 110, Y: 100}},
	}
	got := stepOne(f, pop, 0)
	// Center is (105,100), pull 5*0.001
	assert.InDelta(t, 0.005, got.Vel.X, 1e-12)
	assert.Zero(t, got.Vel.Y)
}

func TestFlockSeparation(t *testing.T) {
	p := testParams()
	p.Steering[component.KindCivilian].Centering = 0
	p.Steering[component.KindCivilian].Matching = 0
	f := NewFlock(p, nil)

	pop := []component.Entity{
		{Pos: vmath.Vec2{X: 100, Y: 100}},
		{Pos: vmath.Vec2{X: 102, Y: 100}},
	}
	got := stepOne(f, pop, 0)
	assert.InDelta(t, -2*0.03, got.Vel.X, 1e-12)
}

func TestFlockAlignment(t *testing.T) {
	p := testParams()
	p.Steering[component.KindCivilian].Centering = 0
	p.Steering[component.KindCivilian].Avoid = 0
	f := NewFlock(p, nil)

	pop := []component.Entity{
		{Pos: vmath.Vec2{X: 100, Y: 100}},
		{Pos: vmath.Vec2{X: 110, Y: 100}, Vel: vmath.Vec2{X: 1}},
	}
	got := stepOne(f, pop, 0)
	// Average velocity (0.5, 0) including self, nudged by 0.05
	assert.InDelta(t, 0.025, got.Vel.X, 1e-12)
}

func TestFlockZombieSpeedLimit(t *testing.T) {
	f := NewFlock(testParams(), nil)
	pop := []component.Entity{{Pos: vmath.Vec2{X: 100, Y: 100}, Vel: vmath.Vec2{X: 1, Y: 1}, Kind: component.KindZombie}}
	got := stepOne(f, pop, 0)
	assert.InDelta(t, 0.3, vmath.V2Mag(got.Vel), 1e-9)
}

func TestFlockBottomStrip(t *testing.T) {
	f := NewFlock(testParams(), nil)
	// y above the strip threshold 200-20-10=170
	pop := []component.Entity{{Pos: vmath.Vec2{X: 100, Y: 175}}}
	got := stepOne(f, pop, 0)
	assert.InDelta(t, -1.0, got.Vel.Y, 1e-12)
}

func TestFlockJitterUsesRandomSource(t *testing.T) {
	p := testParams()
	p.Jitter = 0.1
	f := NewFlock(p, vmath.NewFastRand(3))
	pop := []component.Entity{{Pos: vmath.Vec2{X: 100, Y: 100}}}
	got := stepOne(f, pop, 0)
	assert.NotEqual(t, vmath.Vec2{}, got.Vel)
	assert.LessOrEqual(t, math.Abs(got.Vel.X), 0.1)
}

func TestFlockBoundsInvariant(t *testing.T) {
	p := testParams()
	f := NewFlock(p, nil)
	rng := vmath.NewFastRand(11)

	pop := make([]component.Entity, 60)
	for i := range pop {
		pop[i] = component.Entity{
			Pos: vmath.Vec2{X: vmath.Uniform(rng, 0, p.Width), Y: vmath.Uniform(rng, 0, p.Height)},
			Vel: vmath.V2Scale(vmath.RandomVelocity(rng), 5),
		}
	}

	for step := 0; step < 300; step++ {
		snapshot := append([]component.Entity(nil), pop...)
		for i := range pop {
			f.Update(&pop[i], snapshot)
			assert.GreaterOrEqual(t, pop[i].Pos.X, 0.0)
			assert.Less(t, pop[i].Pos.X, p.Width)
			assert.GreaterOrEqual(t, pop[i].Pos.Y, 0.0)
			assert.Less(t, pop[i].Pos.Y, p.Height)
		}
	}
}

func TestCapSpeed(t *testing.T) {
	v := vmath.Vec2{X: 0.5}
	assert.False(t, CapSpeed(&v, 1))
	v = vmath.Vec2{X: 2}
	assert.True(t, CapSpeed(&v, 1))
	assert.InDelta(t, 1.0, v.X, 1e-12)
}
