package physics

import (
	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// Steering holds the kind-dependent flocking weights
type Steering struct {
	// Centering pulls toward the local center of mass (cohesion)
	Centering float64 `json:"centering"`
	// Matching pulls toward the local average velocity (alignment)
	Matching float64 `json:"matching"`
	// MinDistance is the personal space radius for separation
	MinDistance float64 `json:"min_distance"`
	// Avoid scales the separation push
	Avoid float64 `json:"avoid"`
	// SpeedLimit caps velocity magnitude
	SpeedLimit float64 `json:"speed_limit"`
}

// Params is the full motion model for one board
type Params struct {
	Width  float64
	Height float64

	// ReservedBottom is the strip above the bottom edge agents are steered out of
	ReservedBottom float64

	VisualRange      float64
	Margin           float64
	TurnFactor       float64
	BottomTurnFactor float64
	Jitter           float64

	Steering [component.KindCount]Steering
}

// Flock applies boids motion to agents against a read-only population snapshot
type Flock struct {
	params Params
	rng    vmath.RandomSource
}

// NewFlock creates a flock; rng is only drawn from when Jitter is enabled
func NewFlock(params Params, rng vmath.RandomSource) *Flock {
	return &Flock{params: params, rng: rng}
}

// Params returns the motion model in use
func (f *Flock) Params() Params {
	return f.params
}

// Update steers e from its neighborhood in population and moves it one step
// population must be the pre-motion snapshot and include e's own record; frozen agents must not be passed
func (f *Flock) Update(e *component.Entity, population []component.Entity) {
	p := &f.params
	st := p.Steering[e.Kind]
	rangeSq := p.VisualRange * p.VisualRange
	minSq := st.MinDistance * st.MinDistance

	var center, avgVel, push vmath.Vec2
	neighbors := 0

	for i := range population {
		other := &population[i]
		distSq := vmath.V2DistSq(e.Pos, other.Pos)

		if distSq < rangeSq {
			center = vmath.V2Add(center, other.Pos)
			avgVel = vmath.V2Add(avgVel, other.Vel)
			neighbors++
		}

		// Own record sits at distance zero and contributes nothing
		if distSq < minSq {
			push = vmath.V2Add(push, vmath.V2Sub(e.Pos, other.Pos))
		}
	}

	// Cohesion
	if neighbors > 0 {
		center = vmath.V2Scale(center, 1/float64(neighbors))
		e.Vel = vmath.V2Add(e.Vel, vmath.V2Scale(vmath.V2Sub(center, e.Pos), st.Centering))
	}

	// Separation
	e.Vel = vmath.V2Add(e.Vel, vmath.V2Scale(push, st.Avoid))

	// Alignment
	if neighbors > 0 {
		avgVel = vmath.V2Scale(avgVel, 1/float64(neighbors))
		e.Vel = vmath.V2Add(e.Vel, vmath.V2Scale(vmath.V2Sub(avgVel, e.Vel), st.Matching))
	}

	if p.Jitter > 0 && f.rng != nil {
		e.Vel.X += vmath.Uniform(f.rng, -p.Jitter, p.Jitter)
		e.Vel.Y += vmath.Uniform(f.rng, -p.Jitter, p.Jitter)
	}

	CapSpeed(&e.Vel, st.SpeedLimit)
	f.keepWithinBounds(e)
	Integrate(&e.Pos, e.Vel, p.Width, p.Height)
}

// keepWithinBounds turns agents near an edge back toward the board without a hard bounce
func (f *Flock) keepWithinBounds(e *component.Entity) {
	p := &f.params
	if e.Pos.X < p.Margin {
		e.Vel.X += p.TurnFactor
	}
	if e.Pos.X > p.Width-p.Margin {
		e.Vel.X -= p.TurnFactor
	}
	if e.Pos.Y < p.Margin {
		e.Vel.Y += p.TurnFactor
	}
	if e.Pos.Y > p.Height-p.ReservedBottom-p.Margin {
		e.Vel.Y -= p.BottomTurnFactor
	}
}
