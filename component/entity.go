package component

import "github.com/mrchimp/zombies-vs-medics/vmath"

// Entity is the mutable record of one agent
// Only the owning simulation mutates it, and only during a tick
type Entity struct {
	// Pos is clamped to the board after every move
	Pos vmath.Vec2

	// Vel is bounded only by the per-kind speed limiter
	Vel vmath.Vec2

	Kind Kind

	// Cooldown is the ticks remaining while the agent is frozen and hidden from neighbor counts
	Cooldown int

	// Training accumulates medic exposure while a civilian
	Training float64
}

// Frozen reports whether the agent is on cooldown
func (e *Entity) Frozen() bool {
	return e.Cooldown > 0
}

// View is the read-only projection handed to renderers
type View struct {
	Pos  vmath.Vec2 `json:"pos"`
	Kind Kind       `json:"kind"`
}

// Change records a kind transition, zero value means no change
type Change struct {
	From Kind
	To   Kind
}

// Changed reports whether the change is an actual transition
func (c Change) Changed() bool {
	return c.From != c.To
}

func (c Change) String() string {
	return c.From.String() + "_" + c.To.String()
}
