package parameter

// Flocking perception
const (
	// VisualRange bounds cohesion and alignment
	VisualRange = 25.0

	// EdgeMargin is the distance from an edge where the inward turn starts
	EdgeMargin = 10.0

	// TurnFactor is the inward velocity bias applied per tick near left, right and top edges
	TurnFactor = 0.5

	// BottomTurnFactor is the upward bias applied above the reserved bottom strip
	BottomTurnFactor = 1.0

	// Jitter adds uniform noise to velocity per tick, disabled by default
	Jitter = 0.0
)

// Per-kind steering, civilians and medics share the defaults
const (
	CenteringFactor       = 0.001
	ZombieCenteringFactor = 0.0005

	MatchingFactor       = 0.05
	ZombieMatchingFactor = 0.01

	MinDistance = 4.0
	AvoidFactor = 0.03

	SpeedLimit       = 1.0
	ZombieSpeedLimit = 0.3
)

// Clustered placement (opensimplex density field)
const (
	// ClusterFrequency is the noise frequency in cycles per board unit
	ClusterFrequency = 0.012

	// ClusterMaxAttempts bounds rejection sampling per agent before falling back to uniform
	ClusterMaxAttempts = 32
)
