package parameter

// Board defaults, used headless and when no viewport is available
const (
	DefaultBoardWidth  = 640.0
	DefaultBoardHeight = 360.0

	// DefaultResolutionScale is board units per screen pixel divisor
	DefaultResolutionScale = 3

	// DefaultReservedBottom keeps agents clear of the history graph strip
	DefaultReservedBottom = 100.0
)

// Initial population
const (
	DefaultCivilians = 100
	DefaultZombies   = 50
	DefaultMedics    = 5
	DefaultCorpses   = 0

	// InitialCorpseCooldown is the reanimation delay of corpses seeded at reset
	InitialCorpseCooldown = 2000
)

// Neighborhood
const (
	// BodyScale is the drawn size of an agent in board units
	BodyScale = 3.0

	// NearbyRange is the classification radius used for state transitions
	NearbyRange = BodyScale * 2
)

// State transition thresholds
const (
	// PromotionThreshold is the training a civilian must exceed to become a medic
	PromotionThreshold = 100.0

	// InfectionThreshold is the minimum zombie neighbors that kill a civilian
	InfectionThreshold = 1

	// CorpseCooldown is the reanimation delay after infection
	CorpseCooldown = 200

	// ReviveWindow lets a nearby medic revive a corpse once its cooldown drops below this
	ReviveWindow = 100

	// MedicOverrunZombies is the zombie count a medic must see strictly more than to be overrun
	MedicOverrunZombies = 1

	// MedicMinCivilians protects a medic while at least this many civilians are nearby
	MedicMinCivilians = 1

	// TurnCooldown is the freeze applied to a medic that turns
	TurnCooldown = 50

	// CureCooldown is the freeze applied to a cured zombie
	CureCooldown = 50
)

// Upper bounds enforced by config validation
const (
	// MaxPopulation caps the total agent count across all kinds
	MaxPopulation = 200_000

	// MaxGridCells caps the neighbor grid at the configured nearby range
	MaxGridCells = 1 << 22
)
