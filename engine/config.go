package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/parameter"
	"github.com/mrchimp/zombies-vs-medics/physics"
)

// ErrInvalidConfig is wrapped by every configuration rejection
var ErrInvalidConfig = errors.New("invalid simulation config")

// Placement selects how agents are scattered at reset
type Placement string

const (
	PlacementUniform   Placement = "uniform"
	PlacementClustered Placement = "clustered"
)

// Rules holds the state transition thresholds
type Rules struct {
	PromotionThreshold    float64 `json:"promotion_threshold"`
	InfectionThreshold    int     `json:"infection_threshold"`
	CorpseCooldown        int     `json:"corpse_cooldown"`
	ReviveWindow          int     `json:"revive_window"`
	MedicOverrunZombies   int     `json:"medic_overrun_zombies"`
	MedicMinCivilians     int     `json:"medic_min_civilians"`
	TurnCooldown          int     `json:"turn_cooldown"`
	CureCooldown          int     `json:"cure_cooldown"`
	InitialCorpseCooldown int     `json:"initial_corpse_cooldown"`
}

// Motion holds the flocking configuration, steering is split per kind
type Motion struct {
	VisualRange      float64 `json:"visual_range"`
	Margin           float64 `json:"margin"`
	TurnFactor       float64 `json:"turn_factor"`
	BottomTurnFactor float64 `json:"bottom_turn_factor"`
	Jitter           float64 `json:"jitter"`

	Civilian physics.Steering `json:"civilian"`
	Zombie   physics.Steering `json:"zombie"`
	Medic    physics.Steering `json:"medic"`
	Corpse   physics.Steering `json:"corpse"`
}

// Config is consumed only at Reset
type Config struct {
	BoardWidth     float64 `json:"board_width"`
	BoardHeight    float64 `json:"board_height"`
	ReservedBottom float64 `json:"reserved_bottom"`

	// ResolutionScale divides the host viewport into board units, informational for the engine
	ResolutionScale int `json:"resolution_scale"`

	NumCivilians int `json:"num_civilians"`
	NumZombies   int `json:"num_zombies"`
	NumMedics    int `json:"num_medics"`
	NumCorpses   int `json:"num_corpses"`

	Placement Placement `json:"placement"`

	// NearbyRange is the classification radius for neighbor counts
	NearbyRange float64 `json:"nearby_range"`

	// SpatialGrid selects the bucketed neighbor query over the brute force scan
	SpatialGrid bool `json:"spatial_grid"`

	HistoryEvery    int `json:"history_every"`
	HistoryCapacity int `json:"history_capacity"`

	Motion Motion `json:"motion"`
	Rules  Rules  `json:"rules"`
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	human := physics.Steering{
		Centering:   parameter.CenteringFactor,
		Matching:    parameter.MatchingFactor,
		MinDistance: parameter.MinDistance,
		Avoid:       parameter.AvoidFactor,
		SpeedLimit:  parameter.SpeedLimit,
	}

	return Config{
		BoardWidth:      parameter.DefaultBoardWidth,
		BoardHeight:     parameter.DefaultBoardHeight,
		ReservedBottom:  parameter.DefaultReservedBottom,
		ResolutionScale: parameter.DefaultResolutionScale,
		NumCivilians:    parameter.DefaultCivilians,
		NumZombies:      parameter.DefaultZombies,
		NumMedics:       parameter.DefaultMedics,
		NumCorpses:      parameter.DefaultCorpses,
		Placement:       PlacementUniform,
		NearbyRange:     parameter.NearbyRange,
		HistoryEvery:    parameter.HistoryEvery,
		HistoryCapacity: parameter.HistoryCapacity,
		Motion: Motion{
			VisualRange:      parameter.VisualRange,
			Margin:           parameter.EdgeMargin,
			TurnFactor:       parameter.TurnFactor,
			BottomTurnFactor: parameter.BottomTurnFactor,
			Jitter:           parameter.Jitter,
			Civilian:         human,
			Medic:            human,
			Corpse:           human,
			Zombie: physics.Steering{
				Centering:   parameter.ZombieCenteringFactor,
				Matching:    parameter.ZombieMatchingFactor,
				MinDistance: parameter.MinDistance,
				Avoid:       parameter.AvoidFactor,
				SpeedLimit:  parameter.ZombieSpeedLimit,
			},
		},
		Rules: Rules{
			PromotionThreshold:    parameter.PromotionThreshold,
			InfectionThreshold:    parameter.InfectionThreshold,
			CorpseCooldown:        parameter.CorpseCooldown,
			ReviveWindow:          parameter.ReviveWindow,
			MedicOverrunZombies:   parameter.MedicOverrunZombies,
			MedicMinCivilians:     parameter.MedicMinCivilians,
			TurnCooldown:          parameter.TurnCooldown,
			CureCooldown:          parameter.CureCooldown,
			InitialCorpseCooldown: parameter.InitialCorpseCooldown,
		},
	}
}

// Population returns the configured total entity count
func (c Config) Population() int {
	return c.NumCivilians + c.NumZombies + c.NumMedics + c.NumCorpses
}

// InitialCounts returns the configured per-kind population
func (c Config) InitialCounts() component.Counts {
	return component.Counts{
		component.KindCivilian: c.NumCivilians,
		component.KindZombie:   c.NumZombies,
		component.KindMedic:    c.NumMedics,
		component.KindCorpse:   c.NumCorpses,
	}
}

// FlockParams builds the motion model for this board
func (c Config) FlockParams() physics.Params {
	p := physics.Params{
		Width:            c.BoardWidth,
		Height:           c.BoardHeight,
		ReservedBottom:   c.ReservedBottom,
		VisualRange:      c.Motion.VisualRange,
		Margin:           c.Motion.Margin,
		TurnFactor:       c.Motion.TurnFactor,
		BottomTurnFactor: c.Motion.BottomTurnFactor,
		Jitter:           c.Motion.Jitter,
	}
	p.Steering[component.KindCivilian] = c.Motion.Civilian
	p.Steering[component.KindZombie] = c.Motion.Zombie
	p.Steering[component.KindMedic] = c.Motion.Medic
	p.Steering[component.KindCorpse] = c.Motion.Corpse
	return p
}

// GridCells returns the cell count of a neighbor grid sized to NearbyRange
// Computed in floating point so oversized boards do not overflow
func (c Config) GridCells() float64 {
	return math.Max(1, math.Ceil(c.BoardWidth/c.NearbyRange)) * math.Max(1, math.Ceil(c.BoardHeight/c.NearbyRange))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate rejects configurations the simulation cannot run
func (c Config) Validate() error {
	if !finite(c.BoardWidth, c.BoardHeight, c.ReservedBottom, c.NearbyRange) {
		return fmt.Errorf("%w: board and nearby range must be finite", ErrInvalidConfig)
	}
	if c.BoardWidth <= 0 || c.BoardHeight <= 0 {
		return fmt.Errorf("%w: board must be positive, got %gx%g", ErrInvalidConfig, c.BoardWidth, c.BoardHeight)
	}
	if c.ReservedBottom < 0 || c.ReservedBottom >= c.BoardHeight {
		return fmt.Errorf("%w: reserved bottom %g outside [0, %g)", ErrInvalidConfig, c.ReservedBottom, c.BoardHeight)
	}
	if c.ResolutionScale <= 0 {
		return fmt.Errorf("%w: resolution scale must be positive, got %d", ErrInvalidConfig, c.ResolutionScale)
	}

	total := 0
	for k, n := range c.InitialCounts() {
		if n < 0 {
			return fmt.Errorf("%w: negative %s count %d", ErrInvalidConfig, component.Kind(k), n)
		}
		if n > parameter.MaxPopulation {
			return fmt.Errorf("%w: %s count %d exceeds %d", ErrInvalidConfig, component.Kind(k), n, parameter.MaxPopulation)
		}
		total += n
	}
	if total > parameter.MaxPopulation {
		return fmt.Errorf("%w: population %d exceeds %d", ErrInvalidConfig, total, parameter.MaxPopulation)
	}

	switch c.Placement {
	case PlacementUniform, PlacementClustered:
	default:
		return fmt.Errorf("%w: unknown placement %q", ErrInvalidConfig, c.Placement)
	}

	if c.NearbyRange <= 0 {
		return fmt.Errorf("%w: nearby range must be positive, got %g", ErrInvalidConfig, c.NearbyRange)
	}
	if c.SpatialGrid {
		if cells := c.GridCells(); cells > parameter.MaxGridCells {
			return fmt.Errorf("%w: neighbor grid needs %g cells, limit %d", ErrInvalidConfig, cells, parameter.MaxGridCells)
		}
	}
	if c.HistoryEvery <= 0 || c.HistoryCapacity <= 0 {
		return fmt.Errorf("%w: history sampling must be positive, got every=%d capacity=%d",
			ErrInvalidConfig, c.HistoryEvery, c.HistoryCapacity)
	}

	if err := c.Motion.validate(); err != nil {
		return err
	}
	return c.Rules.validate()
}

func (m Motion) validate() error {
	if m.VisualRange <= 0 {
		return fmt.Errorf("%w: visual range must be positive, got %g", ErrInvalidConfig, m.VisualRange)
	}
	if m.Margin < 0 || m.TurnFactor < 0 || m.BottomTurnFactor < 0 || m.Jitter < 0 {
		return fmt.Errorf("%w: bounds steering and jitter must not be negative", ErrInvalidConfig)
	}

	steering := []struct {
		name string
		st   physics.Steering
	}{
		{"civilian", m.Civilian},
		{"zombie", m.Zombie},
		{"medic", m.Medic},
		{"corpse", m.Corpse},
	}
	for _, s := range steering {
		name, st := s.name, s.st
		if st.SpeedLimit <= 0 {
			return fmt.Errorf("%w: %s speed limit must be positive, got %g", ErrInvalidConfig, name, st.SpeedLimit)
		}
		if st.Centering < 0 || st.Matching < 0 || st.Avoid < 0 || st.MinDistance < 0 {
			return fmt.Errorf("%w: %s steering factors must not be negative", ErrInvalidConfig, name)
		}
	}
	return nil
}

func (r Rules) validate() error {
	if r.PromotionThreshold < 0 {
		return fmt.Errorf("%w: promotion threshold must not be negative, got %g", ErrInvalidConfig, r.PromotionThreshold)
	}
	if r.InfectionThreshold < 1 {
		return fmt.Errorf("%w: infection threshold must be at least 1, got %d", ErrInvalidConfig, r.InfectionThreshold)
	}

	cooldowns := []struct {
		name  string
		value int
	}{
		{"corpse cooldown", r.CorpseCooldown},
		{"revive window", r.ReviveWindow},
		{"turn cooldown", r.TurnCooldown},
		{"cure cooldown", r.CureCooldown},
		{"initial corpse cooldown", r.InitialCorpseCooldown},
		{"medic overrun zombies", r.MedicOverrunZombies},
		{"medic min civilians", r.MedicMinCivilians},
	}
	for _, cd := range cooldowns {
		if cd.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, cd.name, cd.value)
		}
	}
	return nil
}
