package engine

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/parameter"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// placer draws initial positions inside the playable area (board minus reserved strip)
type placer interface {
	Place() vmath.Vec2
}

// uniformPlacer scatters agents on whole-unit coordinates
type uniformPlacer struct {
	rng           vmath.RandomSource
	width, height float64
}

func (p *uniformPlacer) Place() vmath.Vec2 {
	return vmath.Vec2{
		X: math.Floor(p.rng.Float64() * p.width),
		Y: math.Floor(p.rng.Float64() * p.height),
	}
}

// clusteredPlacer rejection-samples uniform candidates against a simplex density field,
// grouping agents into settlements instead of an even spread
type clusteredPlacer struct {
	uniformPlacer
	noise opensimplex.Noise
}

func newClusteredPlacer(rng vmath.RandomSource, width, height float64) *clusteredPlacer {
	seed := int64(rng.Float64() * (1 << 53))
	return &clusteredPlacer{
		uniformPlacer: uniformPlacer{rng: rng, width: width, height: height},
		noise:         opensimplex.NewNormalized(seed),
	}
}

// Density returns the acceptance weight at p, in [0, 1)
func (p *clusteredPlacer) Density(pos vmath.Vec2) float64 {
	n := p.noise.Eval2(pos.X*parameter.ClusterFrequency, pos.Y*parameter.ClusterFrequency)
	// Squaring sharpens peaks into distinct clusters
	return n * n
}

func (p *clusteredPlacer) Place() vmath.Vec2 {
	candidate := p.uniformPlacer.Place()
	for attempt := 0; attempt < parameter.ClusterMaxAttempts; attempt++ {
		if p.rng.Float64() < p.Density(candidate) {
			return candidate
		}
		candidate = p.uniformPlacer.Place()
	}
	return candidate
}

func newPlacer(cfg Config, rng vmath.RandomSource) placer {
	height := max(cfg.BoardHeight-cfg.ReservedBottom, 0)
	if cfg.Placement == PlacementClustered {
		return newClusteredPlacer(rng, cfg.BoardWidth, height)
	}
	return &uniformPlacer{rng: rng, width: cfg.BoardWidth, height: height}
}

// populate builds a fresh population from cfg, grouped by kind in declaration order
func populate(cfg Config, rng vmath.RandomSource) []component.Entity {
	place := newPlacer(cfg, rng)
	entities := make([]component.Entity, 0, cfg.Population())

	spawn := func(kind component.Kind, n int, cooldown int, training float64) {
		for i := 0; i < n; i++ {
			entities = append(entities, component.Entity{
				Pos:      place.Place(),
				Vel:      vmath.RandomVelocity(rng),
				Kind:     kind,
				Cooldown: cooldown,
				Training: training,
			})
		}
	}

	spawn(component.KindCivilian, cfg.NumCivilians, 0, 0)
	spawn(component.KindZombie, cfg.NumZombies, 0, 0)
	spawn(component.KindMedic, cfg.NumMedics, 0, cfg.Rules.PromotionThreshold)
	spawn(component.KindCorpse, cfg.NumCorpses, cfg.Rules.InitialCorpseCooldown, 0)

	return entities
}
