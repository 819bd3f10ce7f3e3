package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// emptyConfig is the default tuning with no agents, for hand-placed scenarios
func emptyConfig() Config {
	cfg := DefaultConfig()
	cfg.NumCivilians = 0
	cfg.NumZombies = 0
	cfg.NumMedics = 0
	cfg.NumCorpses = 0
	return cfg
}

// newScenario builds a simulation and replaces its population with entities
func newScenario(t *testing.T, cfg Config, entities ...component.Entity) *Simulation {
	t.Helper()

	sim, err := NewSimulation(cfg, WithRandomSource(vmath.NewFastRand(7)))
	require.NoError(t, err)

	sim.mu.Lock()
	sim.entities = append([]component.Entity(nil), entities...)
	sim.counts = countKinds(sim.entities)
	sim.mu.Unlock()
	return sim
}

func agent(kind component.Kind, x, y float64) component.Entity {
	return component.Entity{Pos: vmath.Vec2{X: x, Y: y}, Kind: kind}
}

// manualTime is a TimeProvider advanced by hand
type manualTime struct {
	mu  sync.Mutex
	now time.Time
}

func newManualTime() *manualTime {
	return &manualTime{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *manualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
