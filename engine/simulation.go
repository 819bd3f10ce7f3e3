// Package engine runs the outbreak simulation: flocking motion fused with a
// neighbor-count state machine, driven by a fixed-period clock.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/physics"
	"github.com/mrchimp/zombies-vs-medics/status"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// TickReport summarizes one completed tick
type TickReport struct {
	Tick        uint64
	Counts      component.Counts
	Transitions map[component.Change]int
}

// Simulation owns the board, the population and the tick counter
// Tick and Reset serialize on stepMu; readers take mu.RLock and always see a whole tick or a whole reset
type Simulation struct {
	stepMu sync.Mutex
	mu     sync.RWMutex

	cfg     Config
	pending *Config

	rng     vmath.RandomSource
	logger  *zap.Logger
	metrics *simMetrics

	// Rebuilt at every reset from cfg
	flock   *physics.Flock
	machine *StateMachine
	query   NeighborQuery
	history *History

	entities []component.Entity
	tick     uint64
	runID    uuid.UUID
	counts   component.Counts

	// Per-tick scratch, reused to avoid allocation
	motionSnap []component.Entity
	classSnap  []component.Entity
	nearby     []component.Counts
}

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithRandomSource injects the random source, default is a time-seeded FastRand
func WithRandomSource(rng vmath.RandomSource) Option {
	return func(s *Simulation) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets the structured logger, default discards
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStatus publishes counters into reg
func WithStatus(reg *status.Registry) Option {
	return func(s *Simulation) {
		if reg != nil {
			s.metrics = newSimMetrics(reg)
		}
	}
}

// NewSimulation validates cfg and performs the initial reset
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		rng:    vmath.NewTimeSeededRand(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newSimMetrics(status.NewRegistry())
	}

	if err := s.SetConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetConfig validates cfg and stages it for the next Reset, replacing anything staged before
func (s *Simulation) SetConfig(cfg Config) error {
	return s.UpdateConfig(func(c *Config) error {
		*c = cfg
		return nil
	})
}

// UpdateConfig applies fn to a copy of the staged config and stages the result if it validates
// Updates serialize with each other so partial edits accumulate; fn must not block
func (s *Simulation) UpdateConfig(fn func(*Config) error) error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	cfg := s.stagedLocked()
	if err := fn(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("config rejected", zap.Error(err))
		return err
	}
	s.pending = &cfg
	return nil
}

// StagedConfig returns the config the next Reset will apply: the pending one, else the running one
func (s *Simulation) StagedConfig() Config {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	return s.stagedLocked()
}

func (s *Simulation) stagedLocked() Config {
	if s.pending != nil {
		return *s.pending
	}
	return s.cfg
}

// Config returns the configuration of the running population
func (s *Simulation) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Reset rebuilds the population from the staged (or current) config and zeroes the tick counter
// The replacement is fully built before it is swapped in
func (s *Simulation) Reset() error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	cfg := s.stagedLocked()
	if err := cfg.Validate(); err != nil {
		return err
	}

	entities := populate(cfg, s.rng)
	flock := physics.NewFlock(cfg.FlockParams(), s.rng)
	machine := NewStateMachine(cfg.Rules, s.rng)
	history := NewHistory(cfg.HistoryCapacity)

	var query NeighborQuery = BruteForceQuery{}
	if cfg.SpatialGrid {
		query = NewGridQuery(cfg.BoardWidth, cfg.BoardHeight, cfg.NearbyRange)
	}

	counts := countKinds(entities)
	history.Record(Sample{Tick: 0, Counts: counts})
	runID := uuid.New()

	s.mu.Lock()
	s.cfg = cfg
	s.pending = nil
	s.entities = entities
	s.flock = flock
	s.machine = machine
	s.query = query
	s.history = history
	s.tick = 0
	s.runID = runID
	s.counts = counts
	s.mu.Unlock()

	s.metrics.reset(runID, counts)
	s.logger.Info("simulation reset",
		zap.String("run_id", runID.String()),
		zap.Int("population", len(entities)),
		zap.Float64("board_width", cfg.BoardWidth),
		zap.Float64("board_height", cfg.BoardHeight),
		zap.String("placement", string(cfg.Placement)),
		zap.Bool("spatial_grid", cfg.SpatialGrid),
	)
	return nil
}

// Tick advances every agent by one step: motion, then classification, then transitions
func (s *Simulation) Tick() TickReport {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entities)

	// Motion reads the pre-motion population so iteration order does not matter
	s.motionSnap = append(s.motionSnap[:0], s.entities...)
	for i := range s.entities {
		e := &s.entities[i]
		if e.Cooldown > 0 {
			e.Cooldown--
			continue
		}
		s.flock.Update(e, s.motionSnap)
	}

	// Counts come from the post-motion population before any transition is applied
	s.classSnap = append(s.classSnap[:0], s.entities...)
	s.query.Prepare(s.classSnap, s.cfg.NearbyRange)
	if cap(s.nearby) < n {
		s.nearby = make([]component.Counts, n)
	}
	s.nearby = s.nearby[:n]
	for i := range s.classSnap {
		s.nearby[i] = s.query.CountNearby(i, s.classSnap, s.cfg.NearbyRange)
	}

	report := TickReport{Transitions: make(map[component.Change]int)}
	for i := range s.entities {
		if change := s.machine.Transition(&s.entities[i], s.nearby[i]); change.Changed() {
			report.Transitions[change]++
		}
	}

	s.tick++
	s.counts = countKinds(s.entities)
	if s.tick%uint64(s.cfg.HistoryEvery) == 0 {
		s.history.Record(Sample{Tick: s.tick, Counts: s.counts})
	}

	report.Tick = s.tick
	report.Counts = s.counts
	s.metrics.record(report)
	return report
}

// Frame is one consistent read of the simulation, never straddling a tick or reset
type Frame struct {
	Config   Config
	Entities []component.View
	Counts   component.Counts
	History  []Sample
	Tick     uint64
	RunID    uuid.UUID
}

// Frame captures everything a render pass needs under one read lock
// historyN follows History, a negative value omits history
func (s *Simulation) Frame(historyN int) Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := Frame{
		Config:   s.cfg,
		Entities: s.viewsLocked(),
		Counts:   s.counts,
		Tick:     s.tick,
		RunID:    s.runID,
	}
	if historyN >= 0 {
		f.History = s.history.Last(historyN)
	}
	return f
}

// Entities returns a read-only copy of every agent's position and kind
func (s *Simulation) Entities() []component.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewsLocked()
}

func (s *Simulation) viewsLocked() []component.View {
	views := make([]component.View, len(s.entities))
	for i := range s.entities {
		views[i] = component.View{Pos: s.entities[i].Pos, Kind: s.entities[i].Kind}
	}
	return views
}

// Snapshot returns a full copy of the population, for tests and diagnostics
func (s *Simulation) Snapshot() []component.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]component.Entity(nil), s.entities...)
}

// Counts returns the population per kind as of the last completed tick or reset
func (s *Simulation) Counts() component.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts
}

// History returns up to n most recent population samples, oldest first
func (s *Simulation) History(n int) []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Last(n)
}

// CurrentTick returns the number of ticks since the last reset
func (s *Simulation) CurrentTick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// RunID identifies the population created by the last reset
func (s *Simulation) RunID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

func countKinds(entities []component.Entity) component.Counts {
	var c component.Counts
	for i := range entities {
		c[entities[i].Kind]++
	}
	return c
}

// simMetrics caches registry pointers so the tick loop writes atomics directly
type simMetrics struct {
	reg         *status.Registry
	ticks       *atomic.Int64
	total       *atomic.Int64
	runID       *status.AtomicString
	population  [component.KindCount]*atomic.Int64
	transitions map[component.Change]*atomic.Int64
}

func newSimMetrics(reg *status.Registry) *simMetrics {
	m := &simMetrics{
		reg:         reg,
		ticks:       reg.Ints.Get("engine.ticks"),
		total:       reg.Ints.Get("population.total"),
		runID:       reg.Strings.Get("run.id"),
		transitions: make(map[component.Change]*atomic.Int64),
	}
	for _, k := range component.Kinds {
		m.population[k] = reg.Ints.Get("population." + k.String())
	}
	return m
}

func (m *simMetrics) transition(ch component.Change) *atomic.Int64 {
	ptr, ok := m.transitions[ch]
	if !ok {
		ptr = m.reg.Ints.Get("transition." + ch.String())
		m.transitions[ch] = ptr
	}
	return ptr
}

func (m *simMetrics) reset(runID uuid.UUID, counts component.Counts) {
	m.ticks.Store(0)
	m.runID.Store(runID.String())
	m.storeCounts(counts)
	for _, ptr := range m.transitions {
		ptr.Store(0)
	}
}

func (m *simMetrics) record(r TickReport) {
	m.ticks.Store(int64(r.Tick))
	m.storeCounts(r.Counts)
	for ch, n := range r.Transitions {
		m.transition(ch).Add(int64(n))
	}
}

func (m *simMetrics) storeCounts(counts component.Counts) {
	for _, k := range component.Kinds {
		m.population[k].Store(int64(counts[k]))
	}
	m.total.Store(int64(counts.Total()))
}
