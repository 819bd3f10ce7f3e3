package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mrchimp/zombies-vs-medics/core"
	"github.com/mrchimp/zombies-vs-medics/parameter"
	"github.com/mrchimp/zombies-vs-medics/status"
)

// Stepper is the part of Simulation driven by the clock
type Stepper interface {
	Tick() TickReport
	Reset() error
}

// TickObserver receives every tick report on the clock goroutine and must not block
type TickObserver func(TickReport)

// SimulationClock drives a Stepper at a fixed period while playing
// Pause takes effect between ticks; play time excludes pauses so resume never catches up
type SimulationClock struct {
	sim    Stepper
	clock  *PausableClock
	logger *zap.Logger

	tickInterval     time.Duration
	nextTickDeadline time.Time
	mu               sync.Mutex

	observers []TickObserver

	// Control channels
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	running   atomic.Bool
	resetChan chan struct{}
	wakeChan  chan struct{}

	// Signals that a tick or reset completed, coalesced
	updateDone chan struct{}

	// Ticks-per-second sampling, owned by the loop goroutine
	tpsWindowStart time.Time
	tpsTicks       int

	statTPS     *status.AtomicFloat
	statPlaying *atomic.Bool
	statResets  *atomic.Int64
	statPaused  *atomic.Int64
}

// ClockOption configures a SimulationClock at construction
type ClockOption func(*SimulationClock)

// WithTickInterval overrides the tick period
func WithTickInterval(d time.Duration) ClockOption {
	return func(c *SimulationClock) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithTimeProvider replaces the wall time source
func WithTimeProvider(p TimeProvider) ClockOption {
	return func(c *SimulationClock) {
		c.clock = NewPausableClock(p)
	}
}

// WithClockLogger sets the structured logger, default discards
func WithClockLogger(logger *zap.Logger) ClockOption {
	return func(c *SimulationClock) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClockStatus publishes tick rate and play state into reg
func WithClockStatus(reg *status.Registry) ClockOption {
	return func(c *SimulationClock) {
		if reg != nil {
			c.bindStatus(reg)
		}
	}
}

// NewSimulationClock creates a paused clock over sim
func NewSimulationClock(sim Stepper, opts ...ClockOption) *SimulationClock {
	c := &SimulationClock{
		sim:          sim,
		clock:        NewPausableClock(nil),
		logger:       zap.NewNop(),
		tickInterval: parameter.TickInterval,
		stopChan:     make(chan struct{}),
		resetChan:    make(chan struct{}, 1),
		wakeChan:     make(chan struct{}, 1),
		updateDone:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.statTPS == nil {
		c.bindStatus(status.NewRegistry())
	}
	return c
}

func (c *SimulationClock) bindStatus(reg *status.Registry) {
	c.statTPS = reg.Floats.Get("engine.tps")
	c.statPlaying = reg.Bools.Get("engine.playing")
	c.statResets = reg.Ints.Get("engine.resets")
	c.statPaused = reg.Ints.Get("engine.paused_ms")
}

// OnTick registers an observer, must be called before Start
func (c *SimulationClock) OnTick(fn TickObserver) {
	c.observers = append(c.observers, fn)
}

// Updates signals after each tick or reset, for redraw
func (c *SimulationClock) Updates() <-chan struct{} {
	return c.updateDone
}

// TickInterval returns the fixed tick period
func (c *SimulationClock) TickInterval() time.Duration {
	return c.tickInterval
}

// Elapsed returns play time since the last reset
func (c *SimulationClock) Elapsed() time.Duration {
	return c.clock.Elapsed()
}

// Start begins the scheduler loop
func (c *SimulationClock) Start() {
	if c.running.CompareAndSwap(false, true) {
		c.wg.Add(1)
		c.logger.Info("clock started", zap.Duration("tick_interval", c.tickInterval))
		core.Go(c.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (c *SimulationClock) Stop() {
	c.stopOnce.Do(func() {
		if c.running.CompareAndSwap(true, false) {
			close(c.stopChan)
			c.wg.Wait()
			c.logger.Info("clock stopped")
		}
	})
}

// Play resumes ticking
func (c *SimulationClock) Play() {
	if !c.clock.Resume() {
		return
	}
	paused := c.clock.TotalPauseDuration()
	c.statPlaying.Store(true)
	c.statPaused.Store(paused.Milliseconds())
	c.logger.Debug("clock resumed", zap.Duration("paused_total", paused))

	select {
	case c.wakeChan <- struct{}{}:
	default:
	}
}

// Pause stops ticking after the tick in progress, if any
func (c *SimulationClock) Pause() {
	if !c.clock.Pause() {
		return
	}
	c.statPlaying.Store(false)
	c.logger.Debug("clock paused")
}

// Toggle flips between playing and paused
func (c *SimulationClock) Toggle() {
	if c.IsPlaying() {
		c.Pause()
	} else {
		c.Play()
	}
}

// IsPlaying reports whether the clock is ticking
func (c *SimulationClock) IsPlaying() bool {
	return !c.clock.IsPaused()
}

// RequestReset asks the loop to reset between ticks; without a running loop the reset runs inline
func (c *SimulationClock) RequestReset() {
	if !c.running.Load() {
		c.executeReset()
		return
	}
	select {
	case c.resetChan <- struct{}{}:
	default:
	}
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (c *SimulationClock) schedulerLoop() {
	defer c.wg.Done()

	c.mu.Lock()
	c.nextTickDeadline = c.clock.Now().Add(c.tickInterval)
	c.mu.Unlock()
	c.tpsWindowStart = c.clock.RealTime()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-c.resetChan:
			c.executeReset()
			continue
		default:
		}

		var sleepDuration time.Duration

		if c.clock.IsPaused() {
			sleepDuration = c.tickInterval * parameter.PausedPollMultiplier
		} else {
			playNow := c.clock.Now()

			c.mu.Lock()
			deadline := c.nextTickDeadline
			c.mu.Unlock()

			if !playNow.Before(deadline) {
				c.processTick()

				c.mu.Lock()
				c.nextTickDeadline = c.nextTickDeadline.Add(c.tickInterval)
				maxBehind := c.tickInterval * parameter.MaxBehindTicks
				if playNow.Sub(c.nextTickDeadline) > maxBehind {
					c.nextTickDeadline = playNow.Add(c.tickInterval)
				}
				deadline = c.nextTickDeadline
				c.mu.Unlock()

				sleepDuration = deadline.Sub(c.clock.Now())
			} else {
				sleepDuration = deadline.Sub(playNow)
			}
		}

		if sleepDuration <= 0 {
			continue
		}

		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-c.resetChan:
			stopTimer(timer)
			c.executeReset()
		case <-c.wakeChan:
			stopTimer(timer)
		case <-c.stopChan:
			return
		}
	}
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

// processTick executes one simulation step and fans the report out
func (c *SimulationClock) processTick() {
	report := c.sim.Tick()
	for _, fn := range c.observers {
		fn(report)
	}
	c.signalUpdate()

	c.tpsTicks++
	now := c.clock.RealTime()
	if window := now.Sub(c.tpsWindowStart); window >= time.Second {
		c.statTPS.Smooth(float64(c.tpsTicks)/window.Seconds(), parameter.TPSSmoothing)
		c.tpsTicks = 0
		c.tpsWindowStart = now
	}
}

// executeReset rebuilds the population and rebases play time
func (c *SimulationClock) executeReset() {
	if err := c.sim.Reset(); err != nil {
		c.logger.Error("reset failed", zap.Error(err))
		return
	}

	c.clock.Restart()
	c.mu.Lock()
	c.nextTickDeadline = c.clock.Now().Add(c.tickInterval)
	c.mu.Unlock()

	c.statResets.Add(1)
	c.statPaused.Store(0)
	c.logger.Info("clock reset")
	c.signalUpdate()
}

func (c *SimulationClock) signalUpdate() {
	select {
	case c.updateDone <- struct{}{}:
	default:
	}
}
