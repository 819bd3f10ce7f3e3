package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrchimp/zombies-vs-medics/status"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// countingStepper records calls without running a simulation
type countingStepper struct {
	ticks    atomic.Int64
	resets   atomic.Int64
	resetErr error
}

func (s *countingStepper) Tick() TickReport {
	n := s.ticks.Add(1)
	return TickReport{Tick: uint64(n)}
}

func (s *countingStepper) Reset() error {
	if s.resetErr != nil {
		return s.resetErr
	}
	s.resets.Add(1)
	s.ticks.Store(0)
	return nil
}

func TestPausableClock(t *testing.T) {
	mt := newManualTime()
	pc := NewPausableClock(mt)

	assert.True(t, pc.IsPaused(), "new clock starts paused")
	mt.Advance(time.Second)
	assert.Zero(t, pc.Elapsed())

	require.True(t, pc.Resume())
	assert.False(t, pc.Resume())
	mt.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, pc.Elapsed())

	require.True(t, pc.Pause())
	assert.False(t, pc.Pause())
	mt.Advance(10 * time.Second)
	assert.Equal(t, 3*time.Second, pc.Elapsed())
	assert.Equal(t, 11*time.Second, pc.TotalPauseDuration())

	pc.Resume()
	mt.Advance(time.Second)
	assert.Equal(t, 4*time.Second, pc.Elapsed())

	pc.Restart()
	assert.Zero(t, pc.Elapsed())
	mt.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, pc.Elapsed())
	assert.Equal(t, mt.Now(), pc.RealTime())

	pc.Pause()
	mt.Advance(time.Second)
	pc.Restart()
	assert.Zero(t, pc.TotalPauseDuration(), "restart while paused zeroes pause time")
	mt.Advance(4 * time.Second)
	assert.Equal(t, 4*time.Second, pc.TotalPauseDuration())
}

func TestPausableClockNowFreezesWhilePaused(t *testing.T) {
	mt := newManualTime()
	pc := NewPausableClock(mt)
	pc.Resume()
	mt.Advance(time.Second)

	pc.Pause()
	frozen := pc.Now()
	mt.Advance(time.Minute)
	assert.Equal(t, frozen, pc.Now())
}

func TestSimulationClockStartsPaused(t *testing.T) {
	stepper := &countingStepper{}
	clock := NewSimulationClock(stepper, WithTickInterval(time.Millisecond))
	clock.Start()
	defer clock.Stop()

	assert.False(t, clock.IsPlaying())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, stepper.ticks.Load())
}

func TestSimulationClockPlayPause(t *testing.T) {
	stepper := &countingStepper{}
	reg := status.NewRegistry()
	clock := NewSimulationClock(stepper, WithTickInterval(time.Millisecond), WithClockStatus(reg))

	var observed atomic.Int64
	clock.OnTick(func(TickReport) { observed.Add(1) })

	clock.Start()
	defer clock.Stop()

	clock.Play()
	assert.True(t, clock.IsPlaying())
	assert.True(t, reg.Bools.Get("engine.playing").Load())
	require.Eventually(t, func() bool { return stepper.ticks.Load() >= 5 }, time.Second, time.Millisecond)

	clock.Pause()
	assert.False(t, reg.Bools.Get("engine.playing").Load())

	// A tick already in flight may still land
	time.Sleep(10 * time.Millisecond)
	settled := stepper.ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, stepper.ticks.Load(), "no ticks while paused")
	assert.Equal(t, settled, observed.Load(), "every tick reaches observers")

	clock.Toggle()
	require.Eventually(t, func() bool { return stepper.ticks.Load() > settled }, time.Second, time.Millisecond)
}

func TestSimulationClockResumeDoesNotCatchUp(t *testing.T) {
	const interval = 5 * time.Millisecond
	mt := newManualTime()
	stepper := &countingStepper{}
	reg := status.NewRegistry()
	clock := NewSimulationClock(stepper,
		WithTickInterval(interval),
		WithTimeProvider(mt),
		WithClockStatus(reg),
	)
	clock.Play()
	clock.Start()
	defer clock.Stop()

	require.Eventually(t, func() bool {
		mt.Advance(interval)
		return stepper.ticks.Load() >= 3
	}, time.Second, 10*time.Millisecond)

	// Let the loop drain any tick already due before freezing play time
	time.Sleep(30 * time.Millisecond)
	clock.Pause()
	settled := stepper.ticks.Load()

	// A hundred missed intervals while paused
	mt.Advance(100 * interval)
	clock.Play()
	assert.Equal(t, int64(500), reg.Ints.Get("engine.paused_ms").Load())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, stepper.ticks.Load(), "paused intervals are not replayed")

	mt.Advance(interval)
	require.Eventually(t, func() bool { return stepper.ticks.Load() == settled+1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled+1, stepper.ticks.Load(), "one interval of play time yields one tick")
}

func TestSimulationClockSignalsUpdates(t *testing.T) {
	clock := NewSimulationClock(&countingStepper{}, WithTickInterval(time.Millisecond))
	clock.Start()
	defer clock.Stop()
	clock.Play()

	select {
	case <-clock.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update signal after play")
	}
}

func TestSimulationClockResetRunsOnLoop(t *testing.T) {
	stepper := &countingStepper{}
	reg := status.NewRegistry()
	clock := NewSimulationClock(stepper, WithTickInterval(time.Millisecond), WithClockStatus(reg))
	clock.Start()
	defer clock.Stop()

	clock.RequestReset()
	require.Eventually(t, func() bool { return stepper.resets.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(1), reg.Ints.Get("engine.resets").Load())
	assert.False(t, clock.IsPlaying(), "reset keeps the pause state")
}

func TestSimulationClockResetWithoutLoop(t *testing.T) {
	stepper := &countingStepper{}
	clock := NewSimulationClock(stepper)

	clock.RequestReset()

	assert.Equal(t, int64(1), stepper.resets.Load())
}

func TestSimulationClockResetFailureIsLogged(t *testing.T) {
	stepper := &countingStepper{resetErr: errors.New("bad config")}
	clock := NewSimulationClock(stepper)

	assert.NotPanics(t, clock.RequestReset)
	assert.Zero(t, stepper.resets.Load())
}

func TestSimulationClockStopIsIdempotent(t *testing.T) {
	clock := NewSimulationClock(&countingStepper{}, WithTickInterval(time.Millisecond))
	clock.Start()
	clock.Play()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Stop()
		}()
	}
	wg.Wait()
}

func TestSimulationClockDrivesSimulation(t *testing.T) {
	sim, err := NewSimulation(DefaultConfig(), WithRandomSource(vmath.NewFastRand(77)))
	require.NoError(t, err)

	clock := NewSimulationClock(sim, WithTickInterval(time.Millisecond))
	clock.Start()
	defer clock.Stop()

	clock.Play()
	require.Eventually(t, func() bool { return sim.CurrentTick() >= 10 }, 2*time.Second, time.Millisecond)

	clock.Pause()
	runID := sim.RunID()
	clock.RequestReset()
	require.Eventually(t, func() bool { return sim.RunID() != runID }, time.Second, time.Millisecond)
	assert.Equal(t, uint64(0), sim.CurrentTick())
}
