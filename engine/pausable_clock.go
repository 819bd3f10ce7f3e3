package engine

import (
	"sync"
	"time"
)

// PausableClock measures simulated play time: wall time minus every paused interval
// A new clock starts paused
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	paused          bool
	pauseStartTime  time.Time
	startTime       time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a paused clock reading provider, nil selects the monotonic provider
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	now := provider.Now()
	return &PausableClock{
		provider:       provider,
		paused:         true,
		pauseStartTime: now,
		startTime:      now,
	}
}

// Now returns play time as an absolute instant, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.startTime.Add(pc.elapsedLocked())
}

// RealTime returns wall time from the provider, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Elapsed returns total play time since the last Restart
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	end := pc.provider.Now()
	if pc.paused {
		end = pc.pauseStartTime
	}
	return end.Sub(pc.startTime) - pc.totalPausedTime
}

// Pause freezes play time, returns false if already paused
func (pc *PausableClock) Pause() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return false
	}
	pc.paused = true
	pc.pauseStartTime = pc.provider.Now()
	return true
}

// Resume continues play time, returns false if already running
func (pc *PausableClock) Resume() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return false
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
	pc.paused = false
	pc.pauseStartTime = time.Time{}
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// Restart zeroes elapsed play time, keeping the pause state
func (pc *PausableClock) Restart() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.provider.Now()
	pc.startTime = now
	pc.totalPausedTime = 0
	if pc.paused {
		pc.pauseStartTime = now
	}
}

// TotalPauseDuration returns cumulative pause time since the last Restart
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
