package parameter

import "time"

// Simulation Loop & Render Timing
const (
	// TickInterval is the simulation clock period (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PausedPollMultiplier multiplies TickInterval while paused to save CPU
	PausedPollMultiplier = 2

	// TPSSmoothing is the weight of each one-second sample in the published ticks-per-second average
	TPSSmoothing = 0.5

	// MaxBehindTicks caps how far the scheduler trails its deadline before rebasing instead of catching up
	MaxBehindTicks = 2
)

// History sampling
const (
	// HistoryEvery samples population counts every N ticks (~300ms at 16ms ticks)
	HistoryEvery = 18

	// HistoryCapacity bounds the history ring when no viewport width is known
	HistoryCapacity = 1024
)
