package parameter

import "time"

// Audio cue timing
const (
	// AudioSampleRate of the speaker stream
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// CueCooldown throttles repeats of the same cue
	CueCooldown = 250 * time.Millisecond

	CueInfectionDuration   = 300 * time.Millisecond
	CueCureDuration        = 120 * time.Millisecond
	CuePromotionDuration   = 180 * time.Millisecond
	CueReanimationDuration = 150 * time.Millisecond

	CueCureFreq        = 880.0
	CuePromotionFreq   = 660.0
	CueReanimationFreq = 110.0
)
