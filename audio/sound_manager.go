// Package audio synthesizes short cues for population transitions.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/mrchimp/zombies-vs-medics/engine"
	"github.com/mrchimp/zombies-vs-medics/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays transition cues through the speaker, at most one per cue per CueCooldown
// Every method is safe to call before Initialize or after Cleanup; cues are then dropped
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	logger      *zap.Logger

	lastPlayed [cueCount]time.Time
	now        func() time.Time

	// output receives each cue streamer, the speaker mixer unless replaced in tests
	output func(beep.Streamer)
}

// NewSoundManager creates a new sound manager, logger may be nil
func NewSoundManager(logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
		now:    time.Now,
	}
	sm.output = sm.playOnSpeaker
	return sm
}

// Initialize opens the speaker; failure leaves the manager silent but usable
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		sm.logger.Warn("audio unavailable", zap.Error(err))
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup silences all cues
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no way to release the device, clearing the mixer stops all output
	sm.initialized = false
}

// SetMuted toggles output without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// IsMuted reports the mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// IsEnabled reports whether cues reach the speaker
func (sm *SoundManager) IsEnabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// Play schedules cue unless it played within CueCooldown, returns whether it was scheduled
func (sm *SoundManager) Play(cue Cue) bool {
	if cue >= cueCount {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return false
	}

	now := sm.now()
	if last := sm.lastPlayed[cue]; !last.IsZero() && now.Sub(last) < parameter.CueCooldown {
		return false
	}
	sm.lastPlayed[cue] = now

	sm.output(cue.Streamer(sampleRate))
	return true
}

// ObserveTick plays one cue per distinct cue among the tick's transitions
// Registered as a clock observer; never blocks beyond the speaker lock
func (sm *SoundManager) ObserveTick(report engine.TickReport) {
	var fired [cueCount]bool
	for ch := range report.Transitions {
		cue, ok := CueFor(ch)
		if !ok || fired[cue] {
			continue
		}
		fired[cue] = true
		sm.Play(cue)
	}
}

func (sm *SoundManager) playOnSpeaker(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

