package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/mrchimp/zombies-vs-medics/parameter"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewTimeSeededRand(),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = vmath.Uniform(o.noise, -1, 1)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay applies an exponential fade, quick attack and long tail
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	k        float64
	position int
}

// NewDecay fades s by exp(-k*t)
func NewDecay(s beep.Streamer, k float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, k: k}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		vol := math.Exp(-t * d.k)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// envelope applies linear attack and release to a stream of known length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly, math.Log2(0) is -Inf so zero maps to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a bounded sine from beep's generators, falling back to the local oscillator
func tone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return NewOscillator(freq, duration, WaveSine, rate)
	}
	return beep.Take(rate.N(duration), sine)
}

// CreateInfectionSound is a crackle over a low rumble for a civilian going down
func CreateInfectionSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CueInfectionDuration
	crackle := newVolume(NewOscillator(0, d, WaveNoise, rate), 0.25)
	rumble := newVolume(NewOscillator(80, d, WaveSine, rate), 0.3)
	return NewDecay(beep.Mix(crackle, rumble), 8, rate)
}

// CreateCureSound is a short bright chirp
func CreateCureSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CueCureDuration
	s := tone(parameter.CueCureFreq, d, rate)
	return newVolume(NewEnvelope(s, d, 5*time.Millisecond, 60*time.Millisecond, rate), 0.3)
}

// CreatePromotionSound plays two rising notes
func CreatePromotionSound(rate beep.SampleRate) beep.Streamer {
	half := parameter.CuePromotionDuration / 2
	n1 := NewEnvelope(tone(parameter.CuePromotionFreq, half, rate), half, 5*time.Millisecond, 30*time.Millisecond, rate)
	n2 := NewEnvelope(tone(parameter.CuePromotionFreq*1.5, half, rate), half, 5*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(beep.Seq(n1, n2), 0.3)
}

// CreateReanimationSound is a harsh low buzz
func CreateReanimationSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CueReanimationDuration
	osc := NewOscillator(parameter.CueReanimationFreq, d, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, d, 10*time.Millisecond, 50*time.Millisecond, rate), 0.2)
}
