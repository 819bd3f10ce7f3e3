package audio

import (
	"github.com/gopxl/beep"

	"github.com/mrchimp/zombies-vs-medics/component"
)

// Cue is a sound played when a transition happens
type Cue uint8

const (
	CueInfection Cue = iota
	CueCure
	CuePromotion
	CueReanimation

	cueCount
)

var cueNames = [cueCount]string{"infection", "cure", "promotion", "reanimation"}

func (c Cue) String() string {
	if c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueFor maps a kind change to its cue
func CueFor(ch component.Change) (Cue, bool) {
	switch ch.To {
	case component.KindCorpse:
		return CueInfection, true
	case component.KindMedic:
		return CuePromotion, true
	case component.KindCivilian:
		if ch.From == component.KindZombie || ch.From == component.KindCorpse {
			return CueCure, true
		}
	case component.KindZombie:
		if ch.From == component.KindCorpse {
			return CueReanimation, true
		}
		if ch.From == component.KindMedic {
			return CueInfection, true
		}
	}
	return 0, false
}

// Streamer builds a fresh, finite streamer for the cue
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueInfection:
		return CreateInfectionSound(rate)
	case CueCure:
		return CreateCureSound(rate)
	case CuePromotion:
		return CreatePromotionSound(rate)
	case CueReanimation:
		return CreateReanimationSound(rate)
	}
	return nil
}
