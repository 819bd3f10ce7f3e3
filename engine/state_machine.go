package engine

import (
	"fmt"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

// StateMachine applies the kind transition rules to one agent from its neighbor counts
// Kind and cooldown outcomes depend only on (kind, cooldown, training, counts); rng only re-rolls velocity
type StateMachine struct {
	rules Rules
	rng   vmath.RandomSource
}

// NewStateMachine creates a state machine over the given rules
func NewStateMachine(rules Rules, rng vmath.RandomSource) *StateMachine {
	return &StateMachine{rules: rules, rng: rng}
}

// Rules returns the thresholds in use
func (sm *StateMachine) Rules() Rules {
	return sm.rules
}

// Transition mutates e according to its kind and returns the resulting change
// Panics on an unknown kind, which can only come from a programming defect
func (sm *StateMachine) Transition(e *component.Entity, counts component.Counts) component.Change {
	from := e.Kind

	switch e.Kind {
	case component.KindCorpse:
		sm.updateCorpse(e, counts)
	case component.KindCivilian:
		sm.updateCivilian(e, counts)
	case component.KindMedic:
		sm.updateMedic(e, counts)
	case component.KindZombie:
		sm.updateZombie(e, counts)
	default:
		panic(fmt.Sprintf("state machine: invalid kind %d", e.Kind))
	}

	if from == e.Kind {
		return component.Change{}
	}
	return component.Change{From: from, To: e.Kind}
}

// updateCorpse reanimates at the end of the cooldown unless a medic revives the body first
func (sm *StateMachine) updateCorpse(e *component.Entity, counts component.Counts) {
	if e.Cooldown == 0 {
		sm.become(e, component.KindZombie)
		return
	}
	// Remaining cooldown is kept as recovery time
	if counts[component.KindMedic] > 0 && e.Cooldown < sm.rules.ReviveWindow {
		sm.become(e, component.KindCivilian)
	}
}

// updateCivilian trains near medics; otherwise any infecting zombie contact is fatal
func (sm *StateMachine) updateCivilian(e *component.Entity, counts component.Counts) {
	if medics := counts[component.KindMedic]; medics > 0 {
		e.Training += float64(medics)
	}

	if e.Training > sm.rules.PromotionThreshold {
		sm.become(e, component.KindMedic)
		return
	}

	if counts[component.KindZombie] >= sm.rules.InfectionThreshold {
		sm.become(e, component.KindCorpse)
		e.Cooldown = sm.rules.CorpseCooldown
	}
}

// updateMedic turns only when zombies outnumber the threshold and no civilians are around to protect
func (sm *StateMachine) updateMedic(e *component.Entity, counts component.Counts) {
	if counts[component.KindZombie] > sm.rules.MedicOverrunZombies &&
		counts[component.KindCivilian] < sm.rules.MedicMinCivilians {
		sm.become(e, component.KindZombie)
		e.Cooldown = sm.rules.TurnCooldown
	}
}

// updateZombie is cured by any medic in range
func (sm *StateMachine) updateZombie(e *component.Entity, counts component.Counts) {
	if counts[component.KindMedic] > 0 {
		sm.become(e, component.KindCivilian)
		e.Cooldown = sm.rules.CureCooldown
	}
}

// become switches kind and restarts the agent's drift with a fresh velocity
func (sm *StateMachine) become(e *component.Entity, kind component.Kind) {
	e.Kind = kind
	e.Vel = vmath.RandomVelocity(sm.rng)
}
