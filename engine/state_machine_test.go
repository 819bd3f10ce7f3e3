package engine

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/vmath"
)

func TestStateMachine(t *testing.T) {
	spec.Run(t, "StateMachine", testStateMachine, spec.Report(report.Terminal{}))
}

func testStateMachine(t *testing.T, describe spec.G, it spec.S) {
	var subject *StateMachine
	var e component.Entity

	counts := func(civilians, zombies, medics int) component.Counts {
		return component.Counts{
			component.KindCivilian: civilians,
			component.KindZombie:   zombies,
			component.KindMedic:    medics,
		}
	}

	it.Before(func() {
		subject = NewStateMachine(DefaultConfig().Rules, vmath.NewFastRand(42))
	})

	describe("Corpse", func() {
		it.Before(func() {
			e = component.Entity{Kind: component.KindCorpse}
		})

		it("reanimates as a zombie once the cooldown reaches zero", func() {
			change := subject.Transition(&e, counts(0, 0, 0))
			assert.Equal(t, component.Change{From: component.KindCorpse, To: component.KindZombie}, change)
			assert.Equal(t, component.KindZombie, e.Kind)
		})

		it("reanimates even with a medic in range when the cooldown is zero", func() {
			subject.Transition(&e, counts(0, 0, 3))
			assert.Equal(t, component.KindZombie, e.Kind)
		})

		it("is revived by a medic inside the revive window, keeping its cooldown", func() {
			e.Cooldown = 99
			change := subject.Transition(&e, counts(0, 0, 1))
			assert.Equal(t, component.KindCivilian, change.To)
			assert.Equal(t, 99, e.Cooldown)
		})

		it("cannot be revived outside the revive window", func() {
			e.Cooldown = 100
			change := subject.Transition(&e, counts(0, 0, 1))
			assert.False(t, change.Changed())
			assert.Equal(t, component.KindCorpse, e.Kind)
		})

		it("waits without a medic", func() {
			e.Cooldown = 10
			assert.Equal(t, component.Change{}, subject.Transition(&e, counts(5, 5, 0)))
		})
	})

	describe("Civilian", func() {
		it.Before(func() {
			e = component.Entity{Kind: component.KindCivilian}
		})

		it("accumulates training from every medic in range", func() {
			subject.Transition(&e, counts(0, 0, 3))
			subject.Transition(&e, counts(0, 0, 2))
			assert.Equal(t, 5.0, e.Training)
			assert.Equal(t, component.KindCivilian, e.Kind)
		})

		it("is promoted once training exceeds the threshold", func() {
			e.Training = 99
			change := subject.Transition(&e, counts(0, 0, 2))
			assert.Equal(t, component.KindMedic, change.To)
			assert.Equal(t, 101.0, e.Training)
		})

		it("is not promoted at exactly the threshold", func() {
			e.Training = 99
			subject.Transition(&e, counts(0, 0, 1))
			assert.Equal(t, component.KindCivilian, e.Kind)
		})

		it("is promoted without a medic present when already over the threshold", func() {
			e.Training = 150
			subject.Transition(&e, counts(0, 0, 0))
			assert.Equal(t, component.KindMedic, e.Kind)
		})

		it("promotion wins over infection", func() {
			e.Training = 100
			subject.Transition(&e, counts(0, 4, 1))
			assert.Equal(t, component.KindMedic, e.Kind)
		})

		it("dies to a single zombie and starts the corpse cooldown", func() {
			change := subject.Transition(&e, counts(0, 1, 0))
			assert.Equal(t, component.KindCorpse, change.To)
			assert.Equal(t, 200, e.Cooldown)
		})

		it("gets a fresh velocity on every kind change", func() {
			e.Vel = vmath.Vec2{X: 5, Y: 5}
			subject.Transition(&e, counts(0, 1, 0))
			assert.GreaterOrEqual(t, e.Vel.X, -1.0)
			assert.Less(t, e.Vel.X, 1.0)
			assert.GreaterOrEqual(t, e.Vel.Y, -1.0)
			assert.Less(t, e.Vel.Y, 1.0)
		})

		it("keeps its training when it dies", func() {
			e.Training = 30
			subject.Transition(&e, counts(0, 1, 0))
			assert.Equal(t, 30.0, e.Training)
		})
	})

	describe("Medic", func() {
		it.Before(func() {
			e = component.Entity{Kind: component.KindMedic, Training: 100}
		})

		it("holds against a single zombie", func() {
			assert.False(t, subject.Transition(&e, counts(0, 1, 0)).Changed())
		})

		it("holds while a civilian is in range", func() {
			assert.False(t, subject.Transition(&e, counts(1, 5, 0)).Changed())
		})

		it("is overrun by two zombies with no civilian to protect", func() {
			change := subject.Transition(&e, counts(0, 2, 0))
			assert.Equal(t, component.KindZombie, change.To)
			assert.Equal(t, 50, e.Cooldown)
		})
	})

	describe("Zombie", func() {
		it.Before(func() {
			e = component.Entity{Kind: component.KindZombie}
		})

		it("roams without a medic", func() {
			assert.False(t, subject.Transition(&e, counts(10, 10, 0)).Changed())
		})

		it("is cured by any medic", func() {
			change := subject.Transition(&e, counts(0, 0, 1))
			assert.Equal(t, component.KindCivilian, change.To)
			assert.Equal(t, 50, e.Cooldown)
		})
	})

	describe("invalid kind", func() {
		it("panics", func() {
			e = component.Entity{Kind: component.KindCount}
			assert.Panics(t, func() { subject.Transition(&e, counts(0, 0, 0)) })
		})
	})

	describe("determinism", func() {
		it("produces identical kind and cooldown regardless of the random source", func() {
			other := NewStateMachine(DefaultConfig().Rules, vmath.NewFastRand(9001))
			inputs := []component.Counts{counts(0, 0, 0), counts(0, 1, 0), counts(0, 2, 1), counts(0, 3, 0)}

			for _, kind := range component.Kinds {
				for _, c := range inputs {
					a := component.Entity{Kind: kind, Cooldown: 20, Training: 50}
					b := a
					subject.Transition(&a, c)
					other.Transition(&b, c)
					assert.Equal(t, a.Kind, b.Kind)
					assert.Equal(t, a.Cooldown, b.Cooldown)
					assert.Equal(t, a.Training, b.Training)
				}
			}
		})
	})
}
