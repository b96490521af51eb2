package referee

import (
	"testing"

	"orb-duel/engine/internal/vec"
	"orb-duel/engine/internal/world"
)

func newRefereeWorld(t *testing.T, healthA, healthB float64) *world.World {
	t.Helper()
	w, err := world.New(world.Config{}, world.Deps{})
	if err != nil {
		t.Fatalf("world construction failed: %v", err)
	}
	a := world.NewCombatant("p1", vec.Vec2{X: 100, Y: 300}, 14, world.CombatantParams{MaxHealth: 100})
	b := world.NewCombatant("p2", vec.Vec2{X: 700, Y: 300}, 14, world.CombatantParams{MaxHealth: 100})
	a.Combatant.Health = healthA
	b.Combatant.Health = healthB
	for _, entity := range []*world.Entity{a, b} {
		if err := w.AddEntity(entity); err != nil {
			t.Fatalf("add combatant: %v", err)
		}
	}
	return w
}

func TestCheckOutcomeContinuesWhileBothAlive(t *testing.T) {
	w := newRefereeWorld(t, 50, 80)
	ref := New(Config{}, nil)

	if outcome, done := ref.CheckOutcome(w, 10); done {
		t.Fatalf("expected battle to continue, got %+v", outcome)
	}
}

func TestCheckOutcomeDeclaresKnockoutWinner(t *testing.T) {
	w := newRefereeWorld(t, 50, 0)
	ref := New(Config{}, nil)

	outcome, done := ref.CheckOutcome(w, 10)
	if !done {
		t.Fatalf("expected battle to end")
	}
	if outcome.Winner != "p1" || outcome.Draw || outcome.Reason != ReasonKnockout {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestCheckOutcomeDoubleKnockoutBeatsSingle(t *testing.T) {
	w := newRefereeWorld(t, 0, 0)
	ref := New(Config{}, nil)

	outcome, done := ref.CheckOutcome(w, 10)
	if !done {
		t.Fatalf("expected battle to end")
	}
	if !outcome.Draw || outcome.Winner != "" || outcome.Reason != ReasonDoubleKnockout {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestCheckOutcomeTimeoutPrefersGreaterHealth(t *testing.T) {
	w := newRefereeWorld(t, 40, 60)
	ref := New(Config{TimeoutSeconds: 30}, nil)

	if _, done := ref.CheckOutcome(w, 29.9); done {
		t.Fatalf("expected battle to continue before the timeout")
	}

	outcome, done := ref.CheckOutcome(w, 30)
	if !done {
		t.Fatalf("expected timeout to end the battle")
	}
	if outcome.Winner != "p2" || outcome.Reason != ReasonTimeout {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestCheckOutcomeTimeoutTieIsDraw(t *testing.T) {
	w := newRefereeWorld(t, 55, 55)
	ref := New(Config{TimeoutSeconds: 30}, nil)

	outcome, done := ref.CheckOutcome(w, 30)
	if !done {
		t.Fatalf("expected timeout to end the battle")
	}
	if !outcome.Draw || outcome.Reason != ReasonTimeout {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestKnockoutTakesPrecedenceOverTimeout(t *testing.T) {
	w := newRefereeWorld(t, 0, 60)
	ref := New(Config{TimeoutSeconds: 30}, nil)

	outcome, done := ref.CheckOutcome(w, 30)
	if !done {
		t.Fatalf("expected battle to end")
	}
	if outcome.Winner != "p2" || outcome.Reason != ReasonKnockout {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}
