package ai

import (
	"math"
	"testing"

	"orb-duel/engine/internal/vec"
	"orb-duel/engine/internal/world"
)

func duelView(tick uint64, selfPos, opponentPos vec.Vec2, energy float64) View {
	return View{
		Tick: tick,
		Self: Combatant{
			ID:        "bot",
			Pos:       selfPos,
			Health:    100,
			MaxHealth: 100,
			Energy:    energy,
		},
		Opponent: Combatant{
			ID:        "p1",
			Pos:       opponentPos,
			Health:    100,
			MaxHealth: 100,
			Energy:    50,
		},
	}
}

func TestAggressiveAimsTowardOpponent(t *testing.T) {
	policy := NewAggressive(world.NewDeterministicRNG("seed", "ai"))
	view := duelView(1, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50)

	action := policy.Decide(view)
	if !action.Attack {
		t.Fatalf("expected attack with full energy")
	}
	if action.Aim.X <= 0 {
		t.Fatalf("expected aim toward opponent on the right, got %+v", action.Aim)
	}
	angle := math.Atan2(action.Aim.Y, action.Aim.X)
	if math.Abs(angle) > DefaultJitterRadians+1e-9 {
		t.Fatalf("expected aim within jitter of the opponent bearing, got angle %v", angle)
	}
}

func TestAggressiveClosesAndRetreats(t *testing.T) {
	policy := NewAggressive(nil)

	far := policy.Decide(duelView(1, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50))
	if far.Move.X <= 0 {
		t.Fatalf("expected approach when beyond preferred range, got %+v", far.Move)
	}

	policy = NewAggressive(nil)
	near := policy.Decide(duelView(1, vec.Vec2{X: 400, Y: 300}, vec.Vec2{X: 450, Y: 300}, 50))
	if near.Move.X >= 0 {
		t.Fatalf("expected retreat when inside retreat range, got %+v", near.Move)
	}

	policy = NewAggressive(nil)
	held := policy.Decide(duelView(1, vec.Vec2{X: 400, Y: 300}, vec.Vec2{X: 400 + DefaultPreferredRange - 10, Y: 300}, 50))
	if !held.Move.IsZero() {
		t.Fatalf("expected hold inside the comfort band, got %+v", held.Move)
	}
}

func TestAggressiveHoldsBetweenDecisions(t *testing.T) {
	policy := NewAggressive(nil)

	first := policy.Decide(duelView(1, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50))
	if !first.Attack {
		t.Fatalf("expected attack on decision tick")
	}
	second := policy.Decide(duelView(2, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50))
	if second.Attack {
		t.Fatalf("expected no attack between decisions")
	}
	if second.Move != first.Move {
		t.Fatalf("expected movement held between decisions")
	}
	third := policy.Decide(duelView(1+DefaultCadenceTicks, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50))
	if !third.Attack {
		t.Fatalf("expected fresh decision after cadence elapsed")
	}
}

func TestAggressiveBanksEnergyBelowThreshold(t *testing.T) {
	policy := NewAggressive(nil)
	action := policy.Decide(duelView(1, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, DefaultMinAttackEnergy-1))
	if action.Attack {
		t.Fatalf("expected attack suppressed while banking energy")
	}
}

func TestAggressiveIsDeterministicPerSeed(t *testing.T) {
	a := NewAggressive(world.NewDeterministicRNG("seed", "ai"))
	b := NewAggressive(world.NewDeterministicRNG("seed", "ai"))

	for tick := uint64(1); tick <= 60; tick++ {
		view := duelView(tick, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 700, Y: 300}, 50)
		if a.Decide(view) != b.Decide(view) {
			t.Fatalf("tick %d: expected identical decisions for identical seeds", tick)
		}
	}
}
