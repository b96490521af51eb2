package sim

import (
	"crypto/sha256"
	"encoding/json"
	"strconv"
	"testing"

	"orb-duel/engine/internal/ai"
	"orb-duel/engine/internal/referee"
	"orb-duel/engine/internal/world"
)

func newDuelCore(t *testing.T, cfg CoreConfig) *Core {
	t.Helper()
	if cfg.Combatants == nil {
		cfg.Combatants = []CombatantSeed{
			{ID: "p1", WeaponID: "blaster"},
			{ID: "p2", WeaponID: "blaster"},
		}
	}
	core, err := NewCore(cfg, Deps{})
	if err != nil {
		t.Fatalf("core construction failed: %v", err)
	}
	return core
}

func snapshotDigest(t *testing.T, s Snapshot) [32]byte {
	t.Helper()
	payload, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	return sha256.Sum256(payload)
}

func TestNewCoreRequiresTwoCombatants(t *testing.T) {
	if _, err := NewCore(CoreConfig{Combatants: []CombatantSeed{{ID: "solo", WeaponID: "blaster"}}}, Deps{}); err == nil {
		t.Fatalf("expected one-combatant config to be rejected")
	}
}

func TestNewCoreRejectsUnknownWeapon(t *testing.T) {
	cfg := CoreConfig{Combatants: []CombatantSeed{
		{ID: "p1", WeaponID: "no-such"},
		{ID: "p2", WeaponID: "blaster"},
	}}
	if _, err := NewCore(cfg, Deps{}); err == nil {
		t.Fatalf("expected unknown weapon to be rejected at construction")
	}
}

func TestMoveCommandSetsVelocity(t *testing.T) {
	core := newDuelCore(t, CoreConfig{})
	dt := core.World().Config().FixedTimeStep

	if err := core.Apply([]Command{{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}}}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	core.Advance(dt)

	entity, ok := core.World().Entity("p1")
	if !ok {
		t.Fatalf("missing combatant")
	}
	if entity.Vel.X != DefaultMoveSpeed || entity.Vel.Y != 0 {
		t.Fatalf("expected velocity {%v 0}, got %+v", DefaultMoveSpeed, entity.Vel)
	}
}

func TestAttackCommandSpawnsProjectile(t *testing.T) {
	core := newDuelCore(t, CoreConfig{})
	dt := core.World().Config().FixedTimeStep

	if err := core.Apply([]Command{{ActorID: "p1", Type: CommandAttack, Attack: &AttackCommand{AimX: 1}}}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	core.Advance(dt)

	snapshot := core.Snapshot()
	if len(snapshot.Projectiles) != 1 {
		t.Fatalf("expected one projectile, got %d", len(snapshot.Projectiles))
	}
	if snapshot.Projectiles[0].OwnerID != "p1" {
		t.Fatalf("unexpected owner %q", snapshot.Projectiles[0].OwnerID)
	}
}

func TestApplyRejectsUnknownCommandType(t *testing.T) {
	core := newDuelCore(t, CoreConfig{})
	if err := core.Apply([]Command{{ActorID: "p1", Type: "Teleport"}}); err == nil {
		t.Fatalf("expected unknown command type to be rejected")
	}
}

func TestBattleReachesOutcomeAndFreezes(t *testing.T) {
	seed := "duel-test"
	cfg := CoreConfig{
		World:   world.Config{Seed: seed},
		Referee: referee.Config{TimeoutSeconds: 20},
		Combatants: []CombatantSeed{
			{ID: "p1", WeaponID: "blaster", Policy: ai.NewAggressive(world.NewDeterministicRNG(seed, "ai-p1"))},
			{ID: "p2", WeaponID: "blaster", Policy: ai.NewAggressive(world.NewDeterministicRNG(seed, "ai-p2"))},
		},
	}
	core := newDuelCore(t, cfg)
	dt := core.World().Config().FixedTimeStep

	for step := 0; step < 25*60; step++ {
		core.Advance(dt)
		if _, done := core.Outcome(); done {
			break
		}
	}

	outcome, done := core.Outcome()
	if !done {
		t.Fatalf("expected battle to conclude within the timeout window")
	}
	switch outcome.Reason {
	case referee.ReasonKnockout, referee.ReasonDoubleKnockout, referee.ReasonTimeout:
	default:
		t.Fatalf("unexpected outcome reason %q", outcome.Reason)
	}
	if outcome.Draw != (outcome.Winner == "") {
		t.Fatalf("expected winner and draw to be mutually exclusive, got %+v", outcome)
	}

	frozen := core.Snapshot()
	core.Advance(dt)
	after := core.Snapshot()
	if snapshotDigest(t, frozen) != snapshotDigest(t, after) {
		t.Fatalf("expected world frozen after outcome latch")
	}
}

func TestIdenticalSeedsReplayIdentically(t *testing.T) {
	build := func() *Core {
		seed := "replay"
		return newDuelCore(t, CoreConfig{
			World: world.Config{Seed: seed},
			Combatants: []CombatantSeed{
				{ID: "p1", WeaponID: "blaster", Policy: ai.NewAggressive(world.NewDeterministicRNG(seed, "ai-p1"))},
				{ID: "p2", WeaponID: "needler", Policy: ai.NewAggressive(world.NewDeterministicRNG(seed, "ai-p2"))},
			},
		})
	}
	a := build()
	b := build()

	// Projectile ids must come from the same deterministic source for the
	// comparison to be meaningful.
	counterA, counterB := 0, 0
	a.resolver.NewProjectileID = func() string { counterA++; return "proj-" + strconv.Itoa(counterA) }
	b.resolver.NewProjectileID = func() string { counterB++; return "proj-" + strconv.Itoa(counterB) }

	dt := a.World().Config().FixedTimeStep
	for step := 0; step < 600; step++ {
		a.Advance(dt)
		b.Advance(dt)
		if step%60 != 0 {
			continue
		}
		if snapshotDigest(t, a.Snapshot()) != snapshotDigest(t, b.Snapshot()) {
			t.Fatalf("step %d: snapshots diverged for identical seeds", step)
		}
	}
}
