package sim

import (
	"testing"
	"time"
)

func newTestLoop(t *testing.T, cfg LoopConfig, hooks LoopHooks) *Loop {
	t.Helper()
	core := newDuelCore(t, CoreConfig{})
	loop := NewLoop(core, cfg, hooks)
	if loop == nil {
		t.Fatalf("loop construction failed")
	}
	return loop
}

func TestEnqueueThrottlesPerActor(t *testing.T) {
	var dropped []string
	loop := newTestLoop(t, LoopConfig{CommandCapacity: 16, PerActorLimit: 2}, LoopHooks{
		OnCommandDrop: func(reason string, cmd Command) {
			dropped = append(dropped, reason)
		},
	})

	for i := 0; i < 2; i++ {
		if ok, _ := loop.Enqueue(Command{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}}); !ok {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	ok, reason := loop.Enqueue(Command{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}})
	if ok || reason != CommandRejectQueueLimit {
		t.Fatalf("expected per-actor throttle, got ok=%v reason=%q", ok, reason)
	}
	if len(dropped) != 1 || dropped[0] != CommandRejectQueueLimit {
		t.Fatalf("expected drop hook invocation, got %v", dropped)
	}
}

func TestEnqueueReportsSaturatedBuffer(t *testing.T) {
	loop := newTestLoop(t, LoopConfig{CommandCapacity: 1}, LoopHooks{})

	if ok, _ := loop.Enqueue(Command{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}}); !ok {
		t.Fatalf("first enqueue rejected")
	}
	ok, reason := loop.Enqueue(Command{ActorID: "p2", Type: CommandMove, Move: &MoveCommand{DX: 1}})
	if ok || reason != CommandRejectQueueFull {
		t.Fatalf("expected saturated buffer rejection, got ok=%v reason=%q", ok, reason)
	}
}

func TestStepDrainsQueueAndAdvances(t *testing.T) {
	loop := newTestLoop(t, LoopConfig{CommandCapacity: 16, PerActorLimit: 4}, LoopHooks{})
	dt := 1.0 / 60.0

	if ok, _ := loop.Enqueue(Command{ActorID: "p1", Type: CommandAttack, Attack: &AttackCommand{AimX: 1}}); !ok {
		t.Fatalf("enqueue rejected")
	}
	result := loop.Step(LoopTickContext{Now: time.Now(), Delta: dt})

	if len(result.Commands) != 1 {
		t.Fatalf("expected one drained command, got %d", len(result.Commands))
	}
	if loop.Pending() != 0 {
		t.Fatalf("expected empty queue after step, got %d", loop.Pending())
	}
	if result.Snapshot.Tick != 1 {
		t.Fatalf("expected one simulated tick, got %d", result.Snapshot.Tick)
	}
	if len(result.Snapshot.Projectiles) != 1 {
		t.Fatalf("expected staged attack to spawn a projectile")
	}
}

func TestStepResetsPerActorCounts(t *testing.T) {
	loop := newTestLoop(t, LoopConfig{CommandCapacity: 16, PerActorLimit: 1}, LoopHooks{})

	if ok, _ := loop.Enqueue(Command{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}}); !ok {
		t.Fatalf("enqueue rejected")
	}
	loop.Step(LoopTickContext{Now: time.Now(), Delta: 1.0 / 60.0})
	if ok, reason := loop.Enqueue(Command{ActorID: "p1", Type: CommandMove, Move: &MoveCommand{DX: 1}}); !ok {
		t.Fatalf("expected throttle reset after step, got reason %q", reason)
	}
}
