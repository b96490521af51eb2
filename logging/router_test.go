package logging_test

import (
	"context"
	"testing"
	"time"

	"orb-duel/engine/logging"
	"orb-duel/engine/logging/sinks"
)

func TestRouterForwardsToSinks(t *testing.T) {
	memory := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityDebug
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("router construction failed: %v", err)
	}

	router.Publish(context.Background(), logging.Event{
		Type:     "combat.damage",
		Tick:     7,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Type != "combat.damage" || events[0].Tick != 7 {
		t.Fatalf("unexpected event %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected router to stamp event time")
	}
	if stats := router.Stats(); stats.EventsTotal != 1 || stats.DroppedTotal != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestRouterAppliesSeverityFloor(t *testing.T) {
	memory := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("router construction failed: %v", err)
	}

	router.Publish(context.Background(), logging.Event{Type: "combat.projectile_spawned", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "simulation.tick_budget_overrun", Severity: logging.SeverityWarn})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected the debug event to be filtered, got %d events", len(events))
	}
	if events[0].Type != "simulation.tick_budget_overrun" {
		t.Fatalf("unexpected surviving event %+v", events[0])
	}
}

func TestRouterMergesConfiguredFields(t *testing.T) {
	memory := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"battle": "b-1"}
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("router construction failed: %v", err)
	}

	router.Publish(context.Background(), logging.Event{Type: "battle.outcome", Severity: logging.SeverityInfo})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Extra["battle"] != "b-1" {
		t.Fatalf("expected configured field merged into extra, got %+v", events[0].Extra)
	}
}
