// Command battle runs a headless battle to completion and prints the
// outcome. Both combatants are driven by the built-in policy, so a seed
// fully determines the result; it is the quickest way to sanity-check a
// catalog change.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"orb-duel/engine/internal/ai"
	"orb-duel/engine/internal/catalog"
	"orb-duel/engine/internal/referee"
	"orb-duel/engine/internal/sim"
	"orb-duel/engine/internal/telemetry"
	"orb-duel/engine/internal/world"
	"orb-duel/engine/logging"
	"orb-duel/engine/logging/sinks"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "path to a catalog JSON file (built-in catalog when empty)")
		seed        = flag.String("seed", world.DefaultSeed, "deterministic battle seed")
		timeout     = flag.Float64("timeout", referee.DefaultTimeoutSeconds, "battle timeout in seconds")
		p1Character = flag.String("p1", "Vanguard", "character for player one")
		p2Character = flag.String("p2", "Bruiser", "character for player two")
		quiet       = flag.Bool("quiet", false, "suppress per-event logging")
	)
	flag.Parse()

	cfg := logging.DefaultConfig()
	var named []logging.NamedSink
	if !*quiet {
		named = append(named, logging.NamedSink{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)})
	}
	router, err := logging.NewRouter(logging.SystemClock{}, cfg, named)
	if err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	cat := catalog.Default()
	if *catalogPath != "" {
		if cat, err = catalog.LoadFile(*catalogPath); err != nil {
			log.Fatalf("catalog load failed: %v", err)
		}
	}

	core, err := sim.NewCore(sim.CoreConfig{
		World:   world.Config{Seed: *seed},
		Referee: referee.Config{TimeoutSeconds: *timeout},
		Catalog: cat,
		Combatants: []sim.CombatantSeed{
			{ID: "p1", Character: *p1Character, Policy: ai.NewAggressive(world.NewDeterministicRNG(*seed, "ai-p1"))},
			{ID: "p2", Character: *p2Character, Policy: ai.NewAggressive(world.NewDeterministicRNG(*seed, "ai-p2"))},
		},
	}, sim.Deps{
		Logger:    telemetry.WrapLogger(log.Default()),
		Metrics:   telemetry.NewMapMetrics(),
		Publisher: router,
	})
	if err != nil {
		log.Fatalf("battle setup failed: %v", err)
	}

	dt := core.World().Config().FixedTimeStep
	for {
		core.Advance(dt)
		if _, done := core.Outcome(); done {
			break
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	router.Close(ctx)

	outcome, _ := core.Outcome()
	switch {
	case outcome.Draw:
		fmt.Printf("draw after %.2fs (%s)\n", core.Elapsed(), outcome.Reason)
	default:
		fmt.Printf("%s wins after %.2fs (%s)\n", outcome.Winner, core.Elapsed(), outcome.Reason)
	}
}
