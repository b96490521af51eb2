// Command arena-server hosts a battle over HTTP and WebSocket. Player one
// is claimable by a client via /join; player two is driven by the built-in
// policy. Pass -spectate to watch two policies fight each other.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"orb-duel/engine/internal/ai"
	"orb-duel/engine/internal/catalog"
	arenanet "orb-duel/engine/internal/net"
	"orb-duel/engine/internal/referee"
	"orb-duel/engine/internal/sim"
	"orb-duel/engine/internal/telemetry"
	"orb-duel/engine/internal/world"
	"orb-duel/engine/logging"
	"orb-duel/engine/logging/sinks"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "listen address")
		catalogPath = flag.String("catalog", "", "path to a catalog JSON file (built-in catalog when empty)")
		seed        = flag.String("seed", world.DefaultSeed, "deterministic battle seed")
		timeout     = flag.Float64("timeout", referee.DefaultTimeoutSeconds, "battle timeout in seconds")
		tickRate    = flag.Int("tick-rate", sim.DefaultTickRate, "simulation ticks per second")
		logJSON     = flag.String("log-json", "", "write NDJSON event log to this file")
		p1Character = flag.String("p1", "Vanguard", "character for player one")
		p2Character = flag.String("p2", "Bruiser", "character for player two")
		spectate    = flag.Bool("spectate", false, "drive both combatants with the built-in policy")
	)
	flag.Parse()

	router, err := buildRouter(*logJSON)
	if err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	seeds := []sim.CombatantSeed{
		{ID: "p1", Character: *p1Character},
		{ID: "p2", Character: *p2Character, Policy: ai.NewAggressive(world.NewDeterministicRNG(*seed, "ai-p2"))},
	}
	controllable := []string{"p1"}
	if *spectate {
		seeds[0].Policy = ai.NewAggressive(world.NewDeterministicRNG(*seed, "ai-p1"))
		controllable = nil
	}

	core, err := sim.NewCore(sim.CoreConfig{
		World:      world.Config{Seed: *seed},
		Referee:    referee.Config{TimeoutSeconds: *timeout},
		Catalog:    cat,
		Combatants: seeds,
	}, sim.Deps{
		Logger:    telemetry.WrapLogger(log.Default()),
		Metrics:   telemetry.NewMapMetrics(),
		Publisher: router,
	})
	if err != nil {
		log.Fatalf("battle setup failed: %v", err)
	}

	var hub *arenanet.Hub
	loop := sim.NewLoop(core, sim.LoopConfig{
		TickRate:        *tickRate,
		CatchupMaxTicks: 4,
		CommandCapacity: 256,
		PerActorLimit:   32,
		WarningStep:     64,
	}, sim.LoopHooks{
		AfterStep: func(result sim.LoopStepResult) {
			hub.Broadcast(result)
		},
		OnQueueWarning: func(length int) {
			log.Printf("command queue backlog length=%d", length)
		},
	})
	hub = arenanet.NewHub(loop, arenanet.Config{Controllable: controllable})

	stop := make(chan struct{})
	go loop.Run(stop)
	defer close(stop)

	log.Printf("arena listening on %s (seed=%q p1=%s p2=%s)", *addr, *seed, *p1Character, *p2Character)
	if err := http.ListenAndServe(*addr, arenanet.NewServeMux(hub)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func buildRouter(jsonPath string) (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)},
	}
	if jsonPath != "" {
		file, err := os.OpenFile(jsonPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", jsonPath, err)
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval)})
	}
	return logging.NewRouter(logging.SystemClock{}, cfg, named)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}
