package sim

import (
	"context"
	"sync"
	"time"

	"orb-duel/engine/internal/referee"
	logsim "orb-duel/engine/logging/simulation"
)

const (
	// CommandRejectQueueLimit indicates a command was dropped due to per-actor
	// queue throttling.
	CommandRejectQueueLimit = "queue_limit"
	// CommandRejectQueueFull indicates the global command buffer is saturated.
	CommandRejectQueueFull = "queue_full"

	// DefaultTickRate is the wall-clock frequency at which hosts drive the
	// battle when they have no frame source of their own.
	DefaultTickRate = 60
)

// LoopConfig tunes the command buffer and tick loop orchestration.
type LoopConfig struct {
	TickRate        int
	CatchupMaxTicks int
	CommandCapacity int
	PerActorLimit   int
	WarningStep     int
}

// LoopTickContext carries the timing inputs for one loop iteration.
type LoopTickContext struct {
	Now   time.Time
	Delta float64
}

// LoopStepResult summarizes one loop iteration for host-side hooks.
type LoopStepResult struct {
	Tick         uint64
	Now          time.Time
	Delta        float64
	Snapshot     Snapshot
	Commands     []Command
	Duration     time.Duration
	Budget       time.Duration
	ClampedDelta bool
	MaxDelta     float64
}

// LoopHooks let hosts observe the loop without owning its goroutine.
type LoopHooks struct {
	AfterStep      func(LoopStepResult)
	OnQueueWarning func(length int)
	OnCommandDrop  func(reason string, cmd Command)
}

// Loop coordinates command ingestion and the fixed-timestep battle runner.
type Loop struct {
	core   Engine
	buffer *CommandBuffer
	hooks  LoopHooks
	config LoopConfig
	deps   Deps

	queueMu       sync.Mutex
	perActorCount map[string]int
	dropCounts    map[string]uint64
}

// NewLoop wraps the provided engine core with a ring-buffer queue and loop.
func NewLoop(core Engine, cfg LoopConfig, hooks LoopHooks) *Loop {
	if core == nil {
		return nil
	}
	deps := core.Deps().normalized()
	return &Loop{
		core:          core,
		buffer:        NewCommandBuffer(cfg.CommandCapacity, deps.Metrics),
		hooks:         hooks,
		config:        cfg,
		deps:          deps,
		perActorCount: make(map[string]int),
		dropCounts:    make(map[string]uint64),
	}
}

// Deps returns the injected dependencies for the underlying engine.
func (l *Loop) Deps() Deps {
	if l == nil {
		return Deps{}
	}
	return l.deps
}

// Apply delegates to the underlying engine.
func (l *Loop) Apply(cmds []Command) error {
	if l == nil {
		return nil
	}
	return l.core.Apply(cmds)
}

// Advance delegates to the underlying engine.
func (l *Loop) Advance(elapsed float64) {
	if l == nil {
		return
	}
	l.core.Advance(elapsed)
}

// Snapshot delegates to the underlying engine.
func (l *Loop) Snapshot() Snapshot {
	if l == nil {
		return Snapshot{}
	}
	return l.core.Snapshot()
}

// Outcome delegates to the underlying engine.
func (l *Loop) Outcome() (referee.Outcome, bool) {
	if l == nil {
		return referee.Outcome{}, false
	}
	return l.core.Outcome()
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	return l.buffer.Len()
}

// Enqueue stages a command, enforcing per-actor throttling and capacity limits.
func (l *Loop) Enqueue(cmd Command) (bool, string) {
	if l == nil {
		return false, CommandRejectQueueFull
	}
	reason := ""
	var dropCount uint64
	l.queueMu.Lock()
	if l.config.PerActorLimit > 0 && cmd.ActorID != "" {
		count := l.perActorCount[cmd.ActorID]
		if count >= l.config.PerActorLimit {
			reason = CommandRejectQueueLimit
			dropCount = l.incrementDropLocked(cmd.ActorID)
		} else {
			l.perActorCount[cmd.ActorID] = count + 1
		}
	}
	if reason == "" {
		if !l.buffer.Push(cmd) {
			reason = CommandRejectQueueFull
			dropCount = l.incrementDropLocked(cmd.ActorID)
		} else if l.config.WarningStep > 0 {
			length := l.buffer.Len()
			if length >= l.config.WarningStep && length%l.config.WarningStep == 0 {
				l.queueMu.Unlock()
				if l.hooks.OnQueueWarning != nil {
					l.hooks.OnQueueWarning(length)
				}
				return true, ""
			}
		}
	}
	l.queueMu.Unlock()
	if reason != "" {
		l.reportDrop(reason, cmd, dropCount)
		return false, reason
	}
	return true, ""
}

// Step drains the staged commands and advances the battle by the provided
// interval.
func (l *Loop) Step(ctx LoopTickContext) LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	commands := l.drainCommands()
	_ = l.core.Apply(commands)
	l.core.Advance(ctx.Delta)
	snapshot := l.core.Snapshot()
	return LoopStepResult{
		Tick:     snapshot.Tick,
		Now:      ctx.Now,
		Delta:    ctx.Delta,
		Snapshot: snapshot,
		Commands: commands,
	}
}

// Run drives the fixed-timestep loop until the stop channel closes. Large
// wall-clock gaps are clamped to CatchupMaxTicks worth of simulation so a
// stalled host does not spiral.
func (l *Loop) Run(stop <-chan struct{}) {
	if l == nil {
		return
	}
	tickRate := l.config.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	clock := l.deps.Clock
	last := clock.Now()
	budgetSeconds := 1.0 / float64(tickRate)
	maxDt := budgetSeconds
	if l.config.CatchupMaxTicks > 1 {
		maxDt = budgetSeconds * float64(l.config.CatchupMaxTicks)
	}
	budgetDuration := time.Second / time.Duration(tickRate)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := clock.Now()
			dt := now.Sub(last).Seconds()
			clamped := false
			if dt <= 0 {
				dt = budgetSeconds
			} else if dt > maxDt {
				dt = maxDt
				clamped = true
			}
			last = now

			start := clock.Now()
			result := l.Step(LoopTickContext{Now: now, Delta: dt})
			result.Duration = clock.Now().Sub(start)
			result.Budget = budgetDuration
			result.ClampedDelta = clamped
			result.MaxDelta = maxDt

			if result.Duration > result.Budget {
				logsim.TickBudgetOverrun(context.Background(), l.deps.Publisher, result.Tick, logsim.TickBudgetOverrunPayload{
					DurationMillis: result.Duration.Milliseconds(),
					BudgetMillis:   result.Budget.Milliseconds(),
					Ratio:          float64(result.Duration) / float64(result.Budget),
				})
			}

			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}

func (l *Loop) drainCommands() []Command {
	l.queueMu.Lock()
	defer l.queueMu.Unlock()
	commands := l.buffer.Drain()
	if len(l.perActorCount) > 0 {
		l.perActorCount = make(map[string]int)
	}
	return commands
}

func (l *Loop) incrementDropLocked(actorID string) uint64 {
	if actorID == "" {
		return 0
	}
	count := l.dropCounts[actorID] + 1
	l.dropCounts[actorID] = count
	return count
}

func (l *Loop) reportDrop(reason string, cmd Command, count uint64) {
	if l.hooks.OnCommandDrop != nil {
		l.hooks.OnCommandDrop(reason, cmd)
	}
	if count > 0 && count&(count-1) == 0 {
		l.deps.Logger.Printf(
			"[backpressure] dropping command actor=%s type=%s reason=%s count=%d",
			cmd.ActorID,
			cmd.Type,
			reason,
			count,
		)
	}
}

// Ensure Loop implements Engine.
var _ Engine = (*Loop)(nil)
