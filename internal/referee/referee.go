// Package referee decides when a battle ends and who won. It only reads
// world state; the simulation engine is responsible for latching the first
// outcome and stopping further gameplay.
package referee

import (
	"context"

	"orb-duel/engine/internal/world"
	"orb-duel/engine/logging"
	logbattle "orb-duel/engine/logging/battle"
)

// Reason names the rule that ended a battle.
type Reason string

const (
	ReasonKnockout       Reason = "knockout"
	ReasonDoubleKnockout Reason = "double-knockout"
	ReasonTimeout        Reason = "timeout"
)

// Outcome is the terminal result of one battle. Winner is empty when Draw
// is set.
type Outcome struct {
	Winner string
	Draw   bool
	Reason Reason
}

// DefaultTimeoutSeconds bounds a battle when neither combatant lands a
// decisive hit.
const DefaultTimeoutSeconds = 120.0

// Config carries the tunable ending rules.
type Config struct {
	// TimeoutSeconds is the elapsed simulation time after which the battle
	// is decided on remaining health. Zero selects the default.
	TimeoutSeconds float64
}

func (cfg Config) normalized() Config {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg
}

// Referee checks terminal conditions after each fixed step.
type Referee struct {
	config    Config
	publisher logging.Publisher
}

// New constructs a referee with normalized configuration.
func New(cfg Config, publisher logging.Publisher) *Referee {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Referee{config: cfg.normalized(), publisher: publisher}
}

// Config returns the normalized ending rules.
func (r *Referee) Config() Config {
	if r == nil {
		return Config{}.normalized()
	}
	return r.config
}

// CheckOutcome inspects the world after a fixed step and reports whether
// the battle has ended. Precedence runs double knockout, single knockout,
// then timeout; a timeout decision compares remaining health and declares
// a draw on an exact tie. Elapsed is the accumulated simulation time.
func (r *Referee) CheckOutcome(w *world.World, elapsed float64) (Outcome, bool) {
	if r == nil || w == nil {
		return Outcome{}, false
	}

	combatants := w.Combatants()
	var defeated, alive []*world.Entity
	for _, entity := range combatants {
		if entity.Combatant.Alive() {
			alive = append(alive, entity)
		} else {
			defeated = append(defeated, entity)
		}
	}

	switch {
	case len(defeated) >= 2:
		return r.conclude(w, Outcome{Draw: true, Reason: ReasonDoubleKnockout}, elapsed), true
	case len(defeated) == 1 && len(alive) >= 1:
		return r.conclude(w, Outcome{Winner: alive[0].ID, Reason: ReasonKnockout}, elapsed), true
	}

	if elapsed < r.config.TimeoutSeconds {
		return Outcome{}, false
	}
	return r.conclude(w, r.decideOnHealth(alive), elapsed), true
}

// decideOnHealth settles a timeout: the combatant with strictly greater
// remaining health wins, equal health is a draw.
func (r *Referee) decideOnHealth(alive []*world.Entity) Outcome {
	if len(alive) != 2 {
		return Outcome{Draw: true, Reason: ReasonTimeout}
	}
	a, b := alive[0], alive[1]
	switch {
	case a.Combatant.Health > b.Combatant.Health:
		return Outcome{Winner: a.ID, Reason: ReasonTimeout}
	case b.Combatant.Health > a.Combatant.Health:
		return Outcome{Winner: b.ID, Reason: ReasonTimeout}
	default:
		return Outcome{Draw: true, Reason: ReasonTimeout}
	}
}

func (r *Referee) conclude(w *world.World, outcome Outcome, elapsed float64) Outcome {
	logbattle.Outcome(context.Background(), r.publisher, w.Tick(), logbattle.OutcomePayload{
		Winner:  outcome.Winner,
		Draw:    outcome.Draw,
		Reason:  string(outcome.Reason),
		Elapsed: elapsed,
	})
	return outcome
}
