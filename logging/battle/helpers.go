package battle

import (
	"context"

	"orb-duel/engine/logging"
)

const (
	// EventOutcome is emitted exactly once when the referee resolves a battle.
	EventOutcome logging.EventType = "battle.outcome"
)

// OutcomePayload captures the terminal result of a battle.
type OutcomePayload struct {
	Winner  string  `json:"winner,omitempty"`
	Draw    bool    `json:"draw"`
	Reason  string  `json:"reason"`
	Elapsed float64 `json:"elapsedSeconds"`
}

// Outcome publishes the battle resolution event.
func Outcome(ctx context.Context, pub logging.Publisher, tick uint64, payload OutcomePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventOutcome,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBattle,
		Payload:  payload,
	})
}
