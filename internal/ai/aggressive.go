package ai

import (
	"math"
	"math/rand"

	"orb-duel/engine/internal/vec"
)

// Defaults for the aggressive policy. Cadence is in ticks; at the standard
// timestep six ticks is a tenth of a second between decisions.
const (
	DefaultCadenceTicks    = 6
	DefaultJitterRadians   = 0.05
	DefaultLeadFactor      = 0.15
	DefaultPreferredRange  = 220.0
	DefaultRetreatRange    = 120.0
	DefaultMinAttackEnergy = 10.0
)

// Aggressive closes to a preferred range and fires whenever it holds enough
// energy. Aim is led by the opponent's velocity and perturbed with seeded
// jitter so repeated battles with the same seed replay identically while
// distinct seeds diverge.
type Aggressive struct {
	// CadenceTicks is the number of ticks between decisions. The previous
	// action's movement is held between decisions; attacks fire only on
	// decision ticks.
	CadenceTicks   uint64
	JitterRadians  float64
	LeadFactor     float64
	PreferredRange float64
	RetreatRange   float64
	// MinAttackEnergy suppresses attack intents while energy is below this
	// threshold, letting the combatant bank energy instead of starving.
	MinAttackEnergy float64

	rng *rand.Rand

	nextDecisionAt uint64
	decided        bool
	held           Action
}

// NewAggressive constructs the default duel policy around a seeded RNG.
func NewAggressive(rng *rand.Rand) *Aggressive {
	return &Aggressive{
		CadenceTicks:    DefaultCadenceTicks,
		JitterRadians:   DefaultJitterRadians,
		LeadFactor:      DefaultLeadFactor,
		PreferredRange:  DefaultPreferredRange,
		RetreatRange:    DefaultRetreatRange,
		MinAttackEnergy: DefaultMinAttackEnergy,
		rng:             rng,
	}
}

// Decide implements Policy.
func (p *Aggressive) Decide(view View) Action {
	if p == nil {
		return Action{}
	}
	if p.decided && view.Tick < p.nextDecisionAt {
		held := p.held
		held.Attack = false
		return held
	}

	cadence := p.CadenceTicks
	if cadence == 0 {
		cadence = 1
	}
	p.nextDecisionAt = view.Tick + cadence
	p.decided = true

	toOpponent := view.Opponent.Pos.Sub(view.Self.Pos)
	distance := toOpponent.Length()

	action := Action{}
	switch {
	case distance > p.PreferredRange:
		action.Move = toOpponent.Normalize()
	case distance < p.RetreatRange:
		action.Move = toOpponent.Normalize().Scale(-1)
	}

	predicted := view.Opponent.Pos.Add(view.Opponent.Vel.Scale(p.LeadFactor))
	aim := predicted.Sub(view.Self.Pos).Normalize()
	if aim.IsZero() {
		aim = vec.Vec2{Y: 1}
	}
	if p.rng != nil && p.JitterRadians > 0 {
		aim = rotate(aim, (p.rng.Float64()*2-1)*p.JitterRadians)
	}
	action.Aim = aim
	action.Attack = view.Self.Energy >= p.MinAttackEnergy

	p.held = action
	return action
}

func rotate(v vec.Vec2, angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	return vec.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
