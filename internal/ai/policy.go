// Package ai decides combat actions for computer-controlled combatants. It
// holds its own small view types so policies never import the world package
// and can be evaluated against synthetic snapshots in tests.
package ai

import "orb-duel/engine/internal/vec"

// Combatant is the read-only slice of combatant state a policy may inspect.
type Combatant struct {
	ID        string
	Pos       vec.Vec2
	Vel       vec.Vec2
	Health    float64
	MaxHealth float64
	Energy    float64
}

// View is the per-tick observation handed to a policy.
type View struct {
	Tick     uint64
	Now      float64
	Self     Combatant
	Opponent Combatant
}

// Action is a policy's intent for the current tick. Move is a desired
// movement direction (not a velocity); the engine scales it to the move
// speed. Aim is only meaningful when Attack is set.
type Action struct {
	Move   vec.Vec2
	Aim    vec.Vec2
	Attack bool
}

// Policy converts observations into actions. Implementations must be
// deterministic for a fixed RNG seed and call sequence.
type Policy interface {
	Decide(view View) Action
}
