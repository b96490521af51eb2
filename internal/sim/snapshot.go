package sim

import "orb-duel/engine/internal/vec"

// CombatantView is the wire representation of one combatant.
type CombatantView struct {
	ID           string   `json:"id"`
	Pos          vec.Vec2 `json:"pos"`
	Vel          vec.Vec2 `json:"vel"`
	Radius       float64  `json:"radius"`
	Health       float64  `json:"health"`
	MaxHealth    float64  `json:"maxHealth"`
	Energy       float64  `json:"energy"`
	MaxEnergy    float64  `json:"maxEnergy"`
	HealthRatio  float64  `json:"healthRatio"`
	EnergyRatio  float64  `json:"energyRatio"`
	WeaponID     string   `json:"weaponId"`
	Invulnerable bool     `json:"invulnerable"`
}

// ProjectileView is the wire representation of one in-flight projectile.
type ProjectileView struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"ownerId"`
	WeaponID string   `json:"weaponId"`
	Pos      vec.Vec2 `json:"pos"`
	Vel      vec.Vec2 `json:"vel"`
	Radius   float64  `json:"radius"`
}

// OutcomeView is the wire representation of a finished battle.
type OutcomeView struct {
	Winner  string  `json:"winner,omitempty"`
	Draw    bool    `json:"draw"`
	Reason  string  `json:"reason"`
	Elapsed float64 `json:"elapsedSeconds"`
}

// Snapshot captures the full presentable state of a battle after a tick.
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Now         float64          `json:"now"`
	Combatants  []CombatantView  `json:"combatants"`
	Projectiles []ProjectileView `json:"projectiles"`
	Outcome     *OutcomeView     `json:"outcome,omitempty"`
}
