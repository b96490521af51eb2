package world

import "orb-duel/engine/internal/vec"

// EntityKind tags the variant stored in an Entity.
type EntityKind string

const (
	EntityKindCombatant  EntityKind = "combatant"
	EntityKindProjectile EntityKind = "projectile"
)

// Entity is the tagged union for everything the world tracks. Exactly one of
// Combatant or Projectile is non-nil, matching Kind.
type Entity struct {
	ID     string
	Kind   EntityKind
	Pos    vec.Vec2
	Vel    vec.Vec2
	Radius float64

	Combatant  *CombatantState
	Projectile *ProjectileState
}

// CombatantState carries the mutable fields unique to a player- or
// AI-controlled combatant.
type CombatantState struct {
	Health    float64
	MaxHealth float64
	Energy    float64
	MaxEnergy float64

	WeaponID string
	// Cooldowns maps weapon id to the simulation time of the last shot.
	// A missing entry means the weapon has never fired and is ready.
	Cooldowns      map[string]float64
	LastAttackTime float64

	// InvulnerableUntil is the simulation time until which incoming hits
	// are ignored. Zero means never hit.
	InvulnerableUntil float64
}

// ProjectileState carries the mutable fields unique to an in-flight
// projectile.
type ProjectileState struct {
	OwnerID   string
	WeaponID  string
	Damage    float64
	ExpiresAt float64

	// SpawnedTick records the tick on which the projectile entered the
	// world. Projectiles integrate and collide starting the next tick so
	// step results never depend on iteration order within the spawn tick.
	SpawnedTick uint64
}

// CombatantParams bundles the initial stats for NewCombatant.
type CombatantParams struct {
	MaxHealth float64
	MaxEnergy float64
	WeaponID  string
}

// NewCombatant constructs a combatant entity at the provided position with
// full health and energy.
func NewCombatant(id string, pos vec.Vec2, radius float64, params CombatantParams) *Entity {
	return &Entity{
		ID:     id,
		Kind:   EntityKindCombatant,
		Pos:    pos,
		Radius: radius,
		Combatant: &CombatantState{
			Health:    params.MaxHealth,
			MaxHealth: params.MaxHealth,
			Energy:    params.MaxEnergy,
			MaxEnergy: params.MaxEnergy,
			WeaponID:  params.WeaponID,
		},
	}
}

// ProjectileParams bundles the initial state for NewProjectile.
type ProjectileParams struct {
	OwnerID     string
	WeaponID    string
	Damage      float64
	ExpiresAt   float64
	SpawnedTick uint64
}

// NewProjectile constructs a projectile entity with the provided velocity.
func NewProjectile(id string, pos, vel vec.Vec2, radius float64, params ProjectileParams) *Entity {
	return &Entity{
		ID:     id,
		Kind:   EntityKindProjectile,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Projectile: &ProjectileState{
			OwnerID:     params.OwnerID,
			WeaponID:    params.WeaponID,
			Damage:      params.Damage,
			ExpiresAt:   params.ExpiresAt,
			SpawnedTick: params.SpawnedTick,
		},
	}
}
