package combat

import (
	"context"

	"orb-duel/engine/logging"
)

const (
	// EventProjectileSpawned is emitted when an attack passes gating and a
	// projectile enters the world.
	EventProjectileSpawned logging.EventType = "combat.projectile_spawned"
	// EventDamage is emitted when a projectile deals damage to a combatant.
	EventDamage logging.EventType = "combat.damage"
	// EventKnockout is emitted when a combatant's health reaches zero.
	EventKnockout logging.EventType = "combat.knockout"
)

// ProjectileSpawnedPayload captures the weapon and spawn parameters for a fired projectile.
type ProjectileSpawnedPayload struct {
	Weapon     string  `json:"weapon"`
	Damage     float64 `json:"damage"`
	Speed      float64 `json:"speed"`
	EnergyLeft float64 `json:"energyLeft"`
}

// DamagePayload captures the amount dealt to a single combatant.
type DamagePayload struct {
	Weapon       string  `json:"weapon,omitempty"`
	Amount       float64 `json:"amount"`
	TargetHealth float64 `json:"targetHealth"`
}

// KnockoutPayload describes the context for a fatal hit.
type KnockoutPayload struct {
	Weapon string `json:"weapon,omitempty"`
}

// ProjectileSpawned publishes a projectile spawn event.
func ProjectileSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, projectile logging.EntityRef, payload ProjectileSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileSpawned,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{projectile},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Damage publishes a combat damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Knockout publishes a knockout event for the defeated combatant.
func Knockout(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload KnockoutPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventKnockout,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
