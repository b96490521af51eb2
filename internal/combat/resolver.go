package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"orb-duel/engine/internal/catalog"
	"orb-duel/engine/internal/vec"
	"orb-duel/engine/internal/world"
	"orb-duel/engine/logging"
	logcombat "orb-duel/engine/logging/combat"
)

// ErrNoSuchEntity is returned when an attack references an entity that is
// not in the world. Callers such as AI policies and input handlers may race
// against entity removal, so this is a reportable miss, not a panic.
var ErrNoSuchEntity = errors.New("combat: no such entity")

// ErrNotCombatant is returned when an attack references an entity that
// cannot fire weapons.
var ErrNotCombatant = errors.New("combat: entity is not a combatant")

// Resolver owns per-step combat logic for one battle: attack gating,
// projectile spawning, collision resolution, expiry, and passive energy
// regeneration. It mutates the world in place and publishes combat events.
type Resolver struct {
	Catalog   *catalog.Catalog
	Publisher logging.Publisher

	// NewProjectileID mints entity ids for spawned projectiles. Defaults
	// to uuid-backed ids; tests inject a counter for stable output.
	NewProjectileID func() string
}

func (r *Resolver) nextProjectileID() string {
	if r != nil && r.NewProjectileID != nil {
		return r.NewProjectileID()
	}
	return "proj-" + uuid.NewString()
}

func (r *Resolver) publisher() logging.Publisher {
	if r == nil || r.Publisher == nil {
		return logging.NopPublisher()
	}
	return r.Publisher
}

// RequestAttack fires the combatant's equipped weapon toward aim if the
// weapon is off cooldown and the combatant holds enough energy. It reports
// whether a projectile was spawned. Unknown weapon ids indicate a
// configuration bug upstream and fail fast; unknown entity ids are a
// non-fatal miss.
func (r *Resolver) RequestAttack(w *world.World, actorID string, aim vec.Vec2, now float64) (bool, error) {
	if r == nil || w == nil {
		return false, ErrNoSuchEntity
	}
	entity, ok := w.Entity(actorID)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoSuchEntity, actorID)
	}
	combatant := entity.Combatant
	if entity.Kind != world.EntityKindCombatant || combatant == nil {
		return false, fmt.Errorf("%w: %q", ErrNotCombatant, actorID)
	}
	if !combatant.Alive() {
		return false, nil
	}

	weapon, err := r.Catalog.ResolveWeapon(combatant.WeaponID)
	if err != nil {
		return false, err
	}

	// Energy is checked before the cooldown stamp so a starved attack
	// leaves the cooldown registry untouched.
	if combatant.Energy < weapon.EnergyCost {
		return false, nil
	}
	if !ReadyCooldown(&combatant.Cooldowns, weapon.ID, weapon.Cooldown, now) {
		return false, nil
	}

	combatant.SpendEnergy(weapon.EnergyCost)
	combatant.LastAttackTime = now

	dir := aim.Normalize()
	if dir.IsZero() {
		// Zero-length aim falls back to firing straight down rather than
		// spawning a motionless projectile inside the attacker.
		dir = vec.Vec2{Y: 1}
	}

	offset := entity.Radius + weapon.ProjectileRadius
	projectile := world.NewProjectile(
		r.nextProjectileID(),
		entity.Pos.Add(dir.Scale(offset)),
		dir.Scale(weapon.ProjectileSpeed),
		weapon.ProjectileRadius,
		world.ProjectileParams{
			OwnerID:     entity.ID,
			WeaponID:    weapon.ID,
			Damage:      weapon.Damage,
			ExpiresAt:   now + weapon.Lifespan,
			SpawnedTick: w.Tick(),
		},
	)
	if err := w.AddEntity(projectile); err != nil {
		return false, fmt.Errorf("combat: spawn projectile: %w", err)
	}

	logcombat.ProjectileSpawned(context.Background(), r.publisher(), w.Tick(),
		logging.EntityRef{ID: entity.ID, Kind: logging.EntityKindCombatant},
		logging.EntityRef{ID: projectile.ID, Kind: logging.EntityKindProjectile},
		logcombat.ProjectileSpawnedPayload{
			Weapon:     weapon.ID,
			Damage:     weapon.Damage,
			Speed:      weapon.ProjectileSpeed,
			EnergyLeft: combatant.Energy,
		},
	)
	return true, nil
}

// Step resolves one fixed step of combat after kinematics have run:
// projectile expiry, projectile-vs-combatant hits, and passive energy
// regeneration. dt is the fixed timestep in seconds.
func (r *Resolver) Step(w *world.World, dt float64) {
	if r == nil || w == nil {
		return
	}
	now := w.Now()
	cfg := w.Config()

	for _, projectile := range w.Projectiles() {
		state := projectile.Projectile
		if state == nil {
			continue
		}
		// Freshly spawned projectiles sit out their spawn tick so hit
		// results never depend on iteration order within one step.
		if state.SpawnedTick >= w.Tick() {
			continue
		}
		if now >= state.ExpiresAt {
			w.RemoveEntity(projectile.ID)
			continue
		}
		r.resolveHits(w, projectile, now, cfg.InvulnerabilityWindow)
	}

	for _, entity := range w.Combatants() {
		if entity.Combatant.Alive() {
			entity.Combatant.RegenerateEnergy(dt, cfg.EnergyRegenPerSecond)
		}
	}
}

func (r *Resolver) resolveHits(w *world.World, projectile *world.Entity, now, invulnWindow float64) {
	state := projectile.Projectile
	for _, target := range w.Combatants() {
		combatant := target.Combatant
		if target.ID == state.OwnerID {
			continue
		}
		if !combatant.Alive() || combatant.InvulnerableAt(now) {
			continue
		}
		if vec.Distance(projectile.Pos, target.Pos) >= projectile.Radius+target.Radius {
			continue
		}

		combatant.ApplyDamage(state.Damage)
		combatant.InvulnerableUntil = now + invulnWindow
		w.RemoveEntity(projectile.ID)

		attacker := logging.EntityRef{ID: state.OwnerID, Kind: logging.EntityKindCombatant}
		victim := logging.EntityRef{ID: target.ID, Kind: logging.EntityKindCombatant}
		logcombat.Damage(context.Background(), r.publisher(), w.Tick(), attacker, victim, logcombat.DamagePayload{
			Weapon:       state.WeaponID,
			Amount:       state.Damage,
			TargetHealth: combatant.Health,
		})
		if !combatant.Alive() {
			logcombat.Knockout(context.Background(), r.publisher(), w.Tick(), attacker, victim, logcombat.KnockoutPayload{
				Weapon: state.WeaponID,
			})
		}
		return
	}
}
