package physics

import (
	"math"

	"orb-duel/engine/internal/world"
)

// Integrator advances world kinematics on a fixed timestep. Hosts report
// arbitrary elapsed intervals; the integrator accumulates them and only ever
// simulates whole fixed steps, so physics behaves identically regardless of
// host frame jitter.
type Integrator struct {
	accumulator float64

	// OnStep, when set, runs after the kinematics of each completed fixed
	// step. The engine hooks combat resolution and refereeing here so
	// gameplay advances in lockstep with physics.
	OnStep func(dt float64)
}

// Advance accumulates elapsed seconds and simulates as many fixed steps as
// the accumulator covers. Non-positive and non-finite intervals are ignored.
func (i *Integrator) Advance(w *world.World, elapsed float64) {
	if i == nil || w == nil {
		return
	}
	if elapsed <= 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return
	}
	dt := w.Config().FixedTimeStep
	if dt <= 0 {
		return
	}
	i.accumulator += elapsed
	for i.accumulator >= dt {
		i.accumulator -= dt
		i.step(w, dt)
	}
}

// Pending reports the accumulated time still short of a full step.
func (i *Integrator) Pending() float64 {
	if i == nil {
		return 0
	}
	return i.accumulator
}

func (i *Integrator) step(w *world.World, dt float64) {
	w.AdvanceClock(dt)

	cfg := w.Config()
	gravity := cfg.Gravity.Scale(dt)
	damping := 1 - cfg.AirFriction
	width, height := w.Bounds()

	var expired []string
	for _, entity := range w.OrderedEntities() {
		if entity.Kind == world.EntityKindProjectile && entity.Projectile != nil {
			// Projectiles spawned during the current tick hold position
			// until the next step.
			if entity.Projectile.SpawnedTick >= w.Tick() {
				continue
			}
		}

		entity.Vel = entity.Vel.Add(gravity)
		entity.Vel = entity.Vel.Scale(damping)
		entity.Pos = entity.Pos.Add(entity.Vel.Scale(dt))

		switch entity.Kind {
		case world.EntityKindCombatant:
			reflectIntoBounds(entity, width, height)
		case world.EntityKindProjectile:
			if outOfBounds(entity, width, height) {
				expired = append(expired, entity.ID)
			}
		}
	}

	for _, id := range expired {
		w.RemoveEntity(id)
	}

	if i.OnStep != nil {
		i.OnStep(dt)
	}
}

// reflectIntoBounds clamps the entity's circle inside the arena and inverts
// the offending velocity component, producing an elastic wall bounce. A zero
// radius degenerates to clamping a point.
func reflectIntoBounds(entity *world.Entity, width, height float64) {
	if entity.Pos.X-entity.Radius < 0 {
		entity.Pos.X = entity.Radius
		entity.Vel.X = -entity.Vel.X
	} else if entity.Pos.X+entity.Radius > width {
		entity.Pos.X = width - entity.Radius
		entity.Vel.X = -entity.Vel.X
	}
	if entity.Pos.Y-entity.Radius < 0 {
		entity.Pos.Y = entity.Radius
		entity.Vel.Y = -entity.Vel.Y
	} else if entity.Pos.Y+entity.Radius > height {
		entity.Pos.Y = height - entity.Radius
		entity.Vel.Y = -entity.Vel.Y
	}
}

func outOfBounds(entity *world.Entity, width, height float64) bool {
	return entity.Pos.X-entity.Radius < 0 ||
		entity.Pos.Y-entity.Radius < 0 ||
		entity.Pos.X+entity.Radius > width ||
		entity.Pos.Y+entity.Radius > height
}
