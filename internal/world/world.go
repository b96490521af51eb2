package world

import (
	"fmt"
	"math/rand"
	"sort"

	"orb-duel/engine/logging"
)

// RNGFactory produces deterministic RNG instances for world subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand

// Deps bundles runtime dependencies required to construct a World instance.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
}

// World is the single shared mutable resource for one battle. The integrator
// and combat resolver mutate it in place; no copies are taken during a step,
// so mutations are visible immediately to subsequent logic within the same
// step. Exactly one goroutine may own a World at a time.
type World struct {
	config Config
	seed   string

	publisher  logging.Publisher
	rngFactory RNGFactory
	rng        *rand.Rand

	entities map[string]*Entity

	tick uint64
	now  float64
}

// New constructs a world with normalized configuration and seeded RNG. The
// configuration is validated first; non-positive bounds and other malformed
// values are rejected rather than simulated.
func New(cfg Config, deps Deps) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	normalized := cfg.normalized()

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	return &World{
		config:     normalized,
		seed:       normalized.Seed,
		publisher:  publisher,
		rngFactory: factory,
		rng:        factory(normalized.Seed, "world"),
		entities:   make(map[string]*Entity),
	}, nil
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// Seed reports the deterministic seed applied to the world RNG hierarchy.
func (w *World) Seed() string {
	if w == nil {
		return ""
	}
	return w.seed
}

// Publisher returns the event publisher shared by world mutators.
func (w *World) Publisher() logging.Publisher {
	if w == nil || w.publisher == nil {
		return logging.NopPublisher()
	}
	return w.publisher
}

// SubsystemRNG returns a deterministic RNG derived from the world seed.
func (w *World) SubsystemRNG(label string) *rand.Rand {
	if w == nil {
		return NewDeterministicRNG(DefaultSeed, label)
	}
	factory := w.rngFactory
	if factory == nil {
		factory = NewDeterministicRNG
	}
	return factory(w.seed, label)
}

// Bounds returns the arena dimensions.
func (w *World) Bounds() (width, height float64) {
	if w == nil {
		return 0, 0
	}
	return w.config.Width, w.config.Height
}

// Tick reports the number of fixed steps simulated so far.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Now reports the simulation time in seconds. It advances only through
// AdvanceClock, never from the wall clock, keeping battles replayable with
// synthetic time.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

// AdvanceClock moves the simulation clock forward by one fixed step. Only
// the integrator calls this.
func (w *World) AdvanceClock(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.tick++
	w.now += dt
}

// AddEntity inserts an entity, rejecting duplicate identifiers. Identifiers
// are immutable for the lifetime of the world.
func (w *World) AddEntity(entity *Entity) error {
	if w == nil || entity == nil {
		return fmt.Errorf("world: nil entity")
	}
	if entity.ID == "" {
		return fmt.Errorf("world: entity with empty id")
	}
	if _, exists := w.entities[entity.ID]; exists {
		return fmt.Errorf("world: duplicate entity id %q", entity.ID)
	}
	w.entities[entity.ID] = entity
	return nil
}

// RemoveEntity drops the entity with the provided id, reporting whether it
// was present.
func (w *World) RemoveEntity(id string) bool {
	if w == nil {
		return false
	}
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	return true
}

// Entity returns the entity registered under id.
func (w *World) Entity(id string) (*Entity, bool) {
	if w == nil {
		return nil, false
	}
	entity, ok := w.entities[id]
	return entity, ok
}

// Len reports the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.entities)
}

// OrderedEntities returns every entity sorted by id. Step logic iterates in
// this order so identical inputs always produce identical worlds.
func (w *World) OrderedEntities() []*Entity {
	if w == nil {
		return nil
	}
	ordered := make([]*Entity, 0, len(w.entities))
	for _, entity := range w.entities {
		ordered = append(ordered, entity)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// Combatants returns the live combatants sorted by id.
func (w *World) Combatants() []*Entity {
	return w.orderedOfKind(EntityKindCombatant)
}

// Projectiles returns the in-flight projectiles sorted by id.
func (w *World) Projectiles() []*Entity {
	return w.orderedOfKind(EntityKindProjectile)
}

func (w *World) orderedOfKind(kind EntityKind) []*Entity {
	if w == nil {
		return nil
	}
	ordered := make([]*Entity, 0, len(w.entities))
	for _, entity := range w.entities {
		if entity.Kind == kind {
			ordered = append(ordered, entity)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
