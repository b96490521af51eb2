package sim

import (
	"errors"
	"fmt"
	"sort"

	"orb-duel/engine/internal/ai"
	"orb-duel/engine/internal/catalog"
	"orb-duel/engine/internal/combat"
	"orb-duel/engine/internal/physics"
	"orb-duel/engine/internal/referee"
	"orb-duel/engine/internal/vec"
	"orb-duel/engine/internal/world"
)

// Engine defines the surface area exposed to non-simulation callers such as
// the websocket hub and the headless runner.
type Engine interface {
	Deps() Deps
	Apply([]Command) error
	Advance(elapsed float64)
	Snapshot() Snapshot
	Outcome() (referee.Outcome, bool)
}

// Defaults applied to combatant seeds and movement.
const (
	DefaultMoveSpeed       = 160.0
	DefaultCombatantRadius = 14.0
	DefaultMaxHealth       = 100.0
	DefaultMaxEnergy       = 50.0
)

// CombatantSeed describes one combatant entering the battle. Character
// selects a catalog archetype; an explicit WeaponID overrides it. A nil
// Policy leaves the combatant under external control through commands.
type CombatantSeed struct {
	ID        string
	Character string
	WeaponID  string
	Pos       vec.Vec2
	Radius    float64
	MaxHealth float64
	MaxEnergy float64
	Policy    ai.Policy
}

// CoreConfig assembles one battle.
type CoreConfig struct {
	World      world.Config
	Referee    referee.Config
	Catalog    *catalog.Catalog
	MoveSpeed  float64
	Combatants []CombatantSeed
}

type actorIntent struct {
	move      vec.Vec2
	hasMove   bool
	attackAim *vec.Vec2
}

// Core owns the world, physics integrator, combat resolver, referee, and AI
// policies for a single battle. It is not safe for concurrent use; the Loop
// serializes access.
type Core struct {
	deps      Deps
	world     *world.World
	catalog   *catalog.Catalog
	moveSpeed float64

	integrator *physics.Integrator
	resolver   *combat.Resolver
	referee    *referee.Referee
	policies   map[string]ai.Policy

	intents map[string]*actorIntent
	elapsed float64
	outcome referee.Outcome
	done    bool
}

// NewCore validates the configuration and assembles a battle. Exactly two
// combatants are required; a nil catalog selects the built-in one.
func NewCore(cfg CoreConfig, deps Deps) (*Core, error) {
	if len(cfg.Combatants) != 2 {
		return nil, fmt.Errorf("sim: expected 2 combatants, got %d", len(cfg.Combatants))
	}
	deps = deps.normalized()

	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	w, err := world.New(cfg.World, world.Deps{Publisher: deps.Publisher})
	if err != nil {
		return nil, err
	}

	moveSpeed := cfg.MoveSpeed
	if moveSpeed <= 0 {
		moveSpeed = DefaultMoveSpeed
	}

	core := &Core{
		deps:      deps,
		world:     w,
		catalog:   cat,
		moveSpeed: moveSpeed,
		resolver:  &combat.Resolver{Catalog: cat, Publisher: deps.Publisher},
		referee:   referee.New(cfg.Referee, deps.Publisher),
		policies:  make(map[string]ai.Policy),
		intents:   make(map[string]*actorIntent),
	}

	width, height := w.Bounds()
	spawnX := []float64{width * 0.2, width * 0.8}
	for i, seed := range cfg.Combatants {
		entity, err := core.seedCombatant(seed, vec.Vec2{X: spawnX[i], Y: height * 0.5})
		if err != nil {
			return nil, err
		}
		if err := w.AddEntity(entity); err != nil {
			return nil, err
		}
		if seed.Policy != nil {
			core.policies[seed.ID] = seed.Policy
		}
	}

	core.integrator = &physics.Integrator{OnStep: core.step}
	return core, nil
}

func (c *Core) seedCombatant(seed CombatantSeed, fallbackPos vec.Vec2) (*world.Entity, error) {
	if seed.ID == "" {
		return nil, errors.New("sim: combatant with empty id")
	}
	weaponID := seed.WeaponID
	if weaponID == "" && seed.Character != "" {
		character, ok := c.catalog.Character(seed.Character)
		if !ok {
			return nil, fmt.Errorf("sim: unknown character %q", seed.Character)
		}
		weaponID = character.WeaponID
	}
	if _, err := c.catalog.ResolveWeapon(weaponID); err != nil {
		return nil, fmt.Errorf("sim: combatant %q: %w", seed.ID, err)
	}

	pos := seed.Pos
	if pos.IsZero() {
		pos = fallbackPos
	}
	radius := seed.Radius
	if radius <= 0 {
		radius = DefaultCombatantRadius
	}
	maxHealth := seed.MaxHealth
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}
	maxEnergy := seed.MaxEnergy
	if maxEnergy <= 0 {
		maxEnergy = DefaultMaxEnergy
	}

	return world.NewCombatant(seed.ID, pos, radius, world.CombatantParams{
		MaxHealth: maxHealth,
		MaxEnergy: maxEnergy,
		WeaponID:  weaponID,
	}), nil
}

// Deps returns the injected dependencies.
func (c *Core) Deps() Deps {
	if c == nil {
		return Deps{}
	}
	return c.deps
}

// World exposes the underlying world for tests and the headless runner.
func (c *Core) World() *world.World {
	if c == nil {
		return nil
	}
	return c.world
}

// Apply stages commands as per-actor intents. The newest command of each
// type wins; intents take effect on the next fixed step.
func (c *Core) Apply(cmds []Command) error {
	if c == nil {
		return nil
	}
	for _, cmd := range cmds {
		switch cmd.Type {
		case CommandMove:
			if cmd.Move == nil || cmd.ActorID == "" {
				continue
			}
			intent := c.intent(cmd.ActorID)
			intent.move = vec.Vec2{X: cmd.Move.DX, Y: cmd.Move.DY}
			intent.hasMove = true
		case CommandAttack:
			if cmd.Attack == nil || cmd.ActorID == "" {
				continue
			}
			intent := c.intent(cmd.ActorID)
			aim := vec.Vec2{X: cmd.Attack.AimX, Y: cmd.Attack.AimY}
			intent.attackAim = &aim
		default:
			return fmt.Errorf("sim: unknown command type %q", cmd.Type)
		}
	}
	return nil
}

func (c *Core) intent(actorID string) *actorIntent {
	intent, ok := c.intents[actorID]
	if !ok {
		intent = &actorIntent{}
		c.intents[actorID] = intent
	}
	return intent
}

// Advance runs the fixed-step pipeline over the elapsed interval. Once the
// battle has an outcome the world is frozen and Advance becomes a no-op.
func (c *Core) Advance(elapsed float64) {
	if c == nil || c.done {
		return
	}
	c.integrator.Advance(c.world, elapsed)
}

// Outcome reports the latched battle result, if any.
func (c *Core) Outcome() (referee.Outcome, bool) {
	if c == nil {
		return referee.Outcome{}, false
	}
	return c.outcome, c.done
}

// Elapsed reports the accumulated simulation time in seconds.
func (c *Core) Elapsed() float64 {
	if c == nil {
		return 0
	}
	return c.elapsed
}

// step runs after the kinematics of each fixed step: AI decisions, staged
// intents, combat resolution, then the referee. The first outcome latches
// and ends gameplay.
func (c *Core) step(dt float64) {
	if c.done {
		return
	}
	c.elapsed += dt

	c.runPolicies()
	c.applyIntents()
	c.resolver.Step(c.world, dt)

	if outcome, done := c.referee.CheckOutcome(c.world, c.elapsed); done {
		c.outcome = outcome
		c.done = true
	}
}

func (c *Core) runPolicies() {
	if len(c.policies) == 0 {
		return
	}
	ids := make([]string, 0, len(c.policies))
	for id := range c.policies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		self, ok := c.world.Entity(id)
		if !ok || self.Combatant == nil || !self.Combatant.Alive() {
			continue
		}
		opponent := c.opponentOf(id)
		if opponent == nil {
			continue
		}
		action := c.policies[id].Decide(ai.View{
			Tick:     c.world.Tick(),
			Now:      c.world.Now(),
			Self:     observe(self),
			Opponent: observe(opponent),
		})
		intent := c.intent(id)
		intent.move = action.Move
		intent.hasMove = true
		if action.Attack {
			aim := action.Aim
			intent.attackAim = &aim
		}
	}
}

func (c *Core) opponentOf(id string) *world.Entity {
	for _, entity := range c.world.Combatants() {
		if entity.ID != id {
			return entity
		}
	}
	return nil
}

func observe(entity *world.Entity) ai.Combatant {
	return ai.Combatant{
		ID:        entity.ID,
		Pos:       entity.Pos,
		Vel:       entity.Vel,
		Health:    entity.Combatant.Health,
		MaxHealth: entity.Combatant.MaxHealth,
		Energy:    entity.Combatant.Energy,
	}
}

// applyIntents processes staged intents in actor id order so identical
// command streams always mutate the world identically.
func (c *Core) applyIntents() {
	if len(c.intents) == 0 {
		return
	}
	ids := make([]string, 0, len(c.intents))
	for id := range c.intents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		intent := c.intents[id]
		entity, ok := c.world.Entity(id)
		if !ok || entity.Kind != world.EntityKindCombatant || entity.Combatant == nil {
			intent.attackAim = nil
			continue
		}
		if intent.hasMove {
			if entity.Combatant.Alive() {
				direction := intent.move.Normalize()
				entity.Vel = direction.Scale(c.moveSpeed)
			} else {
				entity.Vel = vec.Vec2{}
			}
		}
		if intent.attackAim != nil {
			aim := *intent.attackAim
			intent.attackAim = nil
			if _, err := c.resolver.RequestAttack(c.world, id, aim, c.world.Now()); err != nil {
				if !errors.Is(err, combat.ErrNoSuchEntity) {
					c.deps.Logger.Printf("[combat] attack rejected actor=%s err=%v", id, err)
				}
			}
		}
	}
}

// Snapshot captures the presentable battle state: combatants, projectiles,
// and the outcome once latched. Slices are freshly allocated and sorted by
// id, so callers may retain them across ticks.
func (c *Core) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	snapshot := Snapshot{
		Tick: c.world.Tick(),
		Now:  c.world.Now(),
	}
	now := c.world.Now()
	for _, entity := range c.world.Combatants() {
		state := entity.Combatant
		snapshot.Combatants = append(snapshot.Combatants, CombatantView{
			ID:           entity.ID,
			Pos:          entity.Pos,
			Vel:          entity.Vel,
			Radius:       entity.Radius,
			Health:       state.Health,
			MaxHealth:    state.MaxHealth,
			Energy:       state.Energy,
			MaxEnergy:    state.MaxEnergy,
			HealthRatio:  state.HealthRatio(),
			EnergyRatio:  state.EnergyRatio(),
			WeaponID:     state.WeaponID,
			Invulnerable: state.InvulnerableAt(now),
		})
	}
	for _, entity := range c.world.Projectiles() {
		state := entity.Projectile
		snapshot.Projectiles = append(snapshot.Projectiles, ProjectileView{
			ID:       entity.ID,
			OwnerID:  state.OwnerID,
			WeaponID: state.WeaponID,
			Pos:      entity.Pos,
			Vel:      entity.Vel,
			Radius:   entity.Radius,
		})
	}
	if c.done {
		snapshot.Outcome = &OutcomeView{
			Winner:  c.outcome.Winner,
			Draw:    c.outcome.Draw,
			Reason:  string(c.outcome.Reason),
			Elapsed: c.elapsed,
		}
	}
	return snapshot
}

// Ensure Core implements Engine.
var _ Engine = (*Core)(nil)
