package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownWeapon is returned when a lookup references a weapon id that was
// never registered. Engine callers treat this as a configuration bug and
// fail fast rather than defaulting silently.
var ErrUnknownWeapon = errors.New("catalog: unknown weapon id")

// Weapon describes the static parameters for one weapon. The engine reads
// weapons by id and never mutates them.
type Weapon struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	Cooldown         float64 `json:"cooldown"`
	EnergyCost       float64 `json:"energyCost"`
	ProjectileSpeed  float64 `json:"projectileSpeed"`
	ProjectileRadius float64 `json:"projectileRadius"`
	Damage           float64 `json:"damage"`
	Lifespan         float64 `json:"lifespan"`
}

// Character describes a selectable combatant archetype. Sprite is an opaque
// asset reference for presentation layers; the engine ignores it.
type Character struct {
	Name     string `json:"name"`
	WeaponID string `json:"weaponId"`
	Sprite   string `json:"sprite,omitempty"`
}

// Catalog is the read-only configuration object shared by one or more
// battles. Construct it once at startup and pass it into the engine; live
// entities reference weapons by id only, so catalog data can be swapped
// between battles without touching entity state.
type Catalog struct {
	weapons    map[string]Weapon
	characters map[string]Character
}

// New validates the provided definitions and builds a catalog. Duplicate
// weapon ids, non-positive projectile parameters, and characters referencing
// unregistered weapons are all rejected.
func New(weapons []Weapon, characters []Character) (*Catalog, error) {
	c := &Catalog{
		weapons:    make(map[string]Weapon, len(weapons)),
		characters: make(map[string]Character, len(characters)),
	}
	for _, weapon := range weapons {
		if err := validateWeapon(weapon); err != nil {
			return nil, err
		}
		if _, exists := c.weapons[weapon.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate weapon id %q", weapon.ID)
		}
		c.weapons[weapon.ID] = weapon
	}
	for _, character := range characters {
		if character.Name == "" {
			return nil, fmt.Errorf("catalog: character with empty name")
		}
		if _, ok := c.weapons[character.WeaponID]; !ok {
			return nil, fmt.Errorf("catalog: character %q references %q: %w", character.Name, character.WeaponID, ErrUnknownWeapon)
		}
		if _, exists := c.characters[character.Name]; exists {
			return nil, fmt.Errorf("catalog: duplicate character name %q", character.Name)
		}
		c.characters[character.Name] = character
	}
	return c, nil
}

func validateWeapon(weapon Weapon) error {
	if weapon.ID == "" {
		return fmt.Errorf("catalog: weapon with empty id")
	}
	if weapon.Cooldown < 0 {
		return fmt.Errorf("catalog: weapon %q has negative cooldown", weapon.ID)
	}
	if weapon.EnergyCost < 0 {
		return fmt.Errorf("catalog: weapon %q has negative energy cost", weapon.ID)
	}
	if weapon.ProjectileSpeed <= 0 {
		return fmt.Errorf("catalog: weapon %q has non-positive projectile speed", weapon.ID)
	}
	if weapon.ProjectileRadius <= 0 {
		return fmt.Errorf("catalog: weapon %q has non-positive projectile radius", weapon.ID)
	}
	if weapon.Damage < 0 {
		return fmt.Errorf("catalog: weapon %q has negative damage", weapon.ID)
	}
	if weapon.Lifespan <= 0 {
		return fmt.Errorf("catalog: weapon %q has non-positive lifespan", weapon.ID)
	}
	return nil
}

// Weapon returns the weapon registered under id.
func (c *Catalog) Weapon(id string) (Weapon, bool) {
	if c == nil {
		return Weapon{}, false
	}
	weapon, ok := c.weapons[id]
	return weapon, ok
}

// ResolveWeapon returns the weapon registered under id or ErrUnknownWeapon.
func (c *Catalog) ResolveWeapon(id string) (Weapon, error) {
	weapon, ok := c.Weapon(id)
	if !ok {
		return Weapon{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, id)
	}
	return weapon, nil
}

// Character returns the character registered under name.
func (c *Catalog) Character(name string) (Character, bool) {
	if c == nil {
		return Character{}, false
	}
	character, ok := c.characters[name]
	return character, ok
}

// WeaponIDs returns the registered weapon ids in sorted order.
func (c *Catalog) WeaponIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.weapons))
	for id := range c.weapons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CharacterNames returns the registered character names in sorted order.
func (c *Catalog) CharacterNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.characters))
	for name := range c.characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
