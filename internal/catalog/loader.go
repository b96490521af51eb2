package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a catalog definition file from disk, validates it, and
// returns the resolved catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw catalog JSON.
func Parse(data []byte) (*Catalog, error) {
	var file FileDefinitions
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: decode definitions: %w", err)
	}

	weapons := make([]Weapon, 0, len(file.Weapons))
	for _, doc := range file.Weapons {
		weapons = append(weapons, Weapon(doc))
	}
	characters := make([]Character, 0, len(file.Characters))
	for _, doc := range file.Characters {
		characters = append(characters, Character(doc))
	}
	return New(weapons, characters)
}

// Default returns the built-in catalog used by the demo binaries and tests.
func Default() *Catalog {
	c, err := New(
		[]Weapon{
			{
				ID:               "blaster",
				Name:             "Blaster",
				Cooldown:         0.8,
				EnergyCost:       15,
				ProjectileSpeed:  320,
				ProjectileRadius: 6,
				Damage:           10,
				Lifespan:         2.5,
			},
			{
				ID:               "scattergun",
				Name:             "Scattergun",
				Cooldown:         1.4,
				EnergyCost:       30,
				ProjectileSpeed:  220,
				ProjectileRadius: 10,
				Damage:           22,
				Lifespan:         1.6,
			},
			{
				ID:               "needler",
				Name:             "Needler",
				Cooldown:         0.3,
				EnergyCost:       6,
				ProjectileSpeed:  420,
				ProjectileRadius: 3,
				Damage:           4,
				Lifespan:         1.2,
			},
		},
		[]Character{
			{Name: "Vanguard", WeaponID: "blaster", Sprite: "sprites/vanguard.png"},
			{Name: "Bruiser", WeaponID: "scattergun", Sprite: "sprites/bruiser.png"},
			{Name: "Wasp", WeaponID: "needler", Sprite: "sprites/wasp.png"},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in definitions invalid: %v", err))
	}
	return c
}
