package catalog

// WeaponDocument models the JSON contract for designer-authored weapon
// entries. It is shared with the schema generator so we can produce a
// machine-readable document for validation and editor tooling.
type WeaponDocument struct {
	ID               string  `json:"id" jsonschema:"title=Weapon id,pattern=^[a-z0-9\\-]+$,description=Identifier referenced by characters and live combatants"`
	Name             string  `json:"name,omitempty" jsonschema:"description=Display name for selection screens"`
	Cooldown         float64 `json:"cooldown" jsonschema:"description=Seconds between shots,minimum=0"`
	EnergyCost       float64 `json:"energyCost" jsonschema:"description=Energy debited per shot,minimum=0"`
	ProjectileSpeed  float64 `json:"projectileSpeed" jsonschema:"description=Projectile speed in arena units per second"`
	ProjectileRadius float64 `json:"projectileRadius" jsonschema:"description=Projectile collision radius in arena units"`
	Damage           float64 `json:"damage" jsonschema:"description=Health removed on hit,minimum=0"`
	Lifespan         float64 `json:"lifespan" jsonschema:"description=Seconds before an unconsumed projectile expires"`
}

// CharacterDocument models a designer-authored character entry.
type CharacterDocument struct {
	Name     string `json:"name" jsonschema:"description=Unique character name"`
	WeaponID string `json:"weaponId" jsonschema:"title=Weapon id,description=Must reference a weapon declared in the same file"`
	Sprite   string `json:"sprite,omitempty" jsonschema:"description=Asset reference consumed by presentation layers"`
}

// FileDefinitions represents the contents of a catalog file such as
// config/catalog.json.
type FileDefinitions struct {
	Weapons    []WeaponDocument    `json:"weapons"`
	Characters []CharacterDocument `json:"characters,omitempty"`
}
