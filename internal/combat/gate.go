package combat

// ReadyCooldown applies the shared cooldown bookkeeping: it lazily allocates
// the registry map, refuses to trigger while the weapon is still cooling
// down, and records the trigger time when the weapon is ready. A weapon id
// missing from the registry has never fired and is always ready.
func ReadyCooldown(cooldowns *map[string]float64, weaponID string, cooldown, now float64) bool {
	if cooldowns == nil {
		return false
	}
	if *cooldowns == nil {
		*cooldowns = make(map[string]float64)
	}
	if cooldown > 0 {
		if last, ok := (*cooldowns)[weaponID]; ok {
			if now-last < cooldown {
				return false
			}
		}
	}
	(*cooldowns)[weaponID] = now
	return true
}
