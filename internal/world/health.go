package world

import "math"

// HealthEpsilon defines the tolerance used when comparing health values.
const HealthEpsilon = 1e-6

// Alive reports whether the combatant has health remaining. Defeat is
// terminal; nothing in the engine raises health from zero.
func (c *CombatantState) Alive() bool {
	if c == nil {
		return false
	}
	return c.Health > 0
}

// InvulnerableAt reports whether incoming hits are ignored at the provided
// simulation time.
func (c *CombatantState) InvulnerableAt(now float64) bool {
	if c == nil {
		return false
	}
	return now < c.InvulnerableUntil
}

// ApplyDamage subtracts the provided amount from health, clamping at zero.
// Non-finite amounts are ignored. It returns true when health changed.
func (c *CombatantState) ApplyDamage(amount float64) bool {
	if c == nil {
		return false
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return false
	}
	next := c.Health - amount
	if next < 0 {
		next = 0
	}
	if math.Abs(c.Health-next) < HealthEpsilon {
		return false
	}
	c.Health = next
	return true
}

// HealthRatio returns health as a fraction of max, clamped to [0,1] for
// presentation layers.
func (c *CombatantState) HealthRatio() float64 {
	if c == nil || c.MaxHealth <= 0 {
		return 0
	}
	ratio := c.Health / c.MaxHealth
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
