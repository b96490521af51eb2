package world

// SpendEnergy debits cost from the combatant's energy, refusing when the
// balance is insufficient. A zero-cost spend always succeeds.
func (c *CombatantState) SpendEnergy(cost float64) bool {
	if c == nil || cost < 0 {
		return false
	}
	if c.Energy < cost {
		return false
	}
	c.Energy -= cost
	return true
}

// RegenerateEnergy restores energy at rate units per second over dt seconds,
// clamped to MaxEnergy.
func (c *CombatantState) RegenerateEnergy(dt, rate float64) {
	if c == nil || dt <= 0 || rate <= 0 {
		return
	}
	c.Energy += rate * dt
	if c.Energy > c.MaxEnergy {
		c.Energy = c.MaxEnergy
	}
}

// EnergyRatio returns energy as a fraction of max, clamped to [0,1].
func (c *CombatantState) EnergyRatio() float64 {
	if c == nil || c.MaxEnergy <= 0 {
		return 0
	}
	ratio := c.Energy / c.MaxEnergy
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
