package world

// PoolResource tracks a spendable resource with a maximum
type PoolResource struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Damage removes up to amount, stopping at zero, and returns what was removed
func (p *PoolResource) Damage(amount int) int {
	if amount <= 0 {
		return 0
	}

	old := p.Current
	p.Current -= amount
	if p.Current < 0 {
		p.Current = 0
	}
	return old - p.Current
}

// Heal restores up to max and returns the amount actually gained
func (p *PoolResource) Heal(amount int) int {
	if amount <= 0 || p.Current >= p.Max {
		return 0
	}

	old := p.Current
	p.Current += amount
	if p.Current > p.Max {
		p.Current = p.Max
	}
	return p.Current - old
}

// Spend deducts amount without going below floor and returns what was taken
func (p *PoolResource) Spend(amount, floor int) int {
	if amount <= 0 {
		return 0
	}

	available := p.Current - floor
	if available <= 0 {
		return 0
	}
	if amount > available {
		amount = available
	}
	p.Current -= amount
	return amount
}

// Refund gives amount back, capped at max
func (p *PoolResource) Refund(amount int) int {
	return p.Heal(amount)
}

// Full reports whether the pool is at its maximum
func (p *PoolResource) Full() bool {
	return p.Current >= p.Max
}
