// Package entities defines the core data model for the simulation core.
package entities

// AbilityScores holds the six core ability scores
type AbilityScores struct {
	Strength     int
	Dexterity    int
	Intelligence int
	Wisdom       int
	Charisma     int
	Constitution int
}

// Sum returns the total of all six scores
func (a AbilityScores) Sum() int {
	return a.Strength + a.Dexterity + a.Intelligence + a.Wisdom + a.Charisma + a.Constitution
}

// Character represents a playable character created from a class template
type Character struct {
	ID           string
	Name         string
	ClassID      string
	Level        int
	Scores       AbilityScores
	MaxHP        int
	CurrentHP    int
	Gold         int
	Abilities    []string
	InventoryRef string
	CreatedAt    int64
}

// IsAlive reports whether the character has hit points remaining
func (c *Character) IsAlive() bool {
	return c.CurrentHP > 0
}

// ApplyDamage reduces current HP, clamping at zero
func (c *Character) ApplyDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// Heal restores current HP, clamping at max
func (c *Character) Heal(amount int) {
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
}
