// Package dice provides the random source for the simulation core.
// Every component that needs randomness takes a Roller so runs can be
// reproduced from a seed.
package dice

// Roller provides an interface for rolling dice and sampling randomness.
// This allows us to inject different implementations for testing.
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Float returns a uniform sample in [0, 1)
	Float() float64

	// NormFloat returns a standard normal sample
	NormFloat() float64

	// Intn returns a uniform sample in [0, n)
	Intn(n int) int
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}
