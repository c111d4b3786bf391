package dice

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wrenfall/rpg-core/internal/errors"
)

// seededRoller implements Roller on top of math/rand with an explicit seed
type seededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a roller seeded with the given value.
// A seed of 0 picks a time-based seed, so only non-zero seeds reproduce.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.InvalidArgumentf("invalid dice count: %d", count)
	}
	if sides < 1 {
		return nil, errors.InvalidArgumentf("invalid dice sides: %d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	rawTotal := 0
	for i := 0; i < count; i++ {
		roll := r.rng.Intn(sides) + 1
		rolls[i] = roll
		rawTotal += roll
	}

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Float implements Roller.Float
func (r *seededRoller) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// NormFloat implements Roller.NormFloat
func (r *seededRoller) NormFloat() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// Intn implements Roller.Intn
func (r *seededRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
