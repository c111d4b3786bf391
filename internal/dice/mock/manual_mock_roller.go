// Package mockdice provides a scripted Roller for tests.
package mockdice

import (
	"fmt"
	"sync"

	"github.com/wrenfall/rpg-core/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined
// results. Roll and Intn consume from the int queue, Float and NormFloat
// from the float queue.
type ManualMockRoller struct {
	mu         sync.Mutex
	ints       []int
	intIndex   int
	floats     []float64
	floatIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetInts sets the queue of int results
func (m *ManualMockRoller) SetInts(values []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = values
	m.intIndex = 0
}

// SetFloats sets the queue of float results
func (m *ManualMockRoller) SetFloats(values []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = values
	m.floatIndex = 0
}

// Reset clears both queues
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = nil
	m.intIndex = 0
	m.floats = nil
	m.floatIndex = 0
}

func (m *ManualMockRoller) nextInt() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.intIndex >= len(m.ints) {
		return 0, fmt.Errorf("no more predetermined ints available (used %d of %d)", m.intIndex, len(m.ints))
	}

	v := m.ints[m.intIndex]
	m.intIndex++
	return v, nil
}

func (m *ManualMockRoller) nextFloat() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.floatIndex >= len(m.floats) {
		panic(fmt.Sprintf("no more predetermined floats available (used %d of %d)", m.floatIndex, len(m.floats)))
	}

	v := m.floats[m.floatIndex]
	m.floatIndex++
	return v
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	rawTotal := 0

	for i := 0; i < count; i++ {
		roll, err := m.nextInt()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Float implements dice.Roller.Float
func (m *ManualMockRoller) Float() float64 {
	return m.nextFloat()
}

// NormFloat implements dice.Roller.NormFloat
func (m *ManualMockRoller) NormFloat() float64 {
	return m.nextFloat()
}

// Intn implements dice.Roller.Intn
func (m *ManualMockRoller) Intn(n int) int {
	v, err := m.nextInt()
	if err != nil {
		panic(err)
	}
	if v < 0 || v >= n {
		panic(fmt.Sprintf("predetermined int %d out of range [0,%d)", v, n))
	}
	return v
}
