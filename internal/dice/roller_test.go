package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfall/rpg-core/internal/dice"
	mockdice "github.com/wrenfall/rpg-core/internal/dice/mock"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name      string
		setupInts []int
		count     int
		sides     int
		bonus     int
		wantTotal int
		wantRolls []int
		wantErr   bool
	}{
		{
			name:      "single d6 roll",
			setupInts: []int{4},
			count:     1,
			sides:     6,
			bonus:     0,
			wantTotal: 4,
			wantRolls: []int{4},
		},
		{
			name:      "2d6+3",
			setupInts: []int{4, 5},
			count:     2,
			sides:     6,
			bonus:     3,
			wantTotal: 12, // 4+5+3
			wantRolls: []int{4, 5},
		},
		{
			name:      "not enough rolls",
			setupInts: []int{4},
			count:     2,
			sides:     6,
			bonus:     0,
			wantErr:   true,
		},
		{
			name:      "invalid roll for die size",
			setupInts: []int{7},
			count:     1,
			sides:     6,
			bonus:     0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetInts(tt.setupInts)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, tt.bonus, result.Bonus)
		})
	}
}

func TestMockRoller_Floats(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetFloats([]float64{0.25, -1.5})

	assert.Equal(t, 0.25, roller.Float())
	assert.Equal(t, -1.5, roller.NormFloat())
}

func TestSeededRoller_Determinism(t *testing.T) {
	a := dice.NewRoller(42)
	b := dice.NewRoller(42)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(2, 6, 1)
		require.NoError(t, err)
		rb, err := b.Roll(2, 6, 1)
		require.NoError(t, err)
		assert.Equal(t, ra.Total, rb.Total)
		assert.Equal(t, ra.Rolls, rb.Rolls)
	}

	assert.Equal(t, a.Float(), b.Float())
	assert.Equal(t, a.NormFloat(), b.NormFloat())
	assert.Equal(t, a.Intn(100), b.Intn(100))
}

func TestSeededRoller_RollBounds(t *testing.T) {
	roller := dice.NewRoller(7)

	for i := 0; i < 100; i++ {
		result, err := roller.Roll(3, 8, 2)
		require.NoError(t, err)
		assert.Len(t, result.Rolls, 3)
		for _, roll := range result.Rolls {
			assert.GreaterOrEqual(t, roll, 1)
			assert.LessOrEqual(t, roll, 8)
		}
		assert.Equal(t, result.RawTotal+2, result.Total)
	}
}

func TestSeededRoller_InvalidInput(t *testing.T) {
	roller := dice.NewRoller(7)

	_, err := roller.Roll(0, 6, 0)
	require.Error(t, err)

	_, err = roller.Roll(1, 0, 0)
	require.Error(t, err)
}
