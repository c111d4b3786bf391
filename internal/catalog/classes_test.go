package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfall/rpg-core/internal/entities"
)

func TestClassCatalog_Count(t *testing.T) {
	classes := NewClassCatalog()
	assert.Equal(t, 23, classes.Count())
	assert.Len(t, classes.Classes(), 23)
}

func TestClassCatalog_Validate(t *testing.T) {
	classes := NewClassCatalog()
	require.NoError(t, classes.Validate())
}

func TestClassCatalog_DocumentedRows(t *testing.T) {
	classes := NewClassCatalog()

	warrior, ok := classes.ClassByID("warrior")
	require.True(t, ok)
	assert.Equal(t, entities.AbilityScores{
		Strength: 15, Dexterity: 10, Intelligence: 8,
		Wisdom: 10, Charisma: 8, Constitution: 14,
	}, warrior.Scores)
	assert.Equal(t, 60, warrior.HP())
	assert.Equal(t, []string{"attack", "defend", "power_strike"}, warrior.Abilities)
	assert.Equal(t, 100, warrior.StartingGold)

	mage, ok := classes.ClassByID("mage")
	require.True(t, ok)
	assert.Equal(t, entities.AbilityScores{
		Strength: 8, Dexterity: 12, Intelligence: 16,
		Wisdom: 14, Charisma: 10, Constitution: 8,
	}, mage.Scores)
	assert.Equal(t, 24, mage.HP())
	assert.Equal(t, []string{"attack", "defend", "fireball"}, mage.Abilities)
	assert.Equal(t, 100, mage.StartingGold)
}

func TestClassCatalog_AttributeRanges(t *testing.T) {
	classes := NewClassCatalog()

	for _, c := range classes.Classes() {
		c := c
		t.Run(c.ID, func(t *testing.T) {
			assert.GreaterOrEqual(t, c.Scores.Strength, 5)
			assert.LessOrEqual(t, c.Scores.Strength, 18)
			assert.GreaterOrEqual(t, c.Scores.Dexterity, 5)
			assert.LessOrEqual(t, c.Scores.Dexterity, 18)
			assert.GreaterOrEqual(t, c.Scores.Intelligence, 4)
			assert.LessOrEqual(t, c.Scores.Intelligence, 18)
			assert.GreaterOrEqual(t, c.Scores.Wisdom, 4)
			assert.LessOrEqual(t, c.Scores.Wisdom, 18)
			assert.GreaterOrEqual(t, c.Scores.Charisma, 4)
			assert.LessOrEqual(t, c.Scores.Charisma, 18)
			assert.GreaterOrEqual(t, c.Scores.Constitution, 6)
			assert.LessOrEqual(t, c.Scores.Constitution, 16)
			assert.GreaterOrEqual(t, c.HP(), 20)
			assert.LessOrEqual(t, c.HP(), 80)
			assert.GreaterOrEqual(t, len(c.Abilities), 3)
			assert.Equal(t, 100, c.StartingGold)
		})
	}
}

func TestClassCatalog_PowerSpread(t *testing.T) {
	classes := NewClassCatalog()

	for _, a := range classes.Classes() {
		for _, b := range classes.Classes() {
			if a.ID == b.ID {
				continue
			}
			assert.LessOrEqualf(t, a.PowerScore(), b.PowerScore()*1.15,
				"%s power %.1f exceeds %s power %.1f by more than 15%%",
				a.ID, a.PowerScore(), b.ID, b.PowerScore())
		}
	}
}

func TestClassCatalog_UniqueStartingKits(t *testing.T) {
	classes := NewClassCatalog()

	sets := make(map[string]string)
	owners := make(map[string][]string)
	for _, c := range classes.Classes() {
		key := startingSetKey(c.Abilities)
		other, dup := sets[key]
		assert.Falsef(t, dup, "%s and %s share an identical starting set", c.ID, other)
		sets[key] = c.ID
		for _, a := range c.Abilities {
			owners[a] = append(owners[a], c.ID)
		}
	}

	for _, c := range classes.Classes() {
		unique := false
		for _, a := range c.Abilities {
			if len(owners[a]) == 1 {
				unique = true
			}
		}
		assert.Truef(t, unique, "%s has no unique signature ability", c.ID)
	}
}

func TestClassCatalog_AllAbilitiesDefined(t *testing.T) {
	classes := NewClassCatalog()

	for _, c := range classes.Classes() {
		for _, a := range c.Abilities {
			_, ok := AbilityByID(a)
			assert.Truef(t, ok, "%s references undefined ability %q", c.ID, a)
		}
	}
}

func TestClassCatalog_MedianHP(t *testing.T) {
	classes := NewClassCatalog()
	median := classes.MedianHP()
	assert.GreaterOrEqual(t, median, 20)
	assert.LessOrEqual(t, median, 80)
}
