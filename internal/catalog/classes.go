// Package catalog holds the static game data registries: class
// templates, enemy templates, abilities, and consumable items. The
// tables are data, not code; behavior differences are dispatched by
// lookup, never by subclassing.
package catalog

import (
	"sort"

	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
)

// StartingGold is granted to every freshly created character
const StartingGold = 100

// maxPowerSpread is the allowed pairwise power-score ratio between any
// two classes
const maxPowerSpread = 1.15

func class(id, name string, str, dex, intl, wis, cha, con int, signature string) entities.ClassTemplate {
	return entities.ClassTemplate{
		ID:           id,
		Name:         name,
		Scores:       entities.AbilityScores{Strength: str, Dexterity: dex, Intelligence: intl, Wisdom: wis, Charisma: cha, Constitution: con},
		Abilities:    []string{AbilityAttack, AbilityDefend, signature},
		StartingGold: StartingGold,
	}
}

// classTable is the full 23-class roster. Order is the presentation
// order and must stay stable.
var classTable = []entities.ClassTemplate{
	class("warrior", "Warrior", 15, 10, 8, 10, 8, 14, "power_strike"),
	class("mage", "Mage", 8, 12, 16, 14, 10, 8, "fireball"),
	class("rogue", "Rogue", 10, 16, 12, 8, 10, 9, "backstab"),
	class("cleric", "Cleric", 10, 8, 10, 16, 12, 12, "smite"),
	class("paladin", "Paladin", 14, 8, 6, 12, 12, 13, "holy_strike"),
	class("ranger", "Ranger", 12, 15, 9, 12, 7, 10, "aimed_shot"),
	class("barbarian", "Barbarian", 17, 9, 5, 6, 6, 15, "rage"),
	class("bard", "Bard", 8, 13, 12, 10, 16, 9, "discord"),
	class("monk", "Monk", 12, 16, 8, 13, 6, 10, "flurry"),
	class("sorcerer", "Sorcerer", 7, 11, 17, 10, 13, 9, "chaos_bolt"),
	class("warlock", "Warlock", 9, 10, 15, 11, 14, 9, "eldritch_blast"),
	class("druid", "Druid", 9, 10, 11, 16, 9, 11, "entangle"),
	class("knight", "Knight", 14, 7, 7, 9, 11, 14, "shield_bash"),
	class("berserker", "Berserker", 16, 11, 4, 5, 7, 14, "reckless_swing"),
	class("assassin", "Assassin", 11, 17, 11, 8, 9, 9, "shadow_strike"),
	class("necromancer", "Necromancer", 6, 9, 17, 13, 11, 9, "drain_life"),
	class("shaman", "Shaman", 10, 9, 10, 15, 11, 11, "spirit_lash"),
	class("illusionist", "Illusionist", 6, 12, 16, 12, 12, 8, "phantasm"),
	class("alchemist", "Alchemist", 8, 12, 15, 12, 9, 10, "acid_flask"),
	class("duelist", "Duelist", 12, 16, 9, 7, 12, 9, "riposte"),
	class("templar", "Templar", 13, 8, 8, 14, 10, 13, "censure"),
	class("beastmaster", "Beastmaster", 12, 13, 7, 13, 9, 11, "beast_call"),
	class("spellblade", "Spellblade", 12, 11, 14, 8, 8, 11, "arcane_edge"),
}

// ClassCatalog is the registry of playable class templates
type ClassCatalog struct {
	ordered []entities.ClassTemplate
	byID    map[string]*entities.ClassTemplate
}

// NewClassCatalog builds the class registry from the static table
func NewClassCatalog() *ClassCatalog {
	c := &ClassCatalog{
		ordered: classTable,
		byID:    make(map[string]*entities.ClassTemplate, len(classTable)),
	}
	for i := range c.ordered {
		c.byID[c.ordered[i].ID] = &c.ordered[i]
	}
	return c
}

// ClassByID looks up a class template by its id
func (c *ClassCatalog) ClassByID(id string) (*entities.ClassTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Classes returns all templates in stable presentation order
func (c *ClassCatalog) Classes() []entities.ClassTemplate {
	return c.ordered
}

// Count returns the number of classes in the catalog
func (c *ClassCatalog) Count() int {
	return len(c.ordered)
}

// MedianHP returns the median derived HP across the roster, used to
// normalize per-class performance baselines.
func (c *ClassCatalog) MedianHP() int {
	hps := make([]int, 0, len(c.ordered))
	for i := range c.ordered {
		hps = append(hps, c.ordered[i].HP())
	}
	sort.Ints(hps)
	mid := len(hps) / 2
	if len(hps)%2 == 0 {
		return (hps[mid-1] + hps[mid]) / 2
	}
	return hps[mid]
}

// Validate checks the catalog-wide balance invariants: attribute and HP
// ranges, minimum ability counts, a unique signature ability per class,
// no duplicate starting sets, and the pairwise power-score spread.
func (c *ClassCatalog) Validate() error {
	vb := errors.NewValidationBuilder()

	abilityOwners := make(map[string][]string)
	startingSets := make(map[string]string)

	for i := range c.ordered {
		t := &c.ordered[i]
		validateScore(vb, t.ID, "strength", t.Scores.Strength, 5, 18)
		validateScore(vb, t.ID, "dexterity", t.Scores.Dexterity, 5, 18)
		validateScore(vb, t.ID, "intelligence", t.Scores.Intelligence, 4, 18)
		validateScore(vb, t.ID, "wisdom", t.Scores.Wisdom, 4, 18)
		validateScore(vb, t.ID, "charisma", t.Scores.Charisma, 4, 18)
		validateScore(vb, t.ID, "constitution", t.Scores.Constitution, 6, 16)
		validateScore(vb, t.ID, "hp", t.HP(), 20, 80)

		if len(t.Abilities) < 3 {
			vb.Fieldf(t.ID, "needs at least 3 starting abilities, has %d", len(t.Abilities))
		}
		for _, a := range t.Abilities {
			if _, ok := AbilityByID(a); !ok {
				vb.Fieldf(t.ID, "unknown ability %q", a)
			}
			abilityOwners[a] = append(abilityOwners[a], t.ID)
		}

		key := startingSetKey(t.Abilities)
		if other, dup := startingSets[key]; dup {
			vb.Fieldf(t.ID, "identical starting ability set as %s", other)
		}
		startingSets[key] = t.ID
	}

	// Every class needs at least one ability no other class starts with.
	for i := range c.ordered {
		t := &c.ordered[i]
		unique := false
		for _, a := range t.Abilities {
			if len(abilityOwners[a]) == 1 {
				unique = true
				break
			}
		}
		if !unique {
			vb.Fieldf(t.ID, "no signature ability unique to the class")
		}
	}

	// Pairwise power spread.
	for i := range c.ordered {
		for j := range c.ordered {
			if i == j {
				continue
			}
			a, b := &c.ordered[i], &c.ordered[j]
			if a.PowerScore() > b.PowerScore()*maxPowerSpread {
				vb.Fieldf(a.ID, "power score %.1f exceeds %s's %.1f by more than %d%%",
					a.PowerScore(), b.ID, b.PowerScore(), int((maxPowerSpread-1)*100))
			}
		}
	}

	return vb.Build()
}

func validateScore(vb *errors.ValidationBuilder, classID, name string, value, minValue, maxValue int) {
	if value < minValue || value > maxValue {
		vb.Fieldf(classID, "%s %d outside [%d,%d]", name, value, minValue, maxValue)
	}
}

func startingSetKey(abilities []string) string {
	sorted := append([]string(nil), abilities...)
	sort.Strings(sorted)
	key := ""
	for _, a := range sorted {
		key += a + "|"
	}
	return key
}
