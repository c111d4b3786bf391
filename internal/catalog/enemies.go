package catalog

import (
	"fmt"

	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/entities"
)

// Catalog shape: regular archetypes appear once per tier, bosses once
// per boss tier.
const (
	RegularTiers = 8
	BossTiers    = 5
)

// archetype is one row of the base enemy table. Stats are tier-1
// values; tierFactor scales them up per tier.
type archetype struct {
	key        string
	name       string
	behavior   entities.BehaviorTag
	hp         int
	attack     int
	defense    int
	dexterity  int
	magic      int
	weaknesses []entities.DamageKind
	xp         int
	weight     int
}

var regularArchetypes = []archetype{
	{key: "goblin", name: "Goblin", behavior: entities.BehaviorAggressive, hp: 18, attack: 6, defense: 2, dexterity: 12, magic: 0, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 10, weight: 10},
	{key: "wolf", name: "Dire Wolf", behavior: entities.BehaviorAggressive, hp: 22, attack: 7, defense: 2, dexterity: 14, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 12, weight: 9},
	{key: "skeleton", name: "Skeleton", behavior: entities.BehaviorAggressive, hp: 20, attack: 6, defense: 3, dexterity: 9, magic: 0, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 11, weight: 9},
	{key: "zombie", name: "Zombie", behavior: entities.BehaviorDefensive, hp: 28, attack: 5, defense: 4, dexterity: 5, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 11, weight: 8},
	{key: "bandit", name: "Bandit", behavior: entities.BehaviorAggressive, hp: 24, attack: 7, defense: 3, dexterity: 11, magic: 0, xp: 13, weight: 8},
	{key: "orc", name: "Orc", behavior: entities.BehaviorAggressive, hp: 30, attack: 8, defense: 4, dexterity: 9, magic: 0, xp: 15, weight: 8},
	{key: "spider", name: "Giant Spider", behavior: entities.BehaviorAggressive, hp: 20, attack: 7, defense: 2, dexterity: 15, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 12, weight: 7},
	{key: "slime", name: "Slime", behavior: entities.BehaviorDefensive, hp: 26, attack: 4, defense: 6, dexterity: 4, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 9, weight: 7},
	{key: "kobold", name: "Kobold", behavior: entities.BehaviorDefensive, hp: 16, attack: 5, defense: 3, dexterity: 13, magic: 0, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 9, weight: 7},
	{key: "cultist", name: "Cultist", behavior: entities.BehaviorCaster, hp: 18, attack: 4, defense: 2, dexterity: 10, magic: 8, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 14, weight: 7},
	{key: "imp", name: "Imp", behavior: entities.BehaviorCaster, hp: 16, attack: 4, defense: 2, dexterity: 14, magic: 7, xp: 13, weight: 6},
	{key: "ghoul", name: "Ghoul", behavior: entities.BehaviorAggressive, hp: 26, attack: 8, defense: 3, dexterity: 10, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 15, weight: 6},
	{key: "harpy", name: "Harpy", behavior: entities.BehaviorSupportive, hp: 22, attack: 6, defense: 2, dexterity: 13, magic: 5, xp: 14, weight: 6},
	{key: "lizardman", name: "Lizardman", behavior: entities.BehaviorDefensive, hp: 28, attack: 7, defense: 5, dexterity: 10, magic: 0, xp: 15, weight: 6},
	{key: "wraith", name: "Wraith", behavior: entities.BehaviorCaster, hp: 24, attack: 5, defense: 3, dexterity: 12, magic: 9, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 17, weight: 5},
	{key: "troll", name: "Troll", behavior: entities.BehaviorDefensive, hp: 38, attack: 9, defense: 5, dexterity: 6, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 19, weight: 5},
	{key: "ogre", name: "Ogre", behavior: entities.BehaviorAggressive, hp: 36, attack: 10, defense: 4, dexterity: 6, magic: 0, xp: 18, weight: 5},
	{key: "basilisk", name: "Basilisk", behavior: entities.BehaviorAggressive, hp: 30, attack: 9, defense: 5, dexterity: 8, magic: 4, xp: 19, weight: 4},
	{key: "gargoyle", name: "Gargoyle", behavior: entities.BehaviorDefensive, hp: 32, attack: 7, defense: 7, dexterity: 7, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 18, weight: 4},
	{key: "minotaur", name: "Minotaur", behavior: entities.BehaviorAggressive, hp: 40, attack: 11, defense: 5, dexterity: 8, magic: 0, xp: 21, weight: 4},
	{key: "wyvern", name: "Wyvern", behavior: entities.BehaviorAggressive, hp: 38, attack: 10, defense: 4, dexterity: 12, magic: 3, xp: 22, weight: 3},
	{key: "elemental", name: "Lesser Elemental", behavior: entities.BehaviorCaster, hp: 30, attack: 5, defense: 4, dexterity: 9, magic: 10, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 20, weight: 3},
	{key: "golem", name: "Stone Golem", behavior: entities.BehaviorDefensive, hp: 44, attack: 8, defense: 8, dexterity: 4, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 22, weight: 3},
	{key: "vampire_spawn", name: "Vampire Spawn", behavior: entities.BehaviorCaster, hp: 32, attack: 8, defense: 4, dexterity: 13, magic: 7, xp: 23, weight: 2},
	{key: "shade", name: "Shade", behavior: entities.BehaviorSupportive, hp: 26, attack: 6, defense: 3, dexterity: 14, magic: 8, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 20, weight: 2},
}

var bossArchetypes = []archetype{
	{key: "goblin_king", name: "Goblin King", behavior: entities.BehaviorBoss, hp: 70, attack: 10, defense: 5, dexterity: 11, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 60, weight: 1},
	{key: "bone_tyrant", name: "Bone Tyrant", behavior: entities.BehaviorBoss, hp: 80, attack: 11, defense: 6, dexterity: 8, magic: 6, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 70, weight: 1},
	{key: "spider_queen", name: "Spider Queen", behavior: entities.BehaviorBoss, hp: 72, attack: 12, defense: 5, dexterity: 15, magic: 4, xp: 68, weight: 1},
	{key: "flame_herald", name: "Flame Herald", behavior: entities.BehaviorBoss, hp: 66, attack: 9, defense: 5, dexterity: 10, magic: 12, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 72, weight: 1},
	{key: "frost_warden", name: "Frost Warden", behavior: entities.BehaviorBoss, hp: 78, attack: 10, defense: 8, dexterity: 7, magic: 9, xp: 74, weight: 1},
	{key: "plague_speaker", name: "Plague Speaker", behavior: entities.BehaviorBoss, hp: 70, attack: 8, defense: 6, dexterity: 9, magic: 11, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 76, weight: 1},
	{key: "iron_colossus", name: "Iron Colossus", behavior: entities.BehaviorBoss, hp: 96, attack: 12, defense: 10, dexterity: 4, magic: 0, weaknesses: []entities.DamageKind{entities.DamageMagical}, xp: 82, weight: 1},
	{key: "night_matron", name: "Night Matron", behavior: entities.BehaviorBoss, hp: 74, attack: 11, defense: 6, dexterity: 14, magic: 8, xp: 80, weight: 1},
	{key: "storm_caller", name: "Storm Caller", behavior: entities.BehaviorBoss, hp: 72, attack: 10, defense: 6, dexterity: 12, magic: 13, weaknesses: []entities.DamageKind{entities.DamagePhysical}, xp: 84, weight: 1},
	{key: "abyss_regent", name: "Abyss Regent", behavior: entities.BehaviorBoss, hp: 90, attack: 13, defense: 8, dexterity: 10, magic: 12, xp: 95, weight: 1},
}

// bossPhases is the shared phase script shape: a mid-fight stance
// change and a desperate final phase. The stance per boss comes from
// its archetype magic stat (casters start casting harder).
func bossPhases(a archetype) []entities.BossPhase {
	mid := entities.BehaviorAggressive
	if a.magic >= a.attack {
		mid = entities.BehaviorCaster
	}
	return []entities.BossPhase{
		{HPBelowPct: 0.6, Behavior: mid, DamageBonus: 3},
		{HPBelowPct: 0.25, Behavior: entities.BehaviorAggressive, DamageBonus: 7},
	}
}

// tierFactor scales tier-1 stats for higher tiers
func tierFactor(tier int) float64 {
	return 1 + 0.35*float64(tier-1)
}

// EnemyCatalog is the registry of enemy templates, derived from the
// archetype tables at construction time.
type EnemyCatalog struct {
	ordered []entities.EnemyTemplate
	byID    map[string]*entities.EnemyTemplate
	byTier  map[int][]*entities.EnemyTemplate
	bosses  map[int][]*entities.EnemyTemplate
	weights map[string]int
}

// NewEnemyCatalog derives every template: 25 archetypes across 8 tiers
// plus 10 boss archetypes across 5 tiers.
func NewEnemyCatalog() *EnemyCatalog {
	c := &EnemyCatalog{
		byID:    make(map[string]*entities.EnemyTemplate),
		byTier:  make(map[int][]*entities.EnemyTemplate),
		bosses:  make(map[int][]*entities.EnemyTemplate),
		weights: make(map[string]int),
	}

	for tier := 1; tier <= RegularTiers; tier++ {
		for _, a := range regularArchetypes {
			t := buildTemplate(a, tier, false)
			c.ordered = append(c.ordered, t)
			c.weights[t.ID] = a.weight
		}
	}
	for tier := 1; tier <= BossTiers; tier++ {
		for _, a := range bossArchetypes {
			c.ordered = append(c.ordered, buildTemplate(a, tier, true))
		}
	}

	for i := range c.ordered {
		t := &c.ordered[i]
		c.byID[t.ID] = t
		if t.Boss {
			c.bosses[t.Tier] = append(c.bosses[t.Tier], t)
		} else {
			c.byTier[t.Tier] = append(c.byTier[t.Tier], t)
		}
	}
	return c
}

func buildTemplate(a archetype, tier int, boss bool) entities.EnemyTemplate {
	f := tierFactor(tier)
	t := entities.EnemyTemplate{
		ID:         fmt.Sprintf("%s_t%d", a.key, tier),
		Name:       a.name,
		Tier:       tier,
		Boss:       boss,
		Behavior:   a.behavior,
		MaxHP:      scaled(a.hp, f),
		Attack:     scaled(a.attack, f),
		Defense:    scaled(a.defense, f),
		Dexterity:  a.dexterity,
		Magic:      scaled(a.magic, f),
		Weaknesses: append([]entities.DamageKind(nil), a.weaknesses...),
		XP:         scaled(a.xp, f),
	}
	if boss {
		t.Phases = bossPhases(a)
	}
	return t
}

func scaled(base int, factor float64) int {
	if base == 0 {
		return 0
	}
	v := int(float64(base) * factor)
	if v < 1 {
		v = 1
	}
	return v
}

// TemplateByID looks up a template by id
func (c *EnemyCatalog) TemplateByID(id string) (*entities.EnemyTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Templates returns every template, regulars first, in derivation order
func (c *EnemyCatalog) Templates() []entities.EnemyTemplate {
	return c.ordered
}

// Count returns (regular, boss) template counts
func (c *EnemyCatalog) Count() (regular, boss int) {
	for i := range c.ordered {
		if c.ordered[i].Boss {
			boss++
		} else {
			regular++
		}
	}
	return regular, boss
}

// SpawnSet draws count regular enemies from the given tier, weighted by
// archetype rarity, and snapshots the difficulty scale into each
// instance. The tier clamps into [1, RegularTiers].
func (c *EnemyCatalog) SpawnSet(tier, count int, scale float64, roller dice.Roller) []*entities.EnemyInstance {
	tier = clampTier(tier, RegularTiers)
	if count < 1 {
		count = 1
	}

	pool := c.byTier[tier]
	out := make([]*entities.EnemyInstance, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, c.pickWeighted(pool, roller).Spawn(scale))
	}
	return out
}

// SpawnBoss draws one boss from the given boss tier with the scale
// snapshot applied.
func (c *EnemyCatalog) SpawnBoss(tier int, scale float64, roller dice.Roller) *entities.EnemyInstance {
	tier = clampTier(tier, BossTiers)
	pool := c.bosses[tier]
	return pool[roller.Intn(len(pool))].Spawn(scale)
}

func clampTier(tier, maxTier int) int {
	if tier < 1 {
		return 1
	}
	if tier > maxTier {
		return maxTier
	}
	return tier
}

func (c *EnemyCatalog) pickWeighted(pool []*entities.EnemyTemplate, roller dice.Roller) *entities.EnemyTemplate {
	total := 0
	for _, t := range pool {
		total += c.weights[t.ID]
	}
	n := roller.Intn(total)
	for _, t := range pool {
		n -= c.weights[t.ID]
		if n < 0 {
			return t
		}
	}
	return pool[len(pool)-1]
}
