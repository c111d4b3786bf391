package catalog

import "github.com/wrenfall/rpg-core/internal/entities"

// Ability ids shared by every class
const (
	AbilityAttack = "attack"
	AbilityDefend = "defend"
)

// AbilityDef describes one combat ability. Physical abilities scale
// with strength, magical with the better of intelligence and wisdom.
// LifestealPct routes a share of the damage dealt back as healing.
type AbilityDef struct {
	ID           string
	Name         string
	Multiplier   float64
	Kind         entities.DamageKind
	LifestealPct float64
}

var abilityTable = map[string]AbilityDef{
	AbilityAttack:    {ID: AbilityAttack, Name: "Attack", Multiplier: 1.0, Kind: entities.DamagePhysical},
	AbilityDefend:    {ID: AbilityDefend, Name: "Defend"},
	"power_strike":   {ID: "power_strike", Name: "Power Strike", Multiplier: 1.5, Kind: entities.DamagePhysical},
	"fireball":       {ID: "fireball", Name: "Fireball", Multiplier: 1.8, Kind: entities.DamageMagical},
	"backstab":       {ID: "backstab", Name: "Backstab", Multiplier: 1.7, Kind: entities.DamagePhysical},
	"smite":          {ID: "smite", Name: "Smite", Multiplier: 1.4, Kind: entities.DamageMagical},
	"holy_strike":    {ID: "holy_strike", Name: "Holy Strike", Multiplier: 1.4, Kind: entities.DamagePhysical},
	"aimed_shot":     {ID: "aimed_shot", Name: "Aimed Shot", Multiplier: 1.5, Kind: entities.DamagePhysical},
	"rage":           {ID: "rage", Name: "Rage", Multiplier: 1.6, Kind: entities.DamagePhysical},
	"discord":        {ID: "discord", Name: "Discord", Multiplier: 1.3, Kind: entities.DamageMagical},
	"flurry":         {ID: "flurry", Name: "Flurry", Multiplier: 1.4, Kind: entities.DamagePhysical},
	"chaos_bolt":     {ID: "chaos_bolt", Name: "Chaos Bolt", Multiplier: 1.7, Kind: entities.DamageMagical},
	"eldritch_blast": {ID: "eldritch_blast", Name: "Eldritch Blast", Multiplier: 1.5, Kind: entities.DamageMagical},
	"entangle":       {ID: "entangle", Name: "Entangle", Multiplier: 1.2, Kind: entities.DamageMagical},
	"shield_bash":    {ID: "shield_bash", Name: "Shield Bash", Multiplier: 1.2, Kind: entities.DamagePhysical},
	"reckless_swing": {ID: "reckless_swing", Name: "Reckless Swing", Multiplier: 1.8, Kind: entities.DamagePhysical},
	"shadow_strike":  {ID: "shadow_strike", Name: "Shadow Strike", Multiplier: 1.7, Kind: entities.DamagePhysical},
	"drain_life":     {ID: "drain_life", Name: "Drain Life", Multiplier: 1.3, Kind: entities.DamageMagical, LifestealPct: 0.5},
	"spirit_lash":    {ID: "spirit_lash", Name: "Spirit Lash", Multiplier: 1.4, Kind: entities.DamageMagical},
	"phantasm":       {ID: "phantasm", Name: "Phantasm", Multiplier: 1.5, Kind: entities.DamageMagical},
	"acid_flask":     {ID: "acid_flask", Name: "Acid Flask", Multiplier: 1.4, Kind: entities.DamageMagical},
	"riposte":        {ID: "riposte", Name: "Riposte", Multiplier: 1.5, Kind: entities.DamagePhysical},
	"censure":        {ID: "censure", Name: "Censure", Multiplier: 1.4, Kind: entities.DamageMagical},
	"beast_call":     {ID: "beast_call", Name: "Beast Call", Multiplier: 1.4, Kind: entities.DamagePhysical},
	"arcane_edge":    {ID: "arcane_edge", Name: "Arcane Edge", Multiplier: 1.5, Kind: entities.DamageMagical},
}

// AbilityByID looks up an ability definition
func AbilityByID(id string) (AbilityDef, bool) {
	def, ok := abilityTable[id]
	return def, ok
}
