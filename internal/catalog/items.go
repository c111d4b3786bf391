package catalog

// ItemDef is a consumable the combat engine knows how to resolve.
// Item ownership lives with the external inventory collaborator; the
// engine only applies effects and reports consumption.
type ItemDef struct {
	ID        string
	Name      string
	HealHP    int
	FleeBonus float64
	Rare      bool
}

var itemTable = map[string]ItemDef{
	"healing_draught": {ID: "healing_draught", Name: "Healing Draught", HealHP: 25},
	"greater_draught": {ID: "greater_draught", Name: "Greater Draught", HealHP: 60, Rare: true},
	"smoke_bomb":      {ID: "smoke_bomb", Name: "Smoke Bomb", FleeBonus: 0.25},
	"phoenix_feather": {ID: "phoenix_feather", Name: "Phoenix Feather", HealHP: 80, Rare: true},
	"lucky_charm":     {ID: "lucky_charm", Name: "Lucky Charm", FleeBonus: 0.4, Rare: true},
}

// ItemByID looks up an item definition
func ItemByID(id string) (ItemDef, bool) {
	def, ok := itemTable[id]
	return def, ok
}

// RareItems returns the ids the reward scheduler can grant as rare
// drops, in stable order.
func RareItems() []string {
	return []string{"greater_draught", "phoenix_feather", "lucky_charm"}
}
