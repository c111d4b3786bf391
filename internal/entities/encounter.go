package entities

import "time"

// EncounterState tracks where an encounter is in its lifecycle
type EncounterState string

// Encounter states
const (
	EncounterNotStarted EncounterState = "not_started"
	EncounterInitiative EncounterState = "initiative"
	EncounterTurnLoop   EncounterState = "turn_loop"
	EncounterResolved   EncounterState = "resolved"
)

// Outcome is the terminal result of an encounter
type Outcome string

// Encounter outcomes
const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// ActionType identifies a combat action
type ActionType string

// Combat actions
const (
	ActionAttack     ActionType = "attack"
	ActionDefend     ActionType = "defend"
	ActionUseAbility ActionType = "use_ability"
	ActionUseItem    ActionType = "use_item"
	ActionFlee       ActionType = "flee"
)

// Action is one combat action selected by the acting side.
// AbilityID is set for UseAbility, ItemID for UseItem.
type Action struct {
	Type      ActionType
	AbilityID string
	ItemID    string
}

// CombatantKind distinguishes the character from enemy instances in the
// initiative order
type CombatantKind string

// Combatant kinds
const (
	CombatantCharacter CombatantKind = "character"
	CombatantEnemy     CombatantKind = "enemy"
)

// Combatant is one slot in the initiative order. EnemyIndex indexes into
// the encounter's enemy slice and is meaningless for the character slot.
type Combatant struct {
	Kind       CombatantKind
	EnemyIndex int
	Initiative int
	Defending  bool
}

// Encounter carries the full runtime state of one combat encounter.
// It is created by the combat engine and mutated only through it.
type Encounter struct {
	ID        string
	State     EncounterState
	Character *Character
	Enemies   []*EnemyInstance

	// Order is descending by initiative, ties broken by insertion order.
	Order     []Combatant
	TurnIndex int
	Round     int

	Outcome       Outcome
	FleeBonus     float64
	ResourcesUsed int
	DamageDealt   int
	DamageTaken   int
	StartedAt     time.Time
}

// Current returns the combatant whose turn it is
func (e *Encounter) Current() *Combatant {
	return &e.Order[e.TurnIndex]
}

// LivingEnemies counts enemies still standing
func (e *Encounter) LivingEnemies() int {
	n := 0
	for _, enemy := range e.Enemies {
		if enemy.IsAlive() {
			n++
		}
	}
	return n
}

// IsCharacterTurn reports whether the initiative pointer is on the character
func (e *Encounter) IsCharacterTurn() bool {
	return e.Order[e.TurnIndex].Kind == CombatantCharacter
}
