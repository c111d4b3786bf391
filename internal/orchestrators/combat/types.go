package combat

import "github.com/wrenfall/rpg-core/internal/entities"

// BeginInput defines the request to start an encounter. EncounterID is
// optional; a fresh id is generated when empty.
type BeginInput struct {
	EncounterID string
	Character   *entities.Character
	Enemies     []*entities.EnemyInstance
}

// BeginOutput returns the encounter after initiative, advanced to the
// character's first turn (enemies with higher initiative already acted).
type BeginOutput struct {
	Encounter *entities.Encounter
	Resolved  bool
	Telemetry *entities.EncounterTelemetry
}

// StepInput defines one player action applied to a running encounter
type StepInput struct {
	Encounter *entities.Encounter
	Action    entities.Action
}

// StepOutput returns the encounter state after the player action and
// the following enemy turns. Telemetry is set only when the encounter
// resolved during this step.
type StepOutput struct {
	Encounter *entities.Encounter
	Resolved  bool
	Telemetry *entities.EncounterTelemetry
}

// RunInput drives a whole encounter with an action policy
type RunInput struct {
	EncounterID string
	Character   *entities.Character
	Enemies     []*entities.EnemyInstance
	Policy      ActionPolicy
}

// RunOutput returns the resolved encounter and its telemetry record
type RunOutput struct {
	Encounter *entities.Encounter
	Telemetry *entities.EncounterTelemetry
}

// ActionPolicy selects the player action each turn when an encounter
// is driven by Run instead of an interactive caller.
type ActionPolicy interface {
	ChooseAction(enc *entities.Encounter) entities.Action
}

// BaselinePolicy is the default policy used by the session flow and
// the simulation CLI: defend when badly hurt, lead with the signature
// ability on a fixed cadence, otherwise attack.
type BaselinePolicy struct {
	turns int
}

// NewBaselinePolicy creates a fresh policy; one policy drives one
// encounter so the cadence counter starts at zero.
func NewBaselinePolicy() *BaselinePolicy {
	return &BaselinePolicy{}
}

// ChooseAction implements ActionPolicy
func (p *BaselinePolicy) ChooseAction(enc *entities.Encounter) entities.Action {
	p.turns++
	ch := enc.Character
	if ch.CurrentHP*4 < ch.MaxHP {
		return entities.Action{Type: entities.ActionDefend}
	}
	if p.turns%3 == 0 && len(ch.Abilities) > 2 {
		return entities.Action{Type: entities.ActionUseAbility, AbilityID: ch.Abilities[2]}
	}
	return entities.Action{Type: entities.ActionAttack}
}
