// Package combat implements the turn-based combat engine: initiative,
// the player/enemy turn loop, behavior-tag enemy AI, and encounter
// resolution with exactly one telemetry record per encounter.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/wrenfall/rpg-core/internal/orchestrators/combat Service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/events"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
)

const (
	// Flee chance bounds and the dexterity weight feeding it.
	fleeBaseChance = 0.5
	fleePerDex     = 0.03
	fleeMinChance  = 0.05
	fleeMaxChance  = 0.95

	// Stalemate guard: an encounter that outlives this many rounds
	// resolves as fled (both sides disengage).
	maxRounds = 100

	weaknessBonus = 1.5
)

// Service defines the interface for combat operations
type Service interface {
	// Begin rolls initiative and plays enemy turns up to the
	// character's first turn.
	Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error)

	// Step applies one player action, then plays enemy turns until the
	// character's next turn or resolution.
	Step(ctx context.Context, input *StepInput) (*StepOutput, error)

	// Run drives a whole encounter with an action policy.
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)
}

// Config holds the dependencies for the combat engine
type Config struct {
	Roller      dice.Roller
	Clock       clock.Clock
	IDGenerator idgen.Generator
	EventBus    *events.Bus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
	clock  clock.Clock
	idGen  idgen.Generator
	bus    *events.Bus
}

// NewOrchestrator creates a new combat engine with the provided
// dependencies. The event bus is optional; without one the telemetry
// record is only returned, not emitted.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller: cfg.Roller,
		clock:  cfg.Clock,
		idGen:  cfg.IDGenerator,
		bus:    cfg.EventBus,
	}, nil
}

var _ Service = (*orchestrator)(nil)

// Begin implements Service.Begin
func (o *orchestrator) Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if len(input.Enemies) == 0 {
		return nil, errors.InvalidArgument("at least one enemy is required")
	}
	if !input.Character.IsAlive() {
		return nil, errors.FailedPrecondition("character has no hit points remaining")
	}

	encounterID := input.EncounterID
	if encounterID == "" {
		encounterID = o.idGen.Generate()
	}

	enc := &entities.Encounter{
		ID:        encounterID,
		State:     entities.EncounterNotStarted,
		Character: input.Character,
		Enemies:   input.Enemies,
		Round:     1,
		StartedAt: o.clock.Now(),
	}

	if err := o.rollInitiative(enc); err != nil {
		return nil, err
	}

	slog.Info("encounter started",
		"encounter_id", enc.ID,
		"character", enc.Character.Name,
		"enemies", len(enc.Enemies),
	)

	enc.State = entities.EncounterTurnLoop
	telemetry := o.playEnemyTurns(enc)

	return &BeginOutput{
		Encounter: enc,
		Resolved:  enc.State == entities.EncounterResolved,
		Telemetry: telemetry,
	}, nil
}

// rollInitiative scores every combatant as dexterity plus a d6
// perturbation and orders descending, ties broken by insertion order
// (character first, then enemies in spawn order).
func (o *orchestrator) rollInitiative(enc *entities.Encounter) error {
	enc.State = entities.EncounterInitiative

	roll, err := o.roller.Roll(1, 6, enc.Character.Scores.Dexterity)
	if err != nil {
		return errors.Wrap(err, "character initiative roll failed")
	}
	enc.Order = append(enc.Order, entities.Combatant{
		Kind:       entities.CombatantCharacter,
		Initiative: roll.Total,
	})

	for i, enemy := range enc.Enemies {
		roll, err := o.roller.Roll(1, 6, enemy.Dexterity)
		if err != nil {
			return errors.Wrap(err, "enemy initiative roll failed")
		}
		enc.Order = append(enc.Order, entities.Combatant{
			Kind:       entities.CombatantEnemy,
			EnemyIndex: i,
			Initiative: roll.Total,
		})
	}

	// Stable sort keeps insertion order on ties, which keeps runs
	// reproducible for a fixed seed.
	sort.SliceStable(enc.Order, func(i, j int) bool {
		return enc.Order[i].Initiative > enc.Order[j].Initiative
	})
	return nil
}

// Step implements Service.Step
func (o *orchestrator) Step(ctx context.Context, input *StepInput) (*StepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	enc := input.Encounter
	if enc == nil {
		return nil, errors.InvalidArgument("encounter is required")
	}
	if enc.State != entities.EncounterTurnLoop {
		return nil, errors.FailedPreconditionf("cannot act in state %q", enc.State)
	}
	if !enc.IsCharacterTurn() {
		return nil, errors.FailedPrecondition("not the character's turn")
	}

	if err := o.applyPlayerAction(enc, input.Action); err != nil {
		return nil, err
	}

	var telemetry *entities.EncounterTelemetry
	if enc.State == entities.EncounterResolved {
		telemetry = o.finalize(enc)
	} else {
		o.advanceTurn(enc)
		telemetry = o.playEnemyTurns(enc)
	}

	return &StepOutput{
		Encounter: enc,
		Resolved:  enc.State == entities.EncounterResolved,
		Telemetry: telemetry,
	}, nil
}

// Run implements Service.Run
func (o *orchestrator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	policy := input.Policy
	if policy == nil {
		policy = NewBaselinePolicy()
	}

	beginOut, err := o.Begin(ctx, &BeginInput{
		EncounterID: input.EncounterID,
		Character:   input.Character,
		Enemies:     input.Enemies,
	})
	if err != nil {
		return nil, err
	}

	enc := beginOut.Encounter
	telemetry := beginOut.Telemetry
	for enc.State == entities.EncounterTurnLoop {
		stepOut, err := o.Step(ctx, &StepInput{
			Encounter: enc,
			Action:    policy.ChooseAction(enc),
		})
		if err != nil {
			return nil, err
		}
		telemetry = stepOut.Telemetry
	}

	return &RunOutput{
		Encounter: enc,
		Telemetry: telemetry,
	}, nil
}

func (o *orchestrator) applyPlayerAction(enc *entities.Encounter, action entities.Action) error {
	ch := enc.Character

	switch action.Type {
	case entities.ActionAttack:
		return o.playerStrike(enc, catalog.AbilityAttack)

	case entities.ActionDefend:
		enc.Current().Defending = true
		return nil

	case entities.ActionUseAbility:
		if !hasAbility(ch, action.AbilityID) {
			return errors.InvalidArgumentf("character does not know ability %q", action.AbilityID)
		}
		if action.AbilityID != catalog.AbilityAttack && action.AbilityID != catalog.AbilityDefend {
			enc.ResourcesUsed++
		}
		if action.AbilityID == catalog.AbilityDefend {
			enc.Current().Defending = true
			return nil
		}
		return o.playerStrike(enc, action.AbilityID)

	case entities.ActionUseItem:
		return o.useItem(enc, action.ItemID)

	case entities.ActionFlee:
		o.attemptFlee(enc)
		return nil

	default:
		return errors.InvalidArgumentf("unknown action type %q", action.Type)
	}
}

func (o *orchestrator) playerStrike(enc *entities.Encounter, abilityID string) error {
	def, ok := catalog.AbilityByID(abilityID)
	if !ok || def.Multiplier == 0 {
		return errors.InvalidArgumentf("ability %q cannot deal damage", abilityID)
	}

	target := firstLivingEnemy(enc)
	if target == nil {
		return errors.FailedPrecondition("no living enemy to target")
	}

	offense := enc.Character.Scores.Strength
	if def.Kind == entities.DamageMagical {
		offense = enc.Character.Scores.Intelligence
		if enc.Character.Scores.Wisdom > offense {
			offense = enc.Character.Scores.Wisdom
		}
	}

	raw := float64(offense) * def.Multiplier
	if target.IsWeakTo(def.Kind) {
		raw *= weaknessBonus
	}
	damage := int(raw) - target.Defense
	if damage < 0 {
		damage = 0
	}
	if targetDefending(enc, target) {
		damage /= 2
	}

	target.ApplyDamage(damage)
	enc.DamageDealt += damage

	if def.LifestealPct > 0 && damage > 0 {
		enc.Character.Heal(int(float64(damage) * def.LifestealPct))
	}

	if enc.LivingEnemies() == 0 {
		enc.State = entities.EncounterResolved
		enc.Outcome = entities.OutcomeVictory
	}
	return nil
}

func (o *orchestrator) useItem(enc *entities.Encounter, itemID string) error {
	def, ok := catalog.ItemByID(itemID)
	if !ok {
		return errors.NotFoundf("unknown item %q", itemID)
	}

	if def.HealHP > 0 {
		enc.Character.Heal(def.HealHP)
	}
	if def.FleeBonus > 0 {
		enc.FleeBonus = def.FleeBonus
	}
	enc.ResourcesUsed++
	return nil
}

// attemptFlee rolls the escape chance. Success resolves the encounter
// atomically: no damage lands after a successful roll.
func (o *orchestrator) attemptFlee(enc *entities.Encounter) {
	maxDex := 0
	for _, enemy := range enc.Enemies {
		if enemy.IsAlive() && enemy.Dexterity > maxDex {
			maxDex = enemy.Dexterity
		}
	}

	chance := fleeBaseChance + fleePerDex*float64(enc.Character.Scores.Dexterity-maxDex) + enc.FleeBonus
	enc.FleeBonus = 0
	if chance < fleeMinChance {
		chance = fleeMinChance
	}
	if chance > fleeMaxChance {
		chance = fleeMaxChance
	}

	if o.roller.Float() < chance {
		enc.State = entities.EncounterResolved
		enc.Outcome = entities.OutcomeFled
	}
}

// playEnemyTurns plays enemy turns until the initiative pointer is back
// on the character or the encounter resolves. Returns telemetry when
// resolution happened inside this call.
func (o *orchestrator) playEnemyTurns(enc *entities.Encounter) *entities.EncounterTelemetry {
	for enc.State == entities.EncounterTurnLoop && !enc.IsCharacterTurn() {
		current := enc.Current()
		enemy := enc.Enemies[current.EnemyIndex]
		if enemy.IsAlive() {
			o.enemyAct(enc, current, enemy)
		}
		if enc.State != entities.EncounterTurnLoop {
			break
		}
		o.advanceTurn(enc)
	}

	if enc.State == entities.EncounterResolved {
		return o.finalize(enc)
	}
	return nil
}

// enemyAct dispatches on the behavior tag. Bosses consult their phase
// script first; a triggered phase overrides the behavior and adds its
// damage bonus.
func (o *orchestrator) enemyAct(enc *entities.Encounter, slot *entities.Combatant, enemy *entities.EnemyInstance) {
	behavior := enemy.Behavior
	bonus := 0
	if behavior == entities.BehaviorBoss {
		behavior = entities.BehaviorAggressive
		if phase := enemy.ActivePhase(); phase != nil {
			behavior = phase.Behavior
			bonus = phase.DamageBonus
		}
	}

	switch behavior {
	case entities.BehaviorDefensive:
		if enemy.CurrentHP*2 < enemy.MaxHP && !slot.Defending {
			slot.Defending = true
			return
		}
		o.enemyStrike(enc, enemy, 1.0, bonus, entities.DamagePhysical)

	case entities.BehaviorCaster:
		if enemy.Magic > 0 {
			o.enemyStrike(enc, enemy, 1.4, bonus, entities.DamageMagical)
			return
		}
		o.enemyStrike(enc, enemy, 1.0, bonus, entities.DamagePhysical)

	case entities.BehaviorSupportive:
		if ally := woundedAlly(enc, enemy); ally != nil {
			heal := ally.MaxHP * 15 / 100
			ally.CurrentHP += heal
			if ally.CurrentHP > ally.MaxHP {
				ally.CurrentHP = ally.MaxHP
			}
			return
		}
		o.enemyStrike(enc, enemy, 1.0, bonus, entities.DamagePhysical)

	default: // aggressive
		o.enemyStrike(enc, enemy, 1.2, bonus, entities.DamagePhysical)
	}
}

func (o *orchestrator) enemyStrike(enc *entities.Encounter, enemy *entities.EnemyInstance, multiplier float64, bonus int, kind entities.DamageKind) {
	offense := enemy.Attack
	if kind == entities.DamageMagical {
		offense = enemy.Magic
	}
	offense += bonus

	mitigation := enc.Character.Scores.Constitution / 2
	if kind == entities.DamageMagical {
		mitigation = enc.Character.Scores.Wisdom / 2
	}

	damage := int(float64(offense)*multiplier) - mitigation
	if damage < 0 {
		damage = 0
	}
	if characterDefending(enc) {
		damage /= 2
	}

	enc.Character.ApplyDamage(damage)
	enc.DamageTaken += damage

	if !enc.Character.IsAlive() {
		enc.State = entities.EncounterResolved
		enc.Outcome = entities.OutcomeDefeat
	}
}

// advanceTurn moves the initiative pointer and clears the defending
// flag of the combatant whose turn begins. A full wrap is one round;
// outliving the round cap disengages both sides.
func (o *orchestrator) advanceTurn(enc *entities.Encounter) {
	enc.TurnIndex++
	if enc.TurnIndex >= len(enc.Order) {
		enc.TurnIndex = 0
		enc.Round++
		if enc.Round > maxRounds {
			enc.State = entities.EncounterResolved
			enc.Outcome = entities.OutcomeFled
			return
		}
	}
	enc.Current().Defending = false
}

func (o *orchestrator) finalize(enc *entities.Encounter) *entities.EncounterTelemetry {
	now := o.clock.Now()
	telemetry := &entities.EncounterTelemetry{
		EncounterID:   enc.ID,
		Outcome:       enc.Outcome,
		Turns:         enc.Round,
		ResourcesUsed: enc.ResourcesUsed,
		DamageDealt:   enc.DamageDealt,
		DamageTaken:   enc.DamageTaken,
		Duration:      now.Sub(enc.StartedAt),
		RecordedAt:    now,
	}

	slog.Info("encounter resolved",
		"encounter_id", enc.ID,
		"outcome", enc.Outcome,
		"turns", telemetry.Turns,
		"damage_dealt", telemetry.DamageDealt,
		"damage_taken", telemetry.DamageTaken,
	)

	if o.bus != nil {
		if err := o.bus.Emit(&events.EncounterResolved{Telemetry: telemetry}); err != nil {
			slog.Error("failed to emit encounter telemetry",
				"encounter_id", enc.ID,
				"error", err,
			)
		}
	}
	return telemetry
}

// AvailableActions lists what the acting character may do, for the
// presentation snapshot contract.
func AvailableActions(enc *entities.Encounter) []entities.ActionType {
	if enc == nil || enc.State != entities.EncounterTurnLoop || !enc.IsCharacterTurn() {
		return nil
	}
	return []entities.ActionType{
		entities.ActionAttack,
		entities.ActionDefend,
		entities.ActionUseAbility,
		entities.ActionUseItem,
		entities.ActionFlee,
	}
}

func hasAbility(ch *entities.Character, abilityID string) bool {
	for _, a := range ch.Abilities {
		if a == abilityID {
			return true
		}
	}
	return false
}

func firstLivingEnemy(enc *entities.Encounter) *entities.EnemyInstance {
	for _, enemy := range enc.Enemies {
		if enemy.IsAlive() {
			return enemy
		}
	}
	return nil
}

func woundedAlly(enc *entities.Encounter, self *entities.EnemyInstance) *entities.EnemyInstance {
	for _, enemy := range enc.Enemies {
		if enemy == self || !enemy.IsAlive() {
			continue
		}
		if enemy.CurrentHP*100 < enemy.MaxHP*60 {
			return enemy
		}
	}
	return nil
}

func targetDefending(enc *entities.Encounter, target *entities.EnemyInstance) bool {
	for i := range enc.Order {
		slot := &enc.Order[i]
		if slot.Kind == entities.CombatantEnemy && enc.Enemies[slot.EnemyIndex] == target {
			return slot.Defending
		}
	}
	return false
}

func characterDefending(enc *entities.Encounter) bool {
	for i := range enc.Order {
		if enc.Order[i].Kind == entities.CombatantCharacter {
			return enc.Order[i].Defending
		}
	}
	return false
}
