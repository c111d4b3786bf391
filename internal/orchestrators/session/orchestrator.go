// Package session glues the core together: character creation, scaled
// enemy spawns, combat, telemetry consumption, reward consideration,
// and snapshot persistence. Everything runs synchronously at encounter
// boundaries so scaling and pacing are visible on the very next
// encounter.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/wrenfall/rpg-core/internal/orchestrators/session Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/orchestrators/character"
	"github.com/wrenfall/rpg-core/internal/orchestrators/combat"
	"github.com/wrenfall/rpg-core/internal/orchestrators/difficulty"
	"github.com/wrenfall/rpg-core/internal/orchestrators/reward"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
	sessionrepo "github.com/wrenfall/rpg-core/internal/repositories/session"
)

const (
	// Encounter pacing: tiers deepen every tierStride encounters, a
	// boss appears every bossStride encounters.
	tierStride = 4
	bossStride = 5
)

// Service defines the interface for session operations
type Service interface {
	// Start creates a character and initializes the session's
	// difficulty state.
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// RunEncounter spawns scaled enemies, resolves combat, records
	// telemetry, and considers a reward, in that order.
	RunEncounter(ctx context.Context, input *RunEncounterInput) (*RunEncounterOutput, error)

	// Snapshot returns the renderable state for the presentation layer
	Snapshot(ctx context.Context, input *SnapshotInput) (*SnapshotOutput, error)

	// Save persists the session through the configured repository
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Load restores a previously saved session
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	Factory     character.Service
	Combat      combat.Service
	Difficulty  difficulty.Service
	Reward      reward.Service
	Enemies     *catalog.EnemyCatalog
	Roller      dice.Roller
	IDGenerator idgen.Generator

	// Repository is optional; without one Save and Load fail with a
	// precondition error and encounter flow skips checkpointing.
	Repository sessionrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Factory == nil {
		vb.RequiredField("Factory")
	}
	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.Difficulty == nil {
		vb.RequiredField("Difficulty")
	}
	if c.Reward == nil {
		vb.RequiredField("Reward")
	}
	if c.Enemies == nil {
		vb.RequiredField("Enemies")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// sessionState is the in-memory state of one active session
type sessionState struct {
	character  *entities.Character
	difficulty *entities.DifficultyState
	encounters int
}

type orchestrator struct {
	factory    character.Service
	combat     combat.Service
	difficulty difficulty.Service
	reward     reward.Service
	enemies    *catalog.EnemyCatalog
	roller     dice.Roller
	idGen      idgen.Generator
	repo       sessionrepo.Repository

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// NewOrchestrator creates a new session orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		factory:    cfg.Factory,
		combat:     cfg.Combat,
		difficulty: cfg.Difficulty,
		reward:     cfg.Reward,
		enemies:    cfg.Enemies,
		roller:     cfg.Roller,
		idGen:      cfg.IDGenerator,
		repo:       cfg.Repository,
		sessions:   make(map[string]*sessionState),
	}, nil
}

var _ Service = (*orchestrator)(nil)

// Start implements Service.Start
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	created, err := o.factory.CreateCharacter(ctx, &character.CreateCharacterInput{
		Name:    input.Name,
		ClassID: input.ClassID,
	})
	if err != nil {
		return nil, err
	}

	state := &sessionState{
		character:  created.Character,
		difficulty: difficulty.NewState(),
	}
	sessionID := o.idGen.Generate()

	o.mu.Lock()
	o.sessions[sessionID] = state
	o.mu.Unlock()

	slog.Info("session started",
		"session_id", sessionID,
		"character", state.character.Name,
		"class", state.character.ClassID,
	)

	return &StartOutput{
		SessionID:  sessionID,
		Character:  state.character,
		Difficulty: state.difficulty,
	}, nil
}

// RunEncounter implements Service.RunEncounter
func (o *orchestrator) RunEncounter(ctx context.Context, input *RunEncounterInput) (*RunEncounterOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session id is required")
	}

	state, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	state.encounters++
	seq := state.encounters

	scaleOut, err := o.difficulty.SpawnMultiplier(ctx, &difficulty.SpawnMultiplierInput{State: state.difficulty})
	if err != nil {
		return nil, err
	}

	enemies := o.spawn(seq, scaleOut.Multiplier)
	o.rest(state.character)

	runOut, err := o.combat.Run(ctx, &combat.RunInput{
		Character: state.character,
		Enemies:   enemies,
		Policy:    combat.NewBaselinePolicy(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := o.difficulty.Record(ctx, &difficulty.RecordInput{
		State:     state.difficulty,
		Telemetry: runOut.Telemetry,
		ClassHP:   state.character.MaxHP,
	}); err != nil {
		return nil, err
	}

	rewardOut, err := o.reward.Consider(ctx, &reward.ConsiderInput{
		ActionID: fmt.Sprintf("encounter:%s", runOut.Encounter.ID),
		State:    state.difficulty,
	})
	if err != nil {
		return nil, err
	}
	if rewardOut.Event.Granted {
		state.character.Gold += rewardOut.Event.Gold
	}

	// A defeated character is revived between encounters; the defeat
	// already fed the difficulty controller.
	if !state.character.IsAlive() {
		state.character.CurrentHP = state.character.MaxHP
	}

	if o.repo != nil {
		if _, err := o.repo.Save(ctx, &sessionrepo.SaveInput{Snapshot: &sessionrepo.SessionSnapshot{
			SessionID:  input.SessionID,
			Character:  state.character,
			Difficulty: state.difficulty,
		}}); err != nil {
			slog.Error("failed to checkpoint session",
				"session_id", input.SessionID,
				"error", err,
			)
		}
	}

	return &RunEncounterOutput{
		Encounter:  runOut.Encounter,
		Telemetry:  runOut.Telemetry,
		Reward:     rewardOut.Event,
		Difficulty: state.difficulty,
	}, nil
}

// spawn picks the enemy set for the given encounter sequence: deeper
// tiers as the session progresses, a boss on the boss cadence, and the
// difficulty multiplier snapshotted into every instance.
func (o *orchestrator) spawn(seq int, scale float64) []*entities.EnemyInstance {
	if seq%bossStride == 0 {
		tier := 1 + (seq-1)/(tierStride*2)
		return []*entities.EnemyInstance{o.enemies.SpawnBoss(tier, scale, o.roller)}
	}

	tier := 1 + (seq-1)/tierStride
	count := 1 + o.roller.Intn(3)
	return o.enemies.SpawnSet(tier, count, scale, o.roller)
}

// rest heals half the missing HP between encounters
func (o *orchestrator) rest(ch *entities.Character) {
	if ch.CurrentHP < ch.MaxHP {
		ch.Heal((ch.MaxHP - ch.CurrentHP) / 2)
	}
}

// Snapshot implements Service.Snapshot
func (o *orchestrator) Snapshot(ctx context.Context, input *SnapshotInput) (*SnapshotOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session id is required")
	}

	state, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	return &SnapshotOutput{
		SessionID:      input.SessionID,
		Character:      state.character,
		Difficulty:     state.difficulty,
		EncountersSeen: state.encounters,
		AvailableActions: []entities.ActionType{
			entities.ActionAttack,
			entities.ActionDefend,
			entities.ActionUseAbility,
			entities.ActionUseItem,
			entities.ActionFlee,
		},
	}, nil
}

// Save implements Service.Save
func (o *orchestrator) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session id is required")
	}
	if o.repo == nil {
		return nil, errors.FailedPrecondition("no session repository configured")
	}

	state, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := o.repo.Save(ctx, &sessionrepo.SaveInput{Snapshot: &sessionrepo.SessionSnapshot{
		SessionID:  input.SessionID,
		Character:  state.character,
		Difficulty: state.difficulty,
	}}); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &SaveOutput{SessionID: input.SessionID}, nil
}

// Load implements Service.Load
func (o *orchestrator) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session id is required")
	}
	if o.repo == nil {
		return nil, errors.FailedPrecondition("no session repository configured")
	}

	got, err := o.repo.Get(ctx, &sessionrepo.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	state := &sessionState{
		character:  got.Snapshot.Character,
		difficulty: got.Snapshot.Difficulty,
		encounters: got.Snapshot.Difficulty.EncountersSeen,
	}

	o.mu.Lock()
	o.sessions[input.SessionID] = state
	o.mu.Unlock()

	return &LoadOutput{
		SessionID:  input.SessionID,
		Character:  state.character,
		Difficulty: state.difficulty,
	}, nil
}

func (o *orchestrator) session(sessionID string) (*sessionState, error) {
	o.mu.RLock()
	state, exists := o.sessions[sessionID]
	o.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("session %q not found", sessionID)
	}
	return state, nil
}
