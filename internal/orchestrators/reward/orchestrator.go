// Package reward implements the variable-ratio reward scheduler. Each
// qualifying action rolls independently against a base probability
// tuned so grants average out between every 5 and 10 actions, biased
// by the difficulty controller's pacing output.
package reward

//go:generate mockgen -destination=mock/mock_service.go -package=rewardmock github.com/wrenfall/rpg-core/internal/orchestrators/reward Service

import (
	"context"
	"log/slog"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/events"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
)

const (
	// Variable-ratio bounds: the average actions-per-grant target must
	// sit inside [VRMin, VRMax].
	VRMin = 5.0
	VRMax = 10.0

	// DefaultVRTarget is used when the config leaves the target unset.
	DefaultVRTarget = 7.0

	// Gold ranges per value class.
	commonGoldBase  = 8
	commonGoldSpan  = 8
	rareGoldBase    = 40
	rareGoldSpan    = 21
	rareItemWorth   = 25
	motivationScale = 0.73
)

// Service defines the interface for reward scheduling operations
type Service interface {
	// Consider rolls one reward decision for a qualifying action and
	// returns the event, granted or not.
	Consider(ctx context.Context, input *ConsiderInput) (*ConsiderOutput, error)
}

// Config holds the dependencies for the reward scheduler
type Config struct {
	Roller      dice.Roller
	IDGenerator idgen.Generator
	Pacing      Pacing
	EventBus    *events.Bus

	// VRTarget is the average number of qualifying actions between
	// grants; zero means DefaultVRTarget.
	VRTarget float64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Pacing == nil {
		vb.RequiredField("Pacing")
	}
	if c.VRTarget != 0 && (c.VRTarget < VRMin || c.VRTarget > VRMax) {
		vb.Fieldf("VRTarget", "must be within [%.0f,%.0f], got %.1f", VRMin, VRMax, c.VRTarget)
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
	idGen  idgen.Generator
	pacing Pacing
	bus    *events.Bus
	baseP  float64
}

// NewOrchestrator creates a new reward scheduler with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	target := cfg.VRTarget
	if target == 0 {
		target = DefaultVRTarget
	}

	return &orchestrator{
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
		pacing: cfg.Pacing,
		bus:    cfg.EventBus,
		baseP:  1 / target,
	}, nil
}

var _ Service = (*orchestrator)(nil)

// Consider implements Service.Consider
func (o *orchestrator) Consider(ctx context.Context, input *ConsiderInput) (*ConsiderOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	if input.ActionID == "" {
		return nil, errors.InvalidArgument("action id is required")
	}
	state := input.State

	// The controller's bias shifts the grant probability
	// multiplicatively but can never push it outside [0,1].
	grantP := clampProb(o.baseP * o.pacing.RewardBias(state))
	rareP := clampProb(o.pacing.RareRewardProbability(state))

	event := &entities.RewardEvent{
		ID:       o.idGen.Generate(),
		ActionID: input.ActionID,
	}

	switch {
	case o.roller.Float() < rareP:
		event.Granted = true
		event.Class = entities.RewardRare
		event.Gold = rareGoldBase + o.roller.Intn(rareGoldSpan)
		rareItems := catalog.RareItems()
		event.ItemID = rareItems[o.roller.Intn(len(rareItems))]
	case o.roller.Float() < grantP:
		event.Granted = true
		event.Class = entities.RewardCommon
		event.Gold = commonGoldBase + o.roller.Intn(commonGoldSpan)
	}

	event.MotivationIndex = o.motivationIndex(state, event, grantP, rareP)
	o.pacing.NoteReward(state, event.Class, event.Granted)

	if event.Granted {
		slog.Debug("reward granted",
			"action_id", event.ActionID,
			"class", event.Class,
			"gold", event.Gold,
			"item_id", event.ItemID,
		)
		if o.bus != nil {
			if err := o.bus.Emit(&events.RewardGranted{Reward: event}); err != nil {
				slog.Error("failed to emit reward event", "error", err)
			}
		}
	}

	return &ConsiderOutput{Event: event}, nil
}

// motivationIndex = prediction_error × novelty_factor × 0.73. It is a
// diagnostic for tuning and never gates the grant decision.
func (o *orchestrator) motivationIndex(state *entities.DifficultyState, event *entities.RewardEvent, grantP, rareP float64) float64 {
	expectedCommon := float64(commonGoldBase) + float64(commonGoldSpan-1)/2
	expectedRare := float64(rareGoldBase) + float64(rareGoldSpan-1)/2 + rareItemWorth
	expected := grantP*expectedCommon + rareP*expectedRare

	received := 0.0
	if event.Granted {
		received = float64(event.Gold)
		if event.ItemID != "" {
			received += rareItemWorth
		}
	}

	// Novelty decays with consecutive grants of the same value class.
	novelty := 1.0
	if event.Granted && event.Class == state.LastRewardClass {
		novelty = 1 / (1 + float64(state.RewardStreak))
	}

	return (received - expected) * novelty * motivationScale
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
