// Package difficulty implements the adaptive difficulty controller:
// per-encounter performance scoring, the periodic adjustment cadence
// with bounded micro-nudges in between, flow classification with a
// disrupted-state interrupt, and rare-reward pacing.
package difficulty

//go:generate mockgen -destination=mock/mock_service.go -package=difficultymock github.com/wrenfall/rpg-core/internal/orchestrators/difficulty Service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/dice"
	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/events"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
)

const (
	// DefaultBaseDifficulty is the neutral difficulty value; the
	// multiplier applied to enemies is difficulty/base.
	DefaultBaseDifficulty = 100.0

	// TargetPerformance is the score the controller steers toward.
	TargetPerformance = 1.0

	// The heavy recompute runs every heavyCadence encounters, with
	// bounded micro-nudges every microCadence encounters in between.
	heavyCadence = 10
	microCadence = 2
	microStep    = 0.03

	// clampPct bounds any adjustment to ±15% of base difficulty.
	clampPct = 0.15

	// minSamples excludes the first encounters from the cadence
	// recompute; with fewer the session is flagged insufficient-data.
	minSamples = 2

	// disruptedWindow forces an immediate rebalance when flow stays
	// disrupted this long.
	disruptedWindow = 30 * time.Second

	// gaussianSigma spreads spawn multipliers around the skill estimate.
	gaussianSigma = 0.15

	// Rare-reward pity curve: P = rareCap * (1 - e^(-n/rareRamp)).
	rareCap  = 0.05
	rareRamp = 20.0

	// Skill estimate EWMA smoothing.
	ewmaAlpha = 0.3

	// Rolling windows.
	scoreWindow = 10
	winWindow   = 4

	// Performance score weights: success, pace, resource economy.
	weightSuccess  = 0.5
	weightPace     = 0.3
	weightResource = 0.2

	// Per-class baseline: expected turns and resource uses for an
	// on-target encounter, scaled by class HP against the catalog
	// median.
	baselineTurns     = 6.0
	baselineResources = 2.0

	// Flow bands on the challenge/skill ratio.
	flowLow          = 0.9
	flowHigh         = 1.2
	flowDisruptedLow = 0.65
	flowDisruptedHi  = 1.45
)

// Service defines the interface for difficulty control operations
type Service interface {
	// Record consumes one telemetry record, exactly once, and applies
	// whatever adjustment the cadence calls for.
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)

	// SpawnMultiplier samples the scale factor for newly spawned
	// enemies from a Gaussian centered on the skill estimate.
	SpawnMultiplier(ctx context.Context, input *SpawnMultiplierInput) (*SpawnMultiplierOutput, error)

	// RareRewardProbability evaluates the pity curve for the current
	// encounters-since-rare counter.
	RareRewardProbability(state *entities.DifficultyState) float64

	// RewardBias is the multiplicative bias the scheduler applies to
	// its base grant probability.
	RewardBias(state *entities.DifficultyState) float64

	// NoteReward records a grant outcome: updates the value-class
	// streak and resets the pity counter on rare grants.
	NoteReward(state *entities.DifficultyState, class entities.ValueClass, granted bool)
}

// Config holds the dependencies for the difficulty controller
type Config struct {
	Clock    clock.Clock
	Roller   dice.Roller
	Classes  *catalog.ClassCatalog
	Observer Observer
	EventBus *events.Bus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Classes == nil {
		vb.RequiredField("Classes")
	}

	return vb.Build()
}

type orchestrator struct {
	clock    clock.Clock
	roller   dice.Roller
	medianHP int
	observer Observer
	bus      *events.Bus
}

// NewOrchestrator creates a new difficulty controller with the
// provided dependencies. Observer and event bus are optional sinks.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		clock:    cfg.Clock,
		roller:   cfg.Roller,
		medianHP: cfg.Classes.MedianHP(),
		observer: cfg.Observer,
		bus:      cfg.EventBus,
	}, nil
}

var _ Service = (*orchestrator)(nil)

// NewState builds the initial session difficulty state
func NewState() *entities.DifficultyState {
	return &entities.DifficultyState{
		BaseDifficulty:   DefaultBaseDifficulty,
		Difficulty:       DefaultBaseDifficulty,
		SkillEstimate:    1.0,
		Flow:             entities.FlowOptimal,
		InsufficientData: true,
	}
}

// Record implements Service.Record
func (o *orchestrator) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil || input.State == nil || input.Telemetry == nil {
		return nil, errors.InvalidArgument("state and telemetry are required")
	}
	state := input.State

	score := o.performanceScore(input.Telemetry, input.ClassHP)

	state.EncountersSeen++
	state.EncountersSinceRare++
	state.RecentScores = appendWindowFloat(state.RecentScores, score, scoreWindow)
	state.RecentWins = appendWindowBool(state.RecentWins, input.Telemetry.Outcome == entities.OutcomeVictory, winWindow)
	state.PerformanceScore = meanFloat(state.RecentScores)
	state.SkillEstimate = ewmaAlpha*score + (1-ewmaAlpha)*state.SkillEstimate
	state.InsufficientData = state.EncountersSeen < minSamples

	forced := o.classifyFlow(state)

	out := &RecordOutput{State: state, Score: score, ForcedRebalance: forced}
	switch {
	case forced:
		o.recompute(state)
	case state.EncountersSeen%heavyCadence == 0:
		o.recompute(state)
		out.Recomputed = true
	case state.EncountersSeen%microCadence == 0:
		o.microAdjust(state)
		out.MicroAdjusted = true
	}

	if forced || out.Recomputed || out.MicroAdjusted {
		o.observe(state)
	}

	slog.Debug("telemetry recorded",
		"encounter_id", input.Telemetry.EncounterID,
		"score", score,
		"performance", state.PerformanceScore,
		"skill", state.SkillEstimate,
		"multiplier", state.Multiplier(),
		"flow", state.Flow,
	)
	return out, nil
}

// performanceScore weighs success, pace, and resource economy against
// the per-class baseline. A victory at baseline pace and resource use
// scores exactly the target 1.0.
func (o *orchestrator) performanceScore(t *entities.EncounterTelemetry, classHP int) float64 {
	success := 0.0
	switch t.Outcome {
	case entities.OutcomeVictory:
		success = 1.0
	case entities.OutcomeFled:
		success = 0.5
	}

	hpScale := 1.0
	if classHP > 0 && o.medianHP > 0 {
		hpScale = float64(classHP) / float64(o.medianHP)
	}

	expectedTurns := baselineTurns * hpScale
	turns := float64(t.Turns)
	if turns < 1 {
		turns = 1
	}
	pace := clamp(expectedTurns/turns, 0, 2)

	expectedResources := baselineResources * hpScale
	resource := clamp((expectedResources+1)/float64(t.ResourcesUsed+1), 0, 2)

	return weightSuccess*success + weightPace*pace + weightResource*resource
}

// classifyFlow updates the flow state from the challenge/skill ratio
// and reports whether the disrupted window expired, which forces an
// immediate rebalance ahead of the cadence.
func (o *orchestrator) classifyFlow(state *entities.DifficultyState) (forced bool) {
	ratio := math.Inf(1)
	if state.SkillEstimate > 0 {
		ratio = state.Multiplier() / state.SkillEstimate
	}

	switch {
	case ratio < flowDisruptedLow || ratio > flowDisruptedHi:
		state.Flow = entities.FlowDisrupted
	case ratio < flowLow:
		state.Flow = entities.FlowUnderChallenged
	case ratio > flowHigh:
		state.Flow = entities.FlowOverChallenged
	default:
		state.Flow = entities.FlowOptimal
	}

	now := o.clock.Now()
	if state.Flow != entities.FlowDisrupted {
		state.DisruptedSince = time.Time{}
		return false
	}
	if state.DisruptedSince.IsZero() {
		state.DisruptedSince = now
		return false
	}
	if now.Sub(state.DisruptedSince) > disruptedWindow {
		state.DisruptedSince = time.Time{}
		slog.Info("flow disrupted past window, forcing rebalance",
			"skill", state.SkillEstimate,
			"multiplier", state.Multiplier(),
		)
		return true
	}
	return false
}

// recompute applies the primary adjustment formula. Degenerate
// telemetry (no samples, zero measured performance) falls back to base
// difficulty and never divides by zero; the error is absorbed here.
func (o *orchestrator) recompute(state *entities.DifficultyState) {
	measured := state.PerformanceScore
	if state.InsufficientData || measured <= 0 {
		state.Difficulty = state.BaseDifficulty
		state.InsufficientData = true
		state.LastAdjustedAt = o.clock.Now()
		return
	}

	next := state.BaseDifficulty * (0.7 + 0.3*(TargetPerformance/measured))
	state.Difficulty = clampToBand(next, state.BaseDifficulty)
	state.LastAdjustedAt = o.clock.Now()
}

// microAdjust nudges the difficulty by a small bounded step based on
// the short-window success pattern, smoothing out the gap between
// cadence points.
func (o *orchestrator) microAdjust(state *entities.DifficultyState) {
	if len(state.RecentWins) < microCadence {
		return
	}

	recent := state.RecentWins[len(state.RecentWins)-microCadence:]
	wins := 0
	for _, w := range recent {
		if w {
			wins++
		}
	}

	step := 0.0
	switch wins {
	case microCadence:
		step = microStep * state.BaseDifficulty
	case 0:
		step = -microStep * state.BaseDifficulty
	}
	if step == 0 {
		return
	}

	state.Difficulty = clampToBand(state.Difficulty+step, state.BaseDifficulty)
	state.LastAdjustedAt = o.clock.Now()
}

// SpawnMultiplier implements Service.SpawnMultiplier
func (o *orchestrator) SpawnMultiplier(ctx context.Context, input *SpawnMultiplierInput) (*SpawnMultiplierOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	state := input.State

	sample := state.SkillEstimate + gaussianSigma*o.roller.NormFloat()

	// The sample stays inside the controller's own adjustment band so
	// a lucky draw cannot spike past the smoothing guarantees.
	target := state.Multiplier()
	sample = clamp(sample, target*(1-clampPct), target*(1+clampPct))

	return &SpawnMultiplierOutput{Multiplier: sample}, nil
}

// RareRewardProbability implements Service.RareRewardProbability
func (o *orchestrator) RareRewardProbability(state *entities.DifficultyState) float64 {
	if state == nil {
		return 0
	}
	n := float64(state.EncountersSinceRare)
	return rareCap * (1 - math.Exp(-n/rareRamp))
}

// RewardBias implements Service.RewardBias. Struggling players get a
// denser drip, coasting players a sparser one.
func (o *orchestrator) RewardBias(state *entities.DifficultyState) float64 {
	if state == nil {
		return 1
	}
	switch state.Flow {
	case entities.FlowOverChallenged:
		return 1.25
	case entities.FlowUnderChallenged:
		return 0.85
	default:
		return 1
	}
}

// NoteReward implements Service.NoteReward
func (o *orchestrator) NoteReward(state *entities.DifficultyState, class entities.ValueClass, granted bool) {
	if state == nil || !granted {
		return
	}
	if class == state.LastRewardClass {
		state.RewardStreak++
	} else {
		state.LastRewardClass = class
		state.RewardStreak = 1
	}
	if class == entities.RewardRare {
		state.EncountersSinceRare = 0
	}
}

func (o *orchestrator) observe(state *entities.DifficultyState) {
	if o.observer != nil {
		o.observer.ObserveAdjustment(state.PerformanceScore, state.Multiplier(), state.Flow)
	}
	if o.bus != nil {
		if err := o.bus.Emit(&events.DifficultyAdjusted{
			Score:      state.PerformanceScore,
			Multiplier: state.Multiplier(),
			Flow:       state.Flow,
		}); err != nil {
			slog.Error("failed to emit difficulty adjustment", "error", err)
		}
	}
}

// SlogObserver logs adjustments through slog; the default observer
// when telemetry export is disabled.
type SlogObserver struct{}

// ObserveAdjustment implements Observer
func (SlogObserver) ObserveAdjustment(score, multiplier float64, flow entities.FlowState) {
	slog.Info("difficulty adjusted",
		"score", score,
		"multiplier", multiplier,
		"flow", flow,
	)
}

func clampToBand(value, base float64) float64 {
	return clamp(value, base*(1-clampPct), base*(1+clampPct))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func appendWindowFloat(window []float64, v float64, capSize int) []float64 {
	window = append(window, v)
	if len(window) > capSize {
		window = window[len(window)-capSize:]
	}
	return window
}

func appendWindowBool(window []bool, v bool, capSize int) []bool {
	window = append(window, v)
	if len(window) > capSize {
		window = window[len(window)-capSize:]
	}
	return window
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
