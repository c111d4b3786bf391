package entities

import "time"

// FlowState classifies the current challenge/skill ratio
type FlowState string

// Flow classifications
const (
	FlowOptimal         FlowState = "optimal"
	FlowUnderChallenged FlowState = "under_challenged"
	FlowOverChallenged  FlowState = "over_challenged"
	FlowDisrupted       FlowState = "disrupted"
)

// DifficultyState is the session-scoped adaptive state. One instance
// exists per active session; it is mutated only by the difficulty
// controller and passed explicitly through the call chain.
type DifficultyState struct {
	BaseDifficulty   float64
	Difficulty       float64
	PerformanceScore float64
	SkillEstimate    float64
	Flow             FlowState
	InsufficientData bool

	EncountersSeen      int
	EncountersSinceRare int
	LastAdjustedAt      time.Time
	DisruptedSince      time.Time

	// RecentScores is the rolling window feeding the cadence recompute.
	RecentScores []float64
	// RecentWins is the short window feeding micro-adjustments.
	RecentWins []bool

	// Reward pacing state read by the scheduler via the controller.
	LastRewardClass ValueClass
	RewardStreak    int
}

// Multiplier is the scaling factor applied to newly spawned enemies
func (s *DifficultyState) Multiplier() float64 {
	if s.BaseDifficulty == 0 {
		return 1
	}
	return s.Difficulty / s.BaseDifficulty
}
