package reward

import "github.com/wrenfall/rpg-core/internal/entities"

// ConsiderInput defines one reward consideration for a qualifying
// action
type ConsiderInput struct {
	ActionID string
	State    *entities.DifficultyState
}

// ConsiderOutput carries the resulting event. Event.Granted reports
// whether anything was actually awarded.
type ConsiderOutput struct {
	Event *entities.RewardEvent
}

// Pacing is the slice of the difficulty controller the scheduler
// consumes: rare pity, grant bias, and streak bookkeeping.
type Pacing interface {
	RareRewardProbability(state *entities.DifficultyState) float64
	RewardBias(state *entities.DifficultyState) float64
	NoteReward(state *entities.DifficultyState, class entities.ValueClass, granted bool)
}
