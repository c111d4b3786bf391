// Package events provides the synchronous event bus connecting the
// simulation core to its external collaborators. Events flow one way:
// the core emits, sinks consume, nothing is read back.
package events

import "github.com/wrenfall/rpg-core/internal/entities"

// EventType identifies an event on the bus
type EventType string

// Event types emitted by the core
const (
	EventEncounterResolved  EventType = "encounter.resolved"
	EventDifficultyAdjusted EventType = "difficulty.adjusted"
	EventRewardGranted      EventType = "reward.granted"
)

// Event is anything that can be emitted on the bus
type Event interface {
	Type() EventType
}

// EncounterResolved carries the telemetry record for a finished
// encounter
type EncounterResolved struct {
	Telemetry *entities.EncounterTelemetry
}

// Type implements Event
func (e *EncounterResolved) Type() EventType { return EventEncounterResolved }

// DifficultyAdjusted reports a difficulty recompute or micro-adjustment
type DifficultyAdjusted struct {
	Score      float64
	Multiplier float64
	Flow       entities.FlowState
}

// Type implements Event
func (e *DifficultyAdjusted) Type() EventType { return EventDifficultyAdjusted }

// RewardGranted carries a granted reward to the inventory sink
type RewardGranted struct {
	Reward *entities.RewardEvent
}

// Type implements Event
func (e *RewardGranted) Type() EventType { return EventRewardGranted }
