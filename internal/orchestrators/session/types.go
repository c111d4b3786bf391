package session

import (
	"github.com/wrenfall/rpg-core/internal/entities"
)

// StartInput defines the request for starting a new session
type StartInput struct {
	Name    string
	ClassID string
}

// StartOutput returns the new session and its character
type StartOutput struct {
	SessionID  string
	Character  *entities.Character
	Difficulty *entities.DifficultyState
}

// RunEncounterInput drives one full encounter for a session
type RunEncounterInput struct {
	SessionID string
}

// RunEncounterOutput reports everything the encounter produced
type RunEncounterOutput struct {
	Encounter  *entities.Encounter
	Telemetry  *entities.EncounterTelemetry
	Reward     *entities.RewardEvent
	Difficulty *entities.DifficultyState
}

// SnapshotInput defines the request for a renderable snapshot
type SnapshotInput struct {
	SessionID string
}

// SnapshotOutput is the presentation-layer contract: current state
// plus the actions available to the player.
type SnapshotOutput struct {
	SessionID        string
	Character        *entities.Character
	Difficulty       *entities.DifficultyState
	EncountersSeen   int
	AvailableActions []entities.ActionType
}

// SaveInput defines the request for persisting a session
type SaveInput struct {
	SessionID string
}

// SaveOutput confirms the persisted snapshot
type SaveOutput struct {
	SessionID string
}

// LoadInput defines the request for restoring a session
type LoadInput struct {
	SessionID string
}

// LoadOutput returns the restored session state
type LoadOutput struct {
	SessionID  string
	Character  *entities.Character
	Difficulty *entities.DifficultyState
}
