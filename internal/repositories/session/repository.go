// Package session provides persistence for session snapshots: the
// character and the difficulty state, serialized together so a session
// can resume between encounters.
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/wrenfall/rpg-core/internal/repositories/session Repository

import (
	"context"
	"time"

	"github.com/wrenfall/rpg-core/internal/entities"
)

// SessionSnapshot is the unit of persistence. Round-tripping through a
// repository must preserve every field value exactly.
type SessionSnapshot struct {
	SessionID  string                    `json:"session_id"`
	Character  *entities.Character       `json:"character"`
	Difficulty *entities.DifficultyState `json:"difficulty"`
	SavedAt    time.Time                 `json:"saved_at"`
}

// Repository defines the storage interface for session snapshots
type Repository interface {
	// Save stores a snapshot, replacing any previous one for the session
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by session ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListIDs returns the stored session ids
	ListIDs(ctx context.Context, input *ListIDsInput) (*ListIDsOutput, error)
}

// SaveInput defines the request for saving a snapshot
type SaveInput struct {
	Snapshot *SessionSnapshot
}

// SaveOutput defines the response for saving a snapshot
type SaveOutput struct {
	Snapshot *SessionSnapshot
}

// GetInput defines the request for retrieving a snapshot
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for retrieving a snapshot
type GetOutput struct {
	Snapshot *SessionSnapshot
}

// DeleteInput defines the request for deleting a snapshot
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for deleting a snapshot
type DeleteOutput struct{}

// ListIDsInput defines the request for listing stored sessions
type ListIDsInput struct{}

// ListIDsOutput defines the response for listing stored sessions
type ListIDsOutput struct {
	SessionIDs []string
}
