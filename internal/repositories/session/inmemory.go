package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Snapshots round-trip through JSON so value semantics match the Redis
// implementation.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string][]byte),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a snapshot
func (r *InMemoryRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}
	if input.Snapshot.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	snapshot := *input.Snapshot
	snapshot.SavedAt = r.clock.Now()

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[snapshot.SessionID] = data

	return &SaveOutput{Snapshot: &snapshot}, nil
}

// Get retrieves a snapshot by session ID
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.SessionID]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFound("session snapshot not found")
	}

	var snapshot SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.SessionID]; !exists {
		return nil, errors.NotFound("session snapshot not found")
	}
	delete(r.store, input.SessionID)

	return &DeleteOutput{}, nil
}

// ListIDs returns the stored session ids
func (r *InMemoryRepository) ListIDs(ctx context.Context, input *ListIDsInput) (*ListIDsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	return &ListIDsOutput{SessionIDs: ids}, nil
}
