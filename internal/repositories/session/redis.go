package session

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	redisclient "github.com/wrenfall/rpg-core/internal/redis"
)

const (
	// Key pattern: session:{session_id}; the index set tracks ids for
	// listing.
	sessionKeyPrefix = "session:"
	sessionIndexKey  = "session:index"

	errSnapshotNil    = "snapshot cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for session snapshots
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save stores the snapshot and indexes the session id in one
// transaction
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
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

	key := r.buildKey(snapshot.SessionID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, sessionIndexKey, snapshot.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store snapshot in Redis")
	}

	return &SaveOutput{Snapshot: &snapshot}, nil
}

// Get retrieves a snapshot by session ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("session snapshot not found")
		}
		return nil, errors.Wrapf(err, "failed to get snapshot from Redis")
	}

	var snapshot SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}

// Delete removes a snapshot and its index entry
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.buildKey(input.SessionID))
	pipe.SRem(ctx, sessionIndexKey, input.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot from Redis")
	}

	return &DeleteOutput{}, nil
}

// ListIDs returns the indexed session ids
func (r *redisRepository) ListIDs(ctx context.Context, input *ListIDsInput) (*ListIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list session ids")
	}
	return &ListIDsOutput{SessionIDs: ids}, nil
}

func (r *redisRepository) buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
}
