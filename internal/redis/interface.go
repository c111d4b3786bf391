package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so the repository layer can be
// exercised against miniredis in tests.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}
