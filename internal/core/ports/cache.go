package ports

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache is the subset of the Redis client the auth service uses to
// keep live sessions. *redis.Client satisfies it; tests inject an in-memory
// implementation.
type SessionCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}
