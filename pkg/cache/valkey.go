package cache

import (
	"context"
	"time"
)

// Valkey is the caching surface used across REGSIGHT-CORE. It is backed by a
// Valkey/Redis deployment in production and by an in-memory fallback when no
// cache is reachable.
type Valkey interface {
	// General caching
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Aggregate result caching for faster scorecard fetches
	CacheQueryResult(ctx context.Context, queryHash string, result interface{}, ttl time.Duration) error
	GetCachedQueryResult(ctx context.Context, queryHash string) ([]byte, error)
}
