package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/regsight/regsight-core/pkg/logger"
)

// noopValkeyCache provides an in-memory, process-local fallback that satisfies
// Valkey when the external cache is unavailable. It is best-effort and
// intended for development and degraded operation; data is not shared across
// replicas and is lost on restart. TTLs are honored so short-lived entries
// (like cached scorecard aggregates) expire the same way they would on the
// real cache.
type noopValkeyCache struct {
	m      map[string]noopEntry
	mu     sync.Mutex
	logger logger.Logger
}

type noopEntry struct {
	data []byte
	// expiresAt is zero for entries stored without a TTL.
	expiresAt time.Time
}

func NewNoopValkeyCache(log logger.Logger) Valkey {
	log.Warn("Valkey cache unavailable; using in-memory fallback (noop)")
	return &noopValkeyCache{m: make(map[string]noopEntry), logger: log}
}

func (n *noopValkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	e, ok := n.m[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(n.m, key)
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return e.data, nil
}

func (n *noopValkeyCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		jb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b = jb
	}
	e := noopEntry{data: b}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	n.mu.Lock()
	n.m[key] = e
	n.mu.Unlock()
	return nil
}

func (n *noopValkeyCache) Delete(ctx context.Context, key string) error {
	n.mu.Lock()
	delete(n.m, key)
	n.mu.Unlock()
	return nil
}

func (n *noopValkeyCache) CacheQueryResult(ctx context.Context, queryHash string, result interface{}, ttl time.Duration) error {
	return n.Set(ctx, "query:"+queryHash, result, ttl)
}

func (n *noopValkeyCache) GetCachedQueryResult(ctx context.Context, queryHash string) ([]byte, error) {
	return n.Get(ctx, "query:"+queryHash)
}
