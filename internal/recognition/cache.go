package recognition

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheVersionKey = "recognition:encodings:version"

// LoadFunc fetches the current roster of stored encodings.
type LoadFunc func(ctx context.Context) ([]Encoding, error)

// EncodingCache keeps the face-encoding roster in memory so recognition
// never touches the database per frame. A version counter in Redis lets
// multiple API instances notice each other's registration changes;
// singleflight collapses concurrent refreshes into one roster load.
type EncodingCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Encoding
	version int64

	load   LoadFunc
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewEncodingCache(load LoadFunc, rdb *redis.Client, logger ...*zap.Logger) *EncodingCache {
	l := zap.L().Named("recognition.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recognition.cache")
	}
	return &EncodingCache{
		entries: make(map[uuid.UUID]Encoding),
		load:    load,
		rdb:     rdb,
		logger:  l,
	}
}

// Warm populates the cache at startup.
func (c *EncodingCache) Warm(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

// Snapshot returns the current roster, refreshing first if another
// instance has bumped the shared version.
func (c *EncodingCache) Snapshot(ctx context.Context) ([]Encoding, error) {
	if c.stale(ctx) {
		if _, err := c.refresh(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Encoding, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out, nil
}

// Store upserts one entry after a registration or re-encoding and bumps
// the shared version so peers reload.
func (c *EncodingCache) Store(ctx context.Context, enc Encoding) {
	c.mu.Lock()
	c.entries[enc.EmployeeID] = enc
	c.mu.Unlock()
	c.bump(ctx)
}

// Delete evicts one entry after an employee is removed.
func (c *EncodingCache) Delete(ctx context.Context, employeeID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, employeeID)
	c.mu.Unlock()
	c.bump(ctx)
}

func (c *EncodingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *EncodingCache) stale(ctx context.Context) bool {
	if c.rdb == nil {
		return false
	}
	shared, err := c.rdb.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		// Redis down degrades to the local copy.
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return shared != c.version
}

func (c *EncodingCache) refresh(ctx context.Context) (int64, error) {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		var shared int64
		if c.rdb != nil {
			if n, err := c.rdb.Get(ctx, cacheVersionKey).Int64(); err == nil {
				shared = n
			}
		}

		rows, err := c.load(ctx)
		if err != nil {
			return int64(0), err
		}

		entries := make(map[uuid.UUID]Encoding, len(rows))
		for _, row := range rows {
			entries[row.EmployeeID] = row
		}

		c.mu.Lock()
		c.entries = entries
		c.version = shared
		c.mu.Unlock()

		c.logger.Debug("encoding cache refreshed", zap.Int("entries", len(rows)))
		return shared, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (c *EncodingCache) bump(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	n, err := c.rdb.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		c.logger.Warn("encoding cache version bump failed", zap.Error(err))
		return
	}
	c.rdb.Expire(ctx, cacheVersionKey, 24*time.Hour)
	c.mu.Lock()
	c.version = n
	c.mu.Unlock()
}
