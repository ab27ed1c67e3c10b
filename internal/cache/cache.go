// Package cache memoises LLM responses in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-shortlist/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the byte-level backend of a Cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore is a Store backed by a go-redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Get returns the stored value or ErrMiss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set stores value with the given ttl. A zero ttl never expires.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Cache is a named JSON cache with a fixed TTL. A nil *Cache computes every call.
type Cache struct {
	store   Store
	name    string
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
	group   singleflight.Group
}

// New creates a cache whose keys are prefixed with name.
func New(store Store, name string, ttl time.Duration, log *zap.Logger, m *metrics.Metrics) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		store:   store,
		name:    name,
		ttl:     ttl,
		log:     log.With(zap.String("cache", name)),
		metrics: m,
	}
}

// Key hashes the given parts into a stable key suffix.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) fullKey(key string) string {
	return c.name + ":" + key
}

func (c *Cache) get(ctx context.Context, key string, dst any) bool {
	data, err := c.store.Get(ctx, c.fullKey(key))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("cache get failed", zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("cache unmarshal failed", zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.fullKey(key), data, c.ttl); err != nil {
		c.log.Warn("cache set failed", zap.Error(err))
	}
}

// GetOrCompute returns the cached value for key, or calls compute and stores its
// result. Concurrent misses for the same key share one compute call. Cache
// failures are logged and fall through to compute.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return compute(ctx)
	}

	var cached T
	if c.get(ctx, key, &cached) {
		c.metrics.CacheHit(c.name)
		return cached, nil
	}
	c.metrics.CacheMiss(c.name)

	val, err, _ := c.group.Do(key, func() (any, error) {
		var again T
		if c.get(ctx, key, &again) {
			return again, nil
		}
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return val.(T), nil
}
