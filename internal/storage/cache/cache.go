// Package cache holds read-through caches for public, rarely changing
// content. Values are stored JSON-encoded so both backends hand out copies.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	KeyPrograms = "psycenter:programs"
	KeySettings = "psycenter:settings"
)

type Cache interface {
	// Get decodes the cached value into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}

	b, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("cache.Memory.Get: unexpected value type %T", raw)
	}

	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache.Memory.Get: %w", err)
	}

	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Memory.Set: %w", err)
	}

	m.c.SetDefault(key, b)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

type Redis struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedis(rdb redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "cache.Redis.Get"

	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	const op = "cache.Redis.Set"

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Delete: %w", err)
	}

	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error         { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }
