// Package cache keeps read-mostly listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	doctorsKey = "doctors:available"
	DoctorTTL  = 5 * time.Minute
)

// DoctorCache stores the public doctor list as JSON. A nil *DoctorCache is a
// valid, always-missing cache.
type DoctorCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDoctorCache(rdb *redis.Client) *DoctorCache {
	return &DoctorCache{rdb: rdb, ttl: DoctorTTL}
}

// Get decodes the cached list into dst. ok is false on a miss.
func (c *DoctorCache) Get(ctx context.Context, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}

	b, err := c.rdb.Get(ctx, doctorsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DoctorCache) Set(ctx context.Context, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, doctorsKey, b, c.ttl).Err()
}

// Invalidate is called after any doctor write.
func (c *DoctorCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, doctorsKey).Err()
}
