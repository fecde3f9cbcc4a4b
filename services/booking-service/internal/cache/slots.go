// Package cache holds the Redis-backed slot cache. Availability answers are
// cached per (provider, date, duration) with a short TTL; bookings and
// cancellations invalidate every cached duration for the affected day via a
// per-day tracking set.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 60 * time.Second

type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotCache returns nil when redisURL is empty; callers treat a nil cache
// as a pass-through.
func NewSlotCache(redisURL string, ttl time.Duration) (*SlotCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SlotCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *SlotCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func slotKey(providerID, date string, durationMinutes int) string {
	return fmt.Sprintf("slots:%s:%s:%d", providerID, date, durationMinutes)
}

func daySetKey(providerID, date string) string {
	return fmt.Sprintf("slots-keys:%s:%s", providerID, date)
}

// Get returns the cached slot list and whether it was present. Cache errors
// are reported as misses so Redis trouble never blocks availability.
func (c *SlotCache) Get(ctx context.Context, providerID, date string, durationMinutes int) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, slotKey(providerID, date, durationMinutes)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, providerID, date string, durationMinutes int, slots []string) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	key := slotKey(providerID, date, durationMinutes)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, daySetKey(providerID, date), key)
	pipe.Expire(ctx, daySetKey(providerID, date), c.ttl+time.Minute)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops every cached duration variant for the provider's day.
func (c *SlotCache) Invalidate(ctx context.Context, providerID, date string) error {
	if c == nil {
		return nil
	}
	setKey := daySetKey(providerID, date)
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	keys = append(keys, setKey)
	return c.client.Del(ctx, keys...).Err()
}

func (c *SlotCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
