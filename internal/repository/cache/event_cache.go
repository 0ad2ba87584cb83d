// Package cache caches events looked up by slug.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"devevents/internal/domain"
)

const eventKeyPrefix = "event:slug:"

type eventCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewEventCache returns a domain.EventCache storing JSON-encoded events for ttl.
func NewEventCache(client redis.Cmdable, ttl time.Duration) domain.EventCache {
	return &eventCache{client: client, ttl: ttl}
}

func eventKey(slug string) string {
	return eventKeyPrefix + slug
}

func (c *eventCache) Get(ctx context.Context, slug string) (*domain.Event, bool, error) {
	raw, err := c.client.Get(ctx, eventKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var e domain.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &e, true, nil
}

func (c *eventCache) Set(ctx context.Context, e *domain.Event) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, eventKey(e.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *eventCache) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, eventKey(s))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
