package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/board/domain"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "listings:snapshot"

// ListingCache keeps the whole listing collection under one key. Any write
// to the collection invalidates it.
type ListingCache struct {
	client redis.Cmdable
}

func NewListingCache(client redis.Cmdable) *ListingCache {
	return &ListingCache{client: client}
}

func (c *ListingCache) Get(ctx context.Context) ([]*domain.Listing, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: listing snapshot not cached", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listing snapshot: %w", err)
	}
	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listing snapshot: %w", err)
	}
	return listings, nil
}

func (c *ListingCache) Set(ctx context.Context, listings []*domain.Listing, ttl time.Duration) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to encode listing snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey, data, ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, snapshotKey).Err()
}
