package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
)

const destinationsKey = "destinations:all"

// DestinationCache keeps the unfiltered destination catalogue as one JSON
// document.
type DestinationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDestinationCache(client *redis.Client, ttl time.Duration) *DestinationCache {
	return &DestinationCache{client: client, ttl: ttl}
}

func (c *DestinationCache) Get(ctx context.Context) ([]models.Destination, bool, error) {
	raw, err := c.client.Get(ctx, destinationsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var destinations []models.Destination
	if err := json.Unmarshal(raw, &destinations); err != nil {
		return nil, false, err
	}
	return destinations, true, nil
}

func (c *DestinationCache) Set(ctx context.Context, destinations []models.Destination) error {
	if c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(destinations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, destinationsKey, raw, c.ttl).Err()
}

func (c *DestinationCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, destinationsKey).Err()
}
