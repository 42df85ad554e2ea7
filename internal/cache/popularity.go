package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const popularityKey = "destinations:popular"

// Popularity ranks destinations by how many bookings reference them.
type Popularity struct {
	client *redis.Client
}

func NewPopularity(client *redis.Client) *Popularity {
	return &Popularity{client: client}
}

func (p *Popularity) Incr(ctx context.Context, destinationID string, delta float64) error {
	if destinationID == "" {
		return nil
	}
	score, err := p.client.ZIncrBy(ctx, popularityKey, delta, destinationID).Result()
	if err != nil {
		return err
	}
	if score <= 0 {
		return p.client.ZRem(ctx, popularityKey, destinationID).Err()
	}
	return nil
}

// Top returns up to n destination ids, most booked first.
func (p *Popularity) Top(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return p.client.ZRevRange(ctx, popularityKey, 0, int64(n-1)).Result()
}
