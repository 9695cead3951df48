package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// IncrementViews bumps the view counter for a flight.
func (s *Store) IncrementViews(ctx context.Context, flightID string) error {
	if err := s.client.Incr(ctx, ViewsKey(flightID)).Err(); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// GetViews returns the view counter for a flight (0 when never viewed).
func (s *Store) GetViews(ctx context.Context, flightID string) (int64, error) {
	n, err := s.client.Get(ctx, ViewsKey(flightID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get views: %w", err)
	}
	return n, nil
}
