package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// IncrementVisitors atomically bumps the visitor counter
func (s *Store) IncrementVisitors(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, KeyVisitors).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment visitors: %w", err)
	}
	return n, nil
}

// Visitors returns the current visitor count
func (s *Store) Visitors(ctx context.Context) (int64, error) {
	n, err := s.client.Get(ctx, KeyVisitors).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get visitors: %w", err)
	}
	return n, nil
}
