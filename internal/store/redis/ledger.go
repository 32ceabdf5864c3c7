package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

// LoadLedger returns a user's saved favorites. A missing key is an
// empty ledger, not an error.
func (s *Store) LoadLedger(ctx context.Context, owner string) (domain.LedgerState, error) {
	data, err := s.client.Get(ctx, FavoritesKey(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.LedgerState{}, nil
		}
		return domain.LedgerState{}, fmt.Errorf("failed to get favorites: %w", err)
	}

	var state domain.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.LedgerState{}, fmt.Errorf("failed to unmarshal favorites: %w", err)
	}
	return state, nil
}

// SaveLedger overwrites a user's saved favorites with state.
func (s *Store) SaveLedger(ctx context.Context, owner string, state domain.LedgerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	if err := s.client.Set(ctx, FavoritesKey(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
