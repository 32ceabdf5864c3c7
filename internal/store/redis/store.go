package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

const (
	// DefaultSheetTTL is how long a sheet snapshot survives without a
	// successful reload (7 days)
	DefaultSheetTTL = 7 * 24 * time.Hour
)

// SheetSnapshot is the raw grid of one category as last loaded from the
// workbook. Grids are stored before normalization so a restore goes
// through the same normalizer as a fresh load.
type SheetSnapshot struct {
	Category domain.Category `json:"category"`
	Version  string          `json:"version"`
	Rows     [][]string      `json:"rows"`
	SavedAt  time.Time       `json:"saved_at"`
}

// Store handles Redis operations for snapshots, ledgers and counters
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveSheets stores sheet snapshots in one pipeline (bulk operation)
func (s *Store) SaveSheets(ctx context.Context, sheets []SheetSnapshot) error {
	pipe := s.client.Pipeline()

	for _, sheet := range sheets {
		data, err := json.Marshal(sheet)
		if err != nil {
			return fmt.Errorf("failed to marshal sheet %s: %w", sheet.Category, err)
		}

		pipe.Set(ctx, SheetKey(sheet.Category), data, DefaultSheetTTL)
		pipe.SAdd(ctx, AllSheetsKey(), string(sheet.Category))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save sheets: %w", err)
	}

	return nil
}

// GetSheet retrieves one category's snapshot
func (s *Store) GetSheet(ctx context.Context, c domain.Category) (*SheetSnapshot, error) {
	data, err := s.client.Get(ctx, SheetKey(c)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("sheet not found: %s", c)
		}
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	var sheet SheetSnapshot
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}

	return &sheet, nil
}

// GetAllSheets retrieves every stored snapshot
func (s *Store) GetAllSheets(ctx context.Context) ([]*SheetSnapshot, error) {
	members, err := s.client.SMembers(ctx, AllSheetsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet categories: %w", err)
	}

	sheets := make([]*SheetSnapshot, 0, len(members))
	for _, m := range members {
		c, err := domain.ParseCategory(m)
		if err != nil {
			continue
		}
		sheet, err := s.GetSheet(ctx, c)
		if err != nil {
			// Skip expired or unreadable snapshots
			continue
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// DeleteSheet removes a category's snapshot
func (s *Store) DeleteSheet(ctx context.Context, c domain.Category) error {
	if err := s.client.Del(ctx, SheetKey(c)).Err(); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}

	if err := s.client.SRem(ctx, AllSheetsKey(), string(c)).Err(); err != nil {
		return fmt.Errorf("failed to remove sheet from set: %w", err)
	}

	return nil
}
