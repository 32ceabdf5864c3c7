// Package file persists favorites and the visitor counter as flat JSON
// files, each rewritten wholesale on every change.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

// LedgerStore keeps every user's ledger in one JSON file.
//
// There is no locking across processes: two processes sharing the file
// overwrite each other (last write wins).
type LedgerStore struct {
	path string
	mu   sync.Mutex
}

// NewLedgerStore creates a store backed by path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// LoadLedger returns a user's saved favorites.
func (s *LedgerStore) LoadLedger(_ context.Context, owner string) (domain.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return domain.LedgerState{}, err
	}
	return all[owner], nil
}

// SaveLedger replaces a user's saved favorites and rewrites the file.
func (s *LedgerStore) SaveLedger(_ context.Context, owner string, state domain.LedgerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	all[owner] = state

	return writeJSON(s.path, all)
}

func (s *LedgerStore) readAll() (map[string]domain.LedgerState, error) {
	all := make(map[string]domain.LedgerState)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return all, nil
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse favorites file: %w", err)
	}
	return all, nil
}

// writeJSON overwrites path through a temp file so readers never see a
// half-written file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
