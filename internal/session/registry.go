// Package session tracks browser sessions and the favorites ledger each
// one owns.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// LedgerStore is the subset of the favorites writer the registry needs.
type LedgerStore interface {
	Load(ctx context.Context, owner string) (domain.LedgerState, error)
	Save(ctx context.Context, owner string, state domain.LedgerState) error
}

// Session is one authenticated visitor.
type Session struct {
	ID        string
	Username  string
	Name      string
	Ledger    *domain.Ledger
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns the last time the session was used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Registry holds live sessions in memory.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    LedgerStore
	now      func() time.Time
}

// NewRegistry creates a registry. store may be nil, in which case
// ledgers live only as long as their session.
func NewRegistry(store LedgerStore) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		now:      time.Now,
	}
}

// Create starts a session for username and seeds its ledger from the
// store. A load failure still yields a usable session with an empty
// ledger; the error is returned alongside it.
func (r *Registry) Create(ctx context.Context, username, name string) (*Session, error) {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		Name:      name,
		Ledger:    domain.NewLedger(),
		CreatedAt: now,
		lastSeen:  now,
	}

	var loadErr error
	if r.store != nil && username != "" {
		state, err := r.store.Load(ctx, username)
		if err != nil {
			loadErr = err
		} else {
			s.Ledger.Restore(state)
		}
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s, loadErr
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Delete ends a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Persist writes the session's ledger through the store. Anonymous
// sessions are never persisted.
func (r *Registry) Persist(ctx context.Context, s *Session) error {
	if r.store == nil || s.Username == "" {
		return nil
	}
	return r.store.Save(ctx, s.Username, s.Ledger.Snapshot())
}

// Sweep drops sessions idle for longer than idleTTL and returns how many
// were removed.
func (r *Registry) Sweep(idleTTL time.Duration) int {
	cutoff := r.now().Add(-idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
