package domain

import (
	"sort"
	"sync"
)

// FavoriteKey identifies a favorited record by category and row index.
//
// The row index is only stable while the sheet is unchanged; the ledger
// also keeps the record's fingerprint so the favorites view can find a
// record again after rows move.
type FavoriteKey struct {
	Category Category `json:"category"`
	Row      int      `json:"row"`
}

// Ledger tracks the favorites of one session.
type Ledger struct {
	mu      sync.Mutex
	entries map[Category]map[int]string // row -> fingerprint
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Category]map[int]string)}
}

// Toggle flips the membership of (c, row) and returns the new state.
// Every call flips; callers invoke it once per user action.
func (l *Ledger) Toggle(c Category, row int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := l.entries[c]
	if _, ok := rows[row]; ok {
		delete(rows, row)
		if len(rows) == 0 {
			delete(l.entries, c)
		}
		return false
	}
	if rows == nil {
		rows = make(map[int]string)
		l.entries[c] = rows
	}
	rows[row] = ""
	return true
}

// Stamp records the fingerprint of a favorited record. It is a no-op
// when the key is not favorited.
func (l *Ledger) Stamp(key FavoriteKey, fingerprint string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rows, ok := l.entries[key.Category]; ok {
		if _, fav := rows[key.Row]; fav {
			rows[key.Row] = fingerprint
		}
	}
}

// FingerprintOf returns the stamped fingerprint of a favorite, if any.
func (l *Ledger) FingerprintOf(key FavoriteKey) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entries[key.Category][key.Row]
}

// IsFavorited reports whether (c, row) is in the ledger.
func (l *Ledger) IsFavorited(c Category, row int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.entries[c][row]
	return ok
}

// All returns every favorite, ordered by category then row.
func (l *Ledger) All() []FavoriteKey {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]FavoriteKey, 0)
	for c, rows := range l.entries {
		for row := range rows {
			keys = append(keys, FavoriteKey{Category: c, Row: row})
		}
	}
	sortKeys(keys)
	return keys
}

// Len returns the number of favorites.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, rows := range l.entries {
		n += len(rows)
	}
	return n
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[Category]map[int]string)
}

// LedgerEntry is the persisted form of one favorite.
type LedgerEntry struct {
	Category    Category `json:"category"`
	Row         int      `json:"row"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}

// LedgerState is the whole persisted ledger. It is always written and
// read as a unit.
type LedgerState struct {
	Entries []LedgerEntry `json:"entries"`
}

// Snapshot copies the ledger into its persisted form.
func (l *Ledger) Snapshot() LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() LedgerState {
	state := LedgerState{Entries: make([]LedgerEntry, 0)}
	for c, rows := range l.entries {
		for row, fp := range rows {
			state.Entries = append(state.Entries, LedgerEntry{Category: c, Row: row, Fingerprint: fp})
		}
	}
	state.sort()
	return state
}

// Restore replaces the ledger contents with state.
func (l *Ledger) Restore(state LedgerState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.restoreLocked(state)
}

// CompareAndRestore replaces the ledger with to only while it still
// holds from, and reports whether it did. A toggle that lands between
// reading from and applying to makes the swap fail.
func (l *Ledger) CompareAndRestore(from, to LedgerState) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.snapshotLocked().Equal(from) {
		return false
	}
	l.restoreLocked(to)
	return true
}

func (l *Ledger) restoreLocked(state LedgerState) {
	l.entries = make(map[Category]map[int]string)
	for _, e := range state.Entries {
		if !e.Category.IsSheet() || e.Row < 0 {
			continue
		}
		rows := l.entries[e.Category]
		if rows == nil {
			rows = make(map[int]string)
			l.entries[e.Category] = rows
		}
		rows[e.Row] = e.Fingerprint
	}
}

// Equal reports whether both states hold the same entries, in any order.
func (s LedgerState) Equal(o LedgerState) bool {
	if len(s.Entries) != len(o.Entries) {
		return false
	}
	seen := make(map[LedgerEntry]int, len(s.Entries))
	for _, e := range s.Entries {
		seen[e]++
	}
	for _, e := range o.Entries {
		if seen[e] == 0 {
			return false
		}
		seen[e]--
	}
	return true
}

func (s LedgerState) sort() {
	sort.Slice(s.Entries, func(i, j int) bool {
		a, b := s.Entries[i], s.Entries[j]
		return keyLess(FavoriteKey{a.Category, a.Row}, FavoriteKey{b.Category, b.Row})
	})
}

// Sorted returns a copy of s ordered by category then row.
func (s LedgerState) Sorted() LedgerState {
	out := LedgerState{Entries: append([]LedgerEntry{}, s.Entries...)}
	out.sort()
	return out
}

func sortKeys(keys []FavoriteKey) {
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
}

func keyLess(a, b FavoriteKey) bool {
	oa, ob := a.Category.order(), b.Category.order()
	if oa != ob {
		return oa < ob
	}
	return a.Row < b.Row
}
