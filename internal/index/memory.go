package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

// Snapshot is the result of one load cycle: a catalog per category plus
// the load failures of the categories that could not be read.
type Snapshot struct {
	Catalogs map[domain.Category]*domain.Catalog
	Failures map[domain.Category]error
	Version  string // workbook content version the snapshot was built from
	Source   string // "workbook" or "redis"
}

// MemoryIndex holds the catalogs currently served. It is replaced
// wholesale on every reload; readers never see a partial update.
type MemoryIndex struct {
	mu         sync.RWMutex
	catalogs   map[domain.Category]*domain.Catalog
	failures   map[domain.Category]error
	version    string
	source     string
	lastReload time.Time
}

// NewMemoryIndex creates a new, empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		catalogs: make(map[domain.Category]*domain.Catalog),
		failures: make(map[domain.Category]error),
	}
}

// Replace swaps in a new snapshot.
func (idx *MemoryIndex) Replace(s Snapshot) {
	catalogs := make(map[domain.Category]*domain.Catalog, len(s.Catalogs))
	for c, cat := range s.Catalogs {
		catalogs[c] = cat
	}
	failures := make(map[domain.Category]error, len(s.Failures))
	for c, err := range s.Failures {
		failures[c] = err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.catalogs = catalogs
	idx.failures = failures
	idx.version = s.Version
	idx.source = s.Source
	idx.lastReload = time.Now()
}

// Catalog returns the catalog of a category. A category that failed to
// load yields an empty catalog and its failure.
func (idx *MemoryIndex) Catalog(c domain.Category) (*domain.Catalog, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if err, failed := idx.failures[c]; failed {
		return domain.NewCatalog(c, nil), err
	}
	if cat, ok := idx.catalogs[c]; ok {
		return cat, nil
	}
	return domain.NewCatalog(c, nil), nil
}

// Counts returns the number of records per loaded category.
func (idx *MemoryIndex) Counts() map[domain.Category]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	counts := make(map[domain.Category]int, len(idx.catalogs))
	for c, cat := range idx.catalogs {
		counts[c] = cat.Len()
	}
	return counts
}

// Failures returns the load failures of the current snapshot.
func (idx *MemoryIndex) Failures() map[domain.Category]error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[domain.Category]error, len(idx.failures))
	for c, err := range idx.failures {
		out[c] = err
	}
	return out
}

// Count returns the total number of records across categories.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, cat := range idx.catalogs {
		n += cat.Len()
	}
	return n
}

// Version returns the workbook version of the current snapshot.
func (idx *MemoryIndex) Version() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.version
}

// Source returns where the current snapshot came from.
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last replace
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
