package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/index"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/sources/workbook"
)

// RedisSyncer restores the last saved sheets into the memory index on
// startup, before the workbook is reachable.
type RedisSyncer struct {
	store  SnapshotStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync normalizes the stored grids and replaces the index with them
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing sheets from redis to memory")

	sheets, err := rs.store.GetAllSheets(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sheets from redis: %w", err)
	}

	if len(sheets) == 0 {
		rs.logger.Info("no sheets found in redis")
		return nil
	}

	snap := index.Snapshot{
		Catalogs: make(map[domain.Category]*domain.Catalog, len(sheets)),
		Source:   SourceRedis,
	}
	for _, s := range sheets {
		if !s.Category.IsSheet() {
			continue
		}
		snap.Catalogs[s.Category] = domain.NewCatalog(s.Category, workbook.Normalize(s.Category, s.Rows))
		snap.Version = s.Version
	}

	rs.index.Replace(snap)

	rs.logger.Info("synced sheets from redis",
		logger.Int("categories", len(snap.Catalogs)),
		logger.Int("records", rs.index.Count()))

	return nil
}
