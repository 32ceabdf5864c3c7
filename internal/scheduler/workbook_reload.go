package scheduler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_workbook.go -package=mocks github.com/MrSnakeDoc/georepo/internal/scheduler WorkbookSource,Workbook,SnapshotStore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/index"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/sources/workbook"
	redisstore "github.com/MrSnakeDoc/georepo/internal/store/redis"
	"github.com/MrSnakeDoc/georepo/internal/utils"
)

const (
	// SourceWorkbook marks an index snapshot built from the workbook.
	SourceWorkbook = "workbook"
	// SourceRedis marks an index snapshot restored from Redis.
	SourceRedis = "redis"
)

// Workbook is one opened copy of the resource workbook.
type Workbook interface {
	Version() string
	Sheet(c domain.Category) (workbook.Grid, error)
	Close() error
}

// WorkbookSource opens the resource workbook.
type WorkbookSource interface {
	Open(ctx context.Context) (Workbook, error)
	Source() string
}

// SnapshotStore keeps raw sheet grids between restarts.
type SnapshotStore interface {
	SaveSheets(ctx context.Context, sheets []redisstore.SheetSnapshot) error
	GetAllSheets(ctx context.Context) ([]*redisstore.SheetSnapshot, error)
}

type loaderSource struct {
	loader *workbook.Loader
}

// FromLoader adapts a workbook loader to a WorkbookSource.
func FromLoader(l *workbook.Loader) WorkbookSource {
	return loaderSource{loader: l}
}

func (s loaderSource) Open(ctx context.Context) (Workbook, error) {
	wb, err := s.loader.LoadWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

func (s loaderSource) Source() string { return s.loader.Source() }

// WorkbookReloader periodically reloads the workbook into the index
type WorkbookReloader struct {
	source        WorkbookSource
	store         SnapshotStore
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewWorkbookReloader creates a new workbook reloader. store may be nil.
func NewWorkbookReloader(
	source WorkbookSource,
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *WorkbookReloader {
	return &WorkbookReloader{
		source:        source,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the workbook once, then keeps reloading in the background.
// A failed first load is logged, not returned: the index keeps whatever
// the Redis sync restored and every category reports its failure.
func (wr *WorkbookReloader) Start(ctx context.Context) error {
	if err := wr.Reload(ctx, false); err != nil {
		wr.logger.Warn("initial workbook load failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(wr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := wr.Reload(ctx, false); err != nil {
					wr.logger.Error("failed to reload workbook",
						logger.Error(err))
				}
			case <-wr.manualTrigger:
				wr.logger.Info("manual reload triggered")
				if err := wr.Reload(ctx, true); err != nil {
					wr.logger.Error("failed to reload workbook",
						logger.Error(err))
				}
			case <-wr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (wr *WorkbookReloader) Stop() {
	close(wr.stopCh)
}

// Reload opens the workbook and rebuilds every category. Unless force is
// set, an unchanged workbook version is not normalized again.
func (wr *WorkbookReloader) Reload(ctx context.Context, force bool) error {
	wr.logger.Debug("reloading workbook",
		logger.String("source", wr.source.Source()))

	wb, err := wr.source.Open(ctx)
	if err != nil {
		wr.failAll(err)
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer utils.CloseLogged(wb, "workbook", wr.logger)

	if !force && wb.Version() == wr.index.Version() && wr.index.Source() == SourceWorkbook {
		wr.logger.Debug("workbook unchanged, skipping reload",
			logger.String("version", wb.Version()))
		return nil
	}

	snap := index.Snapshot{
		Catalogs: make(map[domain.Category]*domain.Catalog, len(domain.SheetCategories)),
		Failures: make(map[domain.Category]error),
		Version:  wb.Version(),
		Source:   SourceWorkbook,
	}
	saved := make([]redisstore.SheetSnapshot, 0, len(domain.SheetCategories))
	now := time.Now()

	for _, c := range domain.SheetCategories {
		grid, err := wb.Sheet(c)
		if err != nil {
			snap.Failures[c] = err
			wr.logger.Warn("failed to load category",
				logger.String("category", string(c)),
				logger.Error(err))
			continue
		}
		snap.Catalogs[c] = domain.NewCatalog(c, workbook.Normalize(c, grid))
		saved = append(saved, redisstore.SheetSnapshot{
			Category: c,
			Version:  wb.Version(),
			Rows:     grid,
			SavedAt:  now,
		})
	}

	wr.index.Replace(snap)

	wr.logger.Info("workbook loaded",
		logger.String("version", snap.Version),
		logger.Int("records", wr.index.Count()),
		logger.Int("failed_categories", len(snap.Failures)))

	// Best effort: the memory index is the primary source
	if wr.store != nil && len(saved) > 0 {
		if err := wr.store.SaveSheets(ctx, saved); err != nil {
			wr.logger.Warn("failed to save sheets to redis",
				logger.Error(err))
		}
	}

	return nil
}

// failAll records an unreadable workbook. Categories already served keep
// their catalogs; only an empty index is replaced by per-category
// failures so every page can show a notice.
func (wr *WorkbookReloader) failAll(err error) {
	if wr.index.Count() > 0 {
		return
	}
	snap := index.Snapshot{
		Failures: make(map[domain.Category]error, len(domain.SheetCategories)),
	}
	for _, c := range domain.SheetCategories {
		snap.Failures[c] = &domain.LoadFailure{
			Category: c,
			Sheet:    strings.Join(workbook.SheetNames(c), " | "),
			Err:      err,
		}
	}
	wr.index.Replace(snap)
}
