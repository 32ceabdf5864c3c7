package workbook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/utils"
)

// maxWorkbookBytes bounds remote downloads.
const maxWorkbookBytes = 32 << 20

// Grid is a raw sheet: row 0 holds the column names.
type Grid [][]string

// Loader reads the catalog workbook from a local path or an http(s) URL.
type Loader struct {
	source  string
	timeout time.Duration
	client  *http.Client
}

// NewLoader creates a workbook loader. timeout bounds each load.
func NewLoader(source string, timeout time.Duration) *Loader {
	return &Loader{
		source:  source,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Source returns the configured path or URL.
func (l *Loader) Source() string { return l.source }

// Workbook is one opened copy of the workbook. Its sheets are read
// lazily and it must be closed.
type Workbook struct {
	file    *excelize.File
	version string
}

// Version is a content hash of the workbook bytes. Two loads of an
// unchanged workbook report the same version.
func (w *Workbook) Version() string { return w.version }

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// Sheet returns the raw grid of a category. The error is always a
// *domain.LoadFailure.
func (w *Workbook) Sheet(c domain.Category) (Grid, error) {
	names := SheetNames(c)
	if len(names) == 0 {
		return nil, &domain.LoadFailure{Category: c, Err: errors.New("category has no sheet")}
	}

	available := make(map[string]bool)
	for _, name := range w.file.GetSheetList() {
		available[name] = true
	}

	for _, name := range names {
		if !available[name] {
			continue
		}
		rows, err := w.file.GetRows(name)
		if err != nil {
			return nil, &domain.LoadFailure{Category: c, Sheet: name, Err: err}
		}
		return Grid(rows), nil
	}

	return nil, &domain.LoadFailure{
		Category: c,
		Sheet:    strings.Join(names, " | "),
		Err:      errors.New("sheet not found"),
	}
}

// LoadWorkbook reads and opens the whole workbook.
func (l *Loader) LoadWorkbook(ctx context.Context) (*Workbook, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook: %w", err)
	}

	sum := sha256.Sum256(data)
	return &Workbook{
		file:    f,
		version: hex.EncodeToString(sum[:])[:16],
	}, nil
}

// LoadSheet opens the workbook and returns a single category's grid.
// Any failure is reported as a *domain.LoadFailure.
func (l *Loader) LoadSheet(ctx context.Context, c domain.Category) (Grid, error) {
	wb, err := l.LoadWorkbook(ctx)
	if err != nil {
		return nil, &domain.LoadFailure{Category: c, Sheet: strings.Join(SheetNames(c), " | "), Err: err}
	}
	defer utils.Close(wb)

	return wb.Sheet(c)
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if l.source == "" {
		return nil, errors.New("workbook source not configured")
	}
	if isRemote(l.source) {
		return l.fetch(ctx)
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download workbook: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download workbook: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxWorkbookBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook body: %w", err)
	}
	if len(data) > maxWorkbookBytes {
		return nil, fmt.Errorf("workbook larger than %d bytes", maxWorkbookBytes)
	}
	return data, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
