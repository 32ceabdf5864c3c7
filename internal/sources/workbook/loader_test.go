package workbook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

func writeTestWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%q) error = %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName() error = %v", err)
			}
			r := row
			if err := f.SetSheetRow(name, cell, &r); err != nil {
				t.Fatalf("SetSheetRow() error = %v", err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("DeleteSheet() error = %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf.Bytes()
}

func testSheets() map[string][][]interface{} {
	return map[string][][]interface{}{
		"Tools": {
			{"Tool Name", "Column 2", "Description"},
			{"QGIS", "https://qgis.org", "Desktop GIS"},
		},
		"Python Codes (GEE)": {
			{"Title", "Link to the codes"},
			{"NDVI time series", "https://code.earthengine.google.com/abc"},
		},
	}
}

func TestLoaderLoadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := os.WriteFile(path, writeTestWorkbook(t, testSheets()), 0o644); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	loader := NewLoader(path, time.Second)
	grid, err := loader.LoadSheet(context.Background(), domain.CategoryTools)
	if err != nil {
		t.Fatalf("LoadSheet() error = %v", err)
	}
	if len(grid) != 2 || grid[1][0] != "QGIS" {
		t.Fatalf("LoadSheet() = %v", grid)
	}

	records := Normalize(domain.CategoryTools, grid)
	links := domain.LinksOf(records[0], domain.LinksAll)
	if len(links) != 1 || links[0].Label != "Link" {
		t.Errorf("LinksOf() = %+v, want aliased Link column", links)
	}
}

func TestLoaderLegacySheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := os.WriteFile(path, writeTestWorkbook(t, testSheets()), 0o644); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	wb, err := NewLoader(path, time.Second).LoadWorkbook(context.Background())
	if err != nil {
		t.Fatalf("LoadWorkbook() error = %v", err)
	}
	defer func() { _ = wb.Close() }()

	grid, err := wb.Sheet(domain.CategoryPythonCodes)
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}
	if len(grid) != 2 {
		t.Errorf("Sheet() returned %d rows, want 2", len(grid))
	}
}

func TestLoaderMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := os.WriteFile(path, writeTestWorkbook(t, testSheets()), 0o644); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	_, err := NewLoader(path, time.Second).LoadSheet(context.Background(), domain.CategoryCourses)
	var lf *domain.LoadFailure
	if !errors.As(err, &lf) {
		t.Fatalf("LoadSheet() error = %v, want *domain.LoadFailure", err)
	}
	if lf.Category != domain.CategoryCourses || lf.Sheet != "Courses" {
		t.Errorf("LoadFailure = %+v", lf)
	}
}

func TestLoaderFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/catalog.xlsx", time.Second).LoadSheet(context.Background(), domain.CategoryTools)
	var lf *domain.LoadFailure
	if !errors.As(err, &lf) {
		t.Fatalf("LoadSheet() error = %v, want *domain.LoadFailure", err)
	}
}

func TestLoaderRemote(t *testing.T) {
	data := writeTestWorkbook(t, testSheets())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog.xlsx" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := NewLoader(srv.URL+"/catalog.xlsx", time.Second)
	first, err := loader.LoadWorkbook(context.Background())
	if err != nil {
		t.Fatalf("LoadWorkbook() error = %v", err)
	}
	defer func() { _ = first.Close() }()

	second, err := loader.LoadWorkbook(context.Background())
	if err != nil {
		t.Fatalf("LoadWorkbook() error = %v", err)
	}
	defer func() { _ = second.Close() }()

	if first.Version() == "" || first.Version() != second.Version() {
		t.Errorf("versions = %q, %q; want equal and non-empty", first.Version(), second.Version())
	}

	missing := NewLoader(srv.URL+"/missing.xlsx", time.Second)
	if _, err := missing.LoadWorkbook(context.Background()); err == nil {
		t.Error("LoadWorkbook() should fail on 404")
	}
}
