package workbook

import (
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

func fieldNames(r domain.Record) []string {
	var names []string
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func TestNormalize(t *testing.T) {
	grid := Grid{
		{" Data Source ", "Type", "Unnamed: 2", "Links", "", "Description"},
		{"SoilGrids", "Raster", "junk", "https://soilgrids.org", "x", "global soils"},
		{"", "Vector", "", "https://nothing.org"},
		{"NaN", "Vector"},
		{},
		{"OSM", "Vector", "", "www.openstreetmap.org"},
	}

	records := Normalize(domain.CategoryDataSources, grid)

	if len(records) != 2 {
		t.Fatalf("Normalize() returned %d records, want 2", len(records))
	}

	want := []string{"Data Source", "Type", "Links", "Description"}
	if got := fieldNames(records[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("columns = %v, want %v", got, want)
	}

	if records[0].Row() != 0 || records[1].Row() != 1 {
		t.Errorf("rows = %d, %d; want 0, 1", records[0].Row(), records[1].Row())
	}

	// Short rows are padded.
	if v, ok := records[1].Get("Description"); !ok || v != "" {
		t.Errorf("padded Description = %q, %v", v, ok)
	}

	if got := domain.TitleOf(records[1]); got != "OSM" {
		t.Errorf("TitleOf() = %q, want OSM", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	grid := Grid{
		{"Tool Name", "Column 3", "Description"},
		{"QGIS", "https://qgis.org", "Desktop GIS"},
		{"GDAL", "https://gdal.org", "Library"},
	}

	first := Normalize(domain.CategoryTools, grid)
	second := Normalize(domain.CategoryTools, grid)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i].Fields(), second[i].Fields()) || first[i].Row() != second[i].Row() {
			t.Errorf("record %d differs between runs", i)
		}
	}

	if grid[0][1] != "Column 3" {
		t.Error("Normalize() modified its input grid")
	}
}

func TestNormalizeAliasing(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		header   []string
		want     []string
	}{
		{
			name:     "tools placeholder becomes Link",
			category: domain.CategoryTools,
			header:   []string{"Tool Name", "Column 7"},
			want:     []string{"Tool Name", "Link"},
		},
		{
			name:     "tools placeholder kept when Link exists",
			category: domain.CategoryTools,
			header:   []string{"Tool Name", "Link", "Column 7"},
			want:     []string{"Tool Name", "Link", "Column 7"},
		},
		{
			name:     "placeholder untouched outside tools",
			category: domain.CategoryCourses,
			header:   []string{"Course Name", "Column 2"},
			want:     []string{"Course Name", "Column 2"},
		},
		{
			name:     "legacy tools title",
			category: domain.CategoryTools,
			header:   []string{"Tools", "Link"},
			want:     []string{"Tool Name", "Link"},
		},
		{
			name:     "legacy data source title",
			category: domain.CategoryDataSources,
			header:   []string{"Name of Source", "Links"},
			want:     []string{"Data Source", "Links"},
		},
		{
			name:     "duplicate headers get suffixes",
			category: domain.CategoryPythonCodes,
			header:   []string{"Title", "Link", "Link"},
			want:     []string{"Title", "Link", "Link.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]string, len(tt.header))
			for i := range row {
				row[i] = "v"
			}
			records := Normalize(tt.category, Grid{tt.header, row})
			if len(records) != 1 {
				t.Fatalf("Normalize() returned %d records, want 1", len(records))
			}
			if got := fieldNames(records[0]); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("columns = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(domain.CategoryTools, nil); len(got) != 0 {
		t.Errorf("Normalize(nil) returned %d records", len(got))
	}
	if got := Normalize(domain.CategoryTools, Grid{{"Tool Name"}}); len(got) != 0 {
		t.Errorf("Normalize(header only) returned %d records", len(got))
	}
}
