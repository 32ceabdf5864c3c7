package viewmodel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/georepo/internal/domain"
	"github.com/MrSnakeDoc/georepo/internal/logger"
)

type fakeSource struct {
	catalogs map[domain.Category]*domain.Catalog
	failures map[domain.Category]error
}

func (f *fakeSource) Catalog(c domain.Category) (*domain.Catalog, error) {
	if err, ok := f.failures[c]; ok {
		return domain.NewCatalog(c, nil), err
	}
	if cat, ok := f.catalogs[c]; ok {
		return cat, nil
	}
	return domain.NewCatalog(c, nil), nil
}

func catalog(c domain.Category, rows ...[]string) *domain.Catalog {
	records := make([]domain.Record, len(rows))
	for i, kv := range rows {
		fields := make([]domain.Field, 0, len(kv)/2)
		for j := 0; j+1 < len(kv); j += 2 {
			fields = append(fields, domain.Field{Name: kv[j], Value: kv[j+1]})
		}
		records[i] = domain.NewRecord(c, i, fields)
	}
	return domain.NewCatalog(c, records)
}

func testSource() *fakeSource {
	return &fakeSource{
		catalogs: map[domain.Category]*domain.Catalog{
			domain.CategoryDataSources: catalog(domain.CategoryDataSources,
				[]string{"Data Source", "SoilGrids", "Type", "Soil", "Links", "https://soilgrids.org", "Link", "www.isric.org"},
				[]string{"Data Source", "Landsat", "Type", "Imagery", "Links", "https://landsat.gsfc.nasa.gov"},
				[]string{"Data Source", "HWSD", "Type", "Soil", "Purpose", "Harmonized soils"},
			),
			domain.CategoryTools: catalog(domain.CategoryTools,
				[]string{"Tool Name", "QGIS", "Tool Link", "https://qgis.org", "License", "GPL"},
				[]string{"Tool Name", "GDAL", "Tool Link", "https://gdal.org"},
				[]string{"Tool Name", "ArcGIS", "Link", "https://arcgis.com"},
			),
			domain.CategoryCourses: catalog(domain.CategoryCourses,
				[]string{"Course Name", "Remote Sensing 101", "Course Link", "https://example.edu/rs"},
			),
		},
	}
}

func cardTitles(cards []DisplayCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRenderCategory(t *testing.T) {
	m := New(testSource(), logger.NewNop())
	ledger := domain.NewLedger()
	ledger.Toggle(domain.CategoryTools, 1)

	page, err := m.Render(context.Background(), Request{Category: domain.CategoryTools, Sort: domain.SortAsc}, ledger)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := []string{"ArcGIS", "GDAL", "QGIS"}; !equal(cardTitles(page.Cards), want) {
		t.Errorf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
	if page.Total != 3 {
		t.Errorf("Total = %d, want 3", page.Total)
	}
	for _, c := range page.Cards {
		if c.IsFavorited != (c.Title == "GDAL") {
			t.Errorf("%s IsFavorited = %v", c.Title, c.IsFavorited)
		}
	}
	if page.TypeOptions != nil {
		t.Errorf("TypeOptions only apply to Data Sources, got %v", page.TypeOptions)
	}
}

func TestRenderDataSourcesFilters(t *testing.T) {
	m := New(testSource(), logger.NewNop())

	page, err := m.Render(context.Background(), Request{
		Category: domain.CategoryDataSources,
		Types:    []string{"Soil"},
		Search:   "soil",
	}, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := []string{"SoilGrids", "HWSD"}; !equal(cardTitles(page.Cards), want) {
		t.Errorf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
	if want := []string{"Imagery", "Soil"}; !equal(page.TypeOptions, want) {
		t.Errorf("TypeOptions = %v, want %v", page.TypeOptions, want)
	}
	if page.Cards[1].Description != "Harmonized soils" {
		t.Errorf("Description = %q, want Purpose fallback", page.Cards[1].Description)
	}
}

func TestRenderViewModes(t *testing.T) {
	m := New(testSource(), logger.NewNop())

	detailed, _ := m.Render(context.Background(), Request{Category: domain.CategoryDataSources, View: ViewDetailed}, nil)
	soil := detailed.Cards[0]
	if len(soil.Links) != 2 || soil.Links[1].URL != "https://www.isric.org" {
		t.Errorf("detailed links = %+v", soil.Links)
	}
	if len(soil.ExtraFields) != 1 || soil.ExtraFields[0].Name != "Type" {
		t.Errorf("detailed extras = %+v", soil.ExtraFields)
	}

	compact, _ := m.Render(context.Background(), Request{Category: domain.CategoryDataSources, View: ViewCompact}, nil)
	soil = compact.Cards[0]
	if len(soil.Links) != 1 || soil.Links[0].URL != "https://soilgrids.org" {
		t.Errorf("compact links = %+v", soil.Links)
	}
	if len(soil.ExtraFields) != 0 {
		t.Errorf("compact view should have no extras, got %+v", soil.ExtraFields)
	}
}

func TestRenderLoadFailure(t *testing.T) {
	src := testSource()
	src.failures = map[domain.Category]error{
		domain.CategoryTutorials: &domain.LoadFailure{Category: domain.CategoryTutorials, Sheet: "Free Tutorials", Err: errors.New("missing")},
	}
	m := New(src, logger.NewNop())

	page, err := m.Render(context.Background(), Request{Category: domain.CategoryTutorials}, nil)
	if err != nil {
		t.Fatalf("Render() should degrade, got error %v", err)
	}
	if len(page.Cards) != 0 || len(page.Notices) != 1 {
		t.Errorf("page = %+v, want empty with one notice", page)
	}
}

func TestRenderUnknownCategory(t *testing.T) {
	m := New(testSource(), logger.NewNop())
	if _, err := m.Render(context.Background(), Request{Category: "recipes"}, nil); err == nil {
		t.Error("Render() should reject an unknown category")
	}
}

// Each favorite must come from its own category's catalog, even when the
// row index also exists in other categories.
func TestRenderFavoritesNoCrossContamination(t *testing.T) {
	m := New(testSource(), logger.NewNop())
	ledger := domain.NewLedger()
	for _, k := range []domain.FavoriteKey{
		{Category: domain.CategoryCourses, Row: 0},
		{Category: domain.CategoryTools, Row: 2},
		{Category: domain.CategoryTools, Row: 0},
		{Category: domain.CategoryDataSources, Row: 1},
	} {
		if _, err := m.ToggleFavorite(ledger, k.Category, k.Row); err != nil {
			t.Fatalf("ToggleFavorite(%v) error = %v", k, err)
		}
	}

	page, err := m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []string{"Landsat", "QGIS", "ArcGIS", "Remote Sensing 101"}
	if !equal(cardTitles(page.Cards), want) {
		t.Errorf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
	for _, c := range page.Cards {
		if !c.IsFavorited {
			t.Errorf("%s should be favorited", c.Title)
		}
		if c.Key.Category != c.Category {
			t.Errorf("%s key category %s != card category %s", c.Title, c.Key.Category, c.Category)
		}
	}
	// Tools row 2 uses the Link column, which only the Tools schema knows
	// at that priority.
	if page.Cards[2].Links[0].URL != "https://arcgis.com" {
		t.Errorf("ArcGIS links = %+v", page.Cards[2].Links)
	}
}

func TestRenderFavoritesRelocatesMovedRows(t *testing.T) {
	src := testSource()
	m := New(src, logger.NewNop())
	ledger := domain.NewLedger()
	if _, err := m.ToggleFavorite(ledger, domain.CategoryTools, 0); err != nil { // QGIS
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	before := ledger.Snapshot()

	// The sheet gains a row at the top; QGIS moves to row 1.
	src.catalogs[domain.CategoryTools] = catalog(domain.CategoryTools,
		[]string{"Tool Name", "GRASS", "Tool Link", "https://grass.osgeo.org"},
		[]string{"Tool Name", "QGIS", "Tool Link", "https://qgis.org"},
	)

	page, _ := m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
	if want := []string{"QGIS"}; !equal(cardTitles(page.Cards), want) {
		t.Fatalf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
	if page.Relocation == nil {
		t.Fatal("Relocation should be set after rows moved")
	}
	if !ledger.Snapshot().Equal(before) {
		t.Error("Render() must not modify the ledger")
	}

	if !ledger.CompareAndRestore(page.Relocation.From, page.Relocation.To) {
		t.Fatal("CompareAndRestore() failed on an untouched ledger")
	}
	if ledger.IsFavorited(domain.CategoryTools, 0) || !ledger.IsFavorited(domain.CategoryTools, 1) {
		t.Errorf("ledger was not moved to the new row: %+v", ledger.All())
	}

	page, _ = m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
	if page.Relocation != nil {
		t.Errorf("second render should not relocate again: %+v", page.Relocation)
	}
}

func TestRenderFavoritesSwappedRowsKeepBoth(t *testing.T) {
	src := testSource()
	m := New(src, logger.NewNop())
	ledger := domain.NewLedger()
	_, _ = m.ToggleFavorite(ledger, domain.CategoryTools, 0) // QGIS
	_, _ = m.ToggleFavorite(ledger, domain.CategoryTools, 1) // GDAL

	src.catalogs[domain.CategoryTools] = catalog(domain.CategoryTools,
		[]string{"Tool Name", "GDAL", "Tool Link", "https://gdal.org"},
		[]string{"Tool Name", "QGIS", "Tool Link", "https://qgis.org"},
	)

	for i := 0; i < 2; i++ {
		page, _ := m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
		if want := []string{"GDAL", "QGIS"}; !equal(cardTitles(page.Cards), want) {
			t.Fatalf("render %d: titles = %v, want %v", i, cardTitles(page.Cards), want)
		}
		if len(page.Notices) != 0 {
			t.Errorf("render %d: unexpected notices %v", i, page.Notices)
		}
		if page.Relocation != nil {
			ledger.CompareAndRestore(page.Relocation.From, page.Relocation.To)
		}
		if ledger.Len() != 2 {
			t.Fatalf("render %d: ledger lost a favorite: %+v", i, ledger.All())
		}
	}
}

func TestRenderCategoryFollowsMovedFavorite(t *testing.T) {
	src := testSource()
	m := New(src, logger.NewNop())
	ledger := domain.NewLedger()
	_, _ = m.ToggleFavorite(ledger, domain.CategoryTools, 0) // QGIS

	src.catalogs[domain.CategoryTools] = catalog(domain.CategoryTools,
		[]string{"Tool Name", "GRASS", "Tool Link", "https://grass.osgeo.org"},
		[]string{"Tool Name", "QGIS", "Tool Link", "https://qgis.org"},
	)

	page, err := m.Render(context.Background(), Request{Category: domain.CategoryTools}, ledger)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, c := range page.Cards {
		if want := c.Title == "QGIS"; c.IsFavorited != want {
			t.Errorf("%s favorited = %v, want %v", c.Title, c.IsFavorited, want)
		}
	}
	if page.Relocation == nil {
		t.Error("category page should report the relocation")
	}

	// Clicking the QGIS card removes QGIS, not GRASS.
	on, err := m.ToggleFavorite(ledger, domain.CategoryTools, 1)
	if err != nil || on {
		t.Fatalf("ToggleFavorite() = %v, %v; want false", on, err)
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger = %+v, want empty", ledger.All())
	}
}

func TestRenderFavoritesSkipsStale(t *testing.T) {
	src := testSource()
	m := New(src, logger.NewNop())
	ledger := domain.NewLedger()
	_, _ = m.ToggleFavorite(ledger, domain.CategoryTools, 1) // GDAL
	_, _ = m.ToggleFavorite(ledger, domain.CategoryCourses, 0)

	src.catalogs[domain.CategoryTools] = catalog(domain.CategoryTools,
		[]string{"Tool Name", "QGIS"},
		[]string{"Tool Name", "SAGA"},
	)

	page, _ := m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
	if want := []string{"Remote Sensing 101"}; !equal(cardTitles(page.Cards), want) {
		t.Errorf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
	if len(page.Notices) != 1 || !strings.Contains(page.Notices[0], "Tools") {
		t.Errorf("Notices = %v, want one stale favorite notice", page.Notices)
	}
}

func TestRenderFavoritesSearchAndSort(t *testing.T) {
	m := New(testSource(), logger.NewNop())
	ledger := domain.NewLedger()
	for _, row := range []int{0, 1, 2} {
		_, _ = m.ToggleFavorite(ledger, domain.CategoryTools, row)
	}
	_, _ = m.ToggleFavorite(ledger, domain.CategoryDataSources, 0)

	page, _ := m.Render(context.Background(), Request{
		Category: domain.CategoryFavorites,
		Search:   "g",
		Sort:     domain.SortDesc,
	}, ledger)
	want := []string{"SoilGrids", "QGIS", "GDAL", "ArcGIS"}
	if !equal(cardTitles(page.Cards), want) {
		t.Errorf("titles = %v, want %v", cardTitles(page.Cards), want)
	}
}

func TestToggleFavorite(t *testing.T) {
	m := New(testSource(), logger.NewNop())
	ledger := domain.NewLedger()

	on, err := m.ToggleFavorite(ledger, domain.CategoryTools, 0)
	if err != nil || !on {
		t.Fatalf("ToggleFavorite() = %v, %v; want true", on, err)
	}
	if ledger.FingerprintOf(domain.FavoriteKey{Category: domain.CategoryTools, Row: 0}) == "" {
		t.Error("new favorite was not stamped")
	}

	on, err = m.ToggleFavorite(ledger, domain.CategoryTools, 0)
	if err != nil || on {
		t.Fatalf("second ToggleFavorite() = %v, %v; want false", on, err)
	}

	if _, err := m.ToggleFavorite(ledger, domain.CategoryTools, 99); err == nil {
		t.Error("ToggleFavorite() should reject a row outside the catalog")
	}
	if _, err := m.ToggleFavorite(ledger, domain.CategoryFavorites, 0); err == nil {
		t.Error("ToggleFavorite() should reject the favorites category")
	}
}

type nilSource struct{}

func (nilSource) Catalog(domain.Category) (*domain.Catalog, error) { return nil, nil }

func TestRenderNilCatalog(t *testing.T) {
	m := New(nilSource{}, logger.NewNop())
	ledger := domain.NewLedger()
	ledger.Toggle(domain.CategoryDataSources, 0)

	page, err := m.Render(context.Background(), Request{Category: domain.CategoryDataSources}, ledger)
	if err != nil || page.Total != 0 {
		t.Errorf("Render() = %+v, %v; want an empty page", page, err)
	}
	page, _ = m.Render(context.Background(), Request{Category: domain.CategoryFavorites}, ledger)
	if page.Total != 0 || len(page.Notices) != 1 {
		t.Errorf("favorites = %+v, want no cards and one stale notice", page)
	}
}

func TestParseViewMode(t *testing.T) {
	if ParseViewMode("Compact") != ViewCompact {
		t.Error("ParseViewMode(Compact) should be compact")
	}
	if ParseViewMode("") != ViewDetailed || ParseViewMode("other") != ViewDetailed {
		t.Error("ParseViewMode should default to detailed")
	}
}
