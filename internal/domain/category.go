package domain

import (
	"fmt"
	"strings"
)

// Category identifies one sheet-backed section of the catalog.
type Category string

const (
	CategoryDataSources Category = "data-sources"
	CategoryTools       Category = "tools"
	CategoryTutorials   Category = "tutorials"
	CategoryPythonCodes Category = "python-codes"
	CategoryCourses     Category = "courses"

	// CategoryFavorites is synthetic: it has no sheet and is assembled
	// from the session's ledger at render time.
	CategoryFavorites Category = "favorites"
)

// SheetCategories lists the sheet-backed categories in display order.
// Favorites are grouped in this order too.
var SheetCategories = []Category{
	CategoryDataSources,
	CategoryTools,
	CategoryTutorials,
	CategoryPythonCodes,
	CategoryCourses,
}

var categoryLabels = map[Category]string{
	CategoryDataSources: "Data Sources",
	CategoryTools:       "Tools",
	CategoryTutorials:   "Free Tutorials",
	CategoryPythonCodes: "Python Codes (GEE)",
	CategoryCourses:     "Courses",
	CategoryFavorites:   "Favorites",
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// IsSheet reports whether the category is backed by a workbook sheet.
func (c Category) IsSheet() bool {
	return c.order() >= 0
}

func (c Category) order() int {
	for i, sc := range SheetCategories {
		if sc == c {
			return i
		}
	}
	return -1
}

// ParseCategory accepts a slug ("data-sources") or a display label
// ("Data Sources"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c, label := range categoryLabels {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, label) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}
