package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds the records of one category for one load cycle.
type Catalog struct {
	Category Category
	Schema   Schema
	Records  []Record
}

// NewCatalog wraps records with the schema of their category.
func NewCatalog(c Category, records []Record) *Catalog {
	return &Catalog{
		Category: c,
		Schema:   SchemaFor(c),
		Records:  records,
	}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// List returns the records in row order. A nil catalog has none.
func (c *Catalog) List() []Record {
	if c == nil {
		return nil
	}
	return c.Records
}

// At returns the record at a row index.
func (c *Catalog) At(row int) (Record, bool) {
	if c == nil || row < 0 || row >= len(c.Records) {
		return Record{}, false
	}
	return c.Records[row], true
}

// FindByFingerprint returns the first record with the given fingerprint.
func (c *Catalog) FindByFingerprint(fp string) (Record, bool) {
	if c == nil || fp == "" {
		return Record{}, false
	}
	for _, r := range c.Records {
		if r.Fingerprint() == fp {
			return r, true
		}
	}
	return Record{}, false
}

// LinkMode selects how many links LinksOf returns.
type LinkMode int

const (
	LinksAll LinkMode = iota
	LinksFirst
)

// Link is a labelled URL found in a record.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

var urlPrefixes = []string{"http://", "https://", "www."}

// IsURL reports whether a cell value looks like a link.
func IsURL(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, p := range urlPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

func normalizeURL(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(strings.ToLower(v), "www.") {
		return "https://" + v
	}
	return v
}

// TitleOf returns the value of the record's title column. A blank or
// missing title falls back to "Resource-{n}" with n the 1-based row.
// Categories without a title column use the record's first field.
func TitleOf(r Record) string {
	s := SchemaFor(r.category)
	var title string
	if s.TitleColumn != "" {
		title = strings.TrimSpace(r.Value(s.TitleColumn))
	} else if len(r.fields) > 0 {
		title = strings.TrimSpace(r.fields[0].Value)
	}
	if title == "" {
		return fmt.Sprintf("Resource-%d", r.row+1)
	}
	return title
}

// LinksOf scans the category's candidate link columns in priority order
// and returns the ones holding a URL. LinksFirst stops at the first hit.
func LinksOf(r Record, mode LinkMode) []Link {
	var links []Link
	for _, col := range SchemaFor(r.category).LinkColumns {
		v, ok := r.Get(col)
		if !ok || !IsURL(v) {
			continue
		}
		links = append(links, Link{Label: col, URL: normalizeURL(v)})
		if mode == LinksFirst {
			break
		}
	}
	return links
}

// DescriptionOf returns the Description column, else Purpose.
func DescriptionOf(r Record) string {
	if d := strings.TrimSpace(r.Value(ColumnDescription)); d != "" {
		return d
	}
	return strings.TrimSpace(r.Value(ColumnPurpose))
}

// ExtraFieldsOf returns the non-blank fields that have no dedicated slot
// on a card: everything except the title, description, purpose and the
// columns already shown as links.
func ExtraFieldsOf(r Record, shown []Link) []Field {
	s := SchemaFor(r.category)
	linked := make(map[string]bool, len(shown))
	for _, l := range shown {
		linked[l.Label] = true
	}
	var out []Field
	for i, f := range r.fields {
		if s.isDisplayExcluded(f.Name) || linked[f.Name] || strings.TrimSpace(f.Value) == "" {
			continue
		}
		// First-column title for schemaless categories.
		if s.TitleColumn == "" && i == 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Search keeps the records where query occurs, case-insensitively, in
// at least one field value. A blank query returns all records.
func Search(records []Record, query string) []Record {
	out := make([]Record, 0, len(records))
	if strings.TrimSpace(query) == "" {
		return append(out, records...)
	}
	q := strings.ToLower(query)
	for _, r := range records {
		for _, f := range r.fields {
			if strings.Contains(strings.ToLower(f.Value), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterByType keeps the records whose Type value is in allowed. An
// empty allowed set returns all records.
func FilterByType(records []Record, allowed []string) []Record {
	out := make([]Record, 0, len(records))
	if len(allowed) == 0 {
		return append(out, records...)
	}
	set := make(map[string]bool, len(allowed))
	for _, t := range allowed {
		set[t] = true
	}
	for _, r := range records {
		if set[r.Value(ColumnType)] {
			out = append(out, r)
		}
	}
	return out
}

// TypeOptions returns the distinct non-blank Type values, sorted.
func TypeOptions(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		t := r.Value(ColumnType)
		if strings.TrimSpace(t) == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SortOrder is the title ordering requested by the presentation layer.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps "asc"/"desc" (any case); anything else keeps
// sheet order.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "a-z":
		return SortAsc
	case "desc", "z-a":
		return SortDesc
	default:
		return SortNone
	}
}

// SortByTitle returns a stably sorted copy ordered by TitleOf using
// byte-wise (case-sensitive) comparison.
func SortByTitle(records []Record, ascending bool) []Record {
	type titled struct {
		rec   Record
		title string
	}
	items := make([]titled, len(records))
	for i, r := range records {
		items[i] = titled{rec: r, title: TitleOf(r)}
	}
	sort.SliceStable(items, func(a, b int) bool {
		if ascending {
			return items[a].title < items[b].title
		}
		return items[a].title > items[b].title
	})
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

// Sort applies a SortOrder; SortNone returns a copy in input order.
func Sort(records []Record, order SortOrder) []Record {
	switch order {
	case SortAsc:
		return SortByTitle(records, true)
	case SortDesc:
		return SortByTitle(records, false)
	default:
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
}
