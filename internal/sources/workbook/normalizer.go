package workbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

var (
	unnamedColumn     = regexp.MustCompile(`(?i)^unnamed(:\s*\d+)?$`)
	placeholderColumn = regexp.MustCompile(`(?i)^column\s*\d+$`)
)

// Normalize turns a raw grid into records. It is a pure function: the
// same grid always yields the same records and the grid is not modified.
//
// Steps, in order:
//  1. row 0 becomes the column names
//  2. rows with a blank/NA first cell are dropped
//  3. blank and "Unnamed: N" columns are dropped
//  4. column names are trimmed and de-duplicated
//  5. category aliasing (Tools "Column N" -> Link, legacy title names)
func Normalize(c domain.Category, grid Grid) []domain.Record {
	if len(grid) == 0 {
		return []domain.Record{}
	}

	header := grid[0]
	width := len(header)

	// Step 2 keys on the first column of the sheet as loaded.
	var rows [][]string
	for _, raw := range grid[1:] {
		if len(raw) == 0 || isBlank(raw[0]) {
			continue
		}
		rows = append(rows, raw)
		if len(raw) > width {
			width = len(raw)
		}
	}

	// Steps 3 and 4.
	type column struct {
		index int
		name  string
	}
	var cols []column
	used := make(map[string]int)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" || unnamedColumn.MatchString(name) {
			continue
		}
		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			used[name] = 1
		}
		cols = append(cols, column{index: i, name: name})
	}

	// Step 5.
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}
	names = aliasColumns(c, names)

	records := make([]domain.Record, 0, len(rows))
	for _, raw := range rows {
		fields := make([]domain.Field, len(cols))
		for i, col := range cols {
			v := ""
			if col.index < len(raw) {
				v = cleanCell(raw[col.index])
			}
			fields[i] = domain.Field{Name: names[i], Value: v}
		}
		records = append(records, domain.NewRecord(c, len(records), fields))
	}
	return records
}

// aliasColumns renames mislabelled columns. A rename never collides with
// a column that already carries the target name.
func aliasColumns(c domain.Category, names []string) []string {
	out := make([]string, len(names))
	copy(out, names)

	present := make(map[string]bool, len(out))
	for _, n := range out {
		present[n] = true
	}

	rename := func(i int, target string) {
		if present[target] {
			return
		}
		present[out[i]] = false
		out[i] = target
		present[target] = true
	}

	schema := domain.SchemaFor(c)
	for i, n := range out {
		if c == domain.CategoryTools && placeholderColumn.MatchString(n) {
			rename(i, domain.ColumnLink)
			continue
		}
		for _, alias := range schema.TitleAliases {
			if n == alias {
				rename(i, schema.TitleColumn)
				break
			}
		}
	}
	return out
}

func isBlank(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "na", "n/a", "none":
		return true
	}
	return false
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}
