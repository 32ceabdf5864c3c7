package domain

// Schema is the static display knowledge for one category.
type Schema struct {
	// TitleColumn is the one designated title column.
	TitleColumn string

	// TitleAliases are legacy header names renamed to TitleColumn
	// by the sheet normalizer.
	TitleAliases []string

	// LinkColumns are the candidate link columns, in priority order.
	LinkColumns []string
}

const (
	ColumnType        = "Type"
	ColumnDescription = "Description"
	ColumnPurpose     = "Purpose"
	ColumnLink        = "Link"
)

// SchemaVersion is bumped whenever the tables below change.
const SchemaVersion = 1

var schemas = map[Category]Schema{
	CategoryDataSources: {
		TitleColumn:  "Data Source",
		TitleAliases: []string{"Name of Source"},
		LinkColumns:  []string{"Links", "Link"},
	},
	CategoryTools: {
		TitleColumn:  "Tool Name",
		TitleAliases: []string{"Tools"},
		LinkColumns:  []string{"Tool Link", "Link", "Links"},
	},
	CategoryCourses: {
		TitleColumn:  "Course Name",
		TitleAliases: []string{"Tutorials"},
		LinkColumns:  []string{"Course Link", "Link", "Links"},
	},
	CategoryTutorials: {
		TitleColumn:  "Tutorial Name",
		TitleAliases: []string{"Tutorials"},
		LinkColumns:  []string{"Link", "Links", "Tutorial Link"},
	},
	CategoryPythonCodes: {
		TitleColumn: "Title",
		LinkColumns: []string{"Link", "Links", "Link to the codes"},
	},
}

// SchemaFor returns the schema of a category. Unknown and synthetic
// categories get an empty title column (first-field fallback) and the
// union of every category's link columns.
func SchemaFor(c Category) Schema {
	if s, ok := schemas[c]; ok {
		return s
	}
	return Schema{LinkColumns: unionLinkColumns()}
}

func unionLinkColumns() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range SheetCategories {
		for _, col := range schemas[c].LinkColumns {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}

// isDisplayExcluded reports whether a column is already rendered in a
// dedicated card slot and must not be repeated in the extra fields.
func (s Schema) isDisplayExcluded(col string) bool {
	return col == s.TitleColumn || col == ColumnDescription || col == ColumnPurpose
}
