package workbook

import "github.com/MrSnakeDoc/georepo/internal/domain"

// sheetNames maps a category to the workbook sheet names it has been
// published under, newest first. The first sheet that exists is read.
var sheetNames = map[domain.Category][]string{
	domain.CategoryDataSources: {"Data Sources"},
	domain.CategoryTools:       {"Tools"},
	domain.CategoryCourses:     {"Courses"},
	domain.CategoryTutorials:   {"Free Tutorials", "Tutorials"},
	domain.CategoryPythonCodes: {"Google Earth EnginePython Codes", "Python Codes (GEE)"},
}

// SheetNames returns the candidate sheet names of a category.
func SheetNames(c domain.Category) []string {
	return sheetNames[c]
}
