package domain

import "fmt"

// LoadFailure reports that a category's sheet could not be loaded.
// Callers degrade to an empty catalog for that category.
type LoadFailure struct {
	Category Category
	Sheet    string
	Err      error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load sheet %q for %s: %v", e.Sheet, e.Category, e.Err)
}

func (e *LoadFailure) Unwrap() error { return e.Err }

// PersistenceFailure reports that a ledger could not be written. The
// in-memory ledger stays authoritative for the session.
type PersistenceFailure struct {
	Owner string
	Err   error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("failed to persist favorites for %s: %v", e.Owner, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }
