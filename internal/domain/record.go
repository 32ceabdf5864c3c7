package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Field is one named cell of a record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one catalog entry built from a sheet row.
//
// A Record is immutable once constructed: accessors hand out copies, and
// reloading a sheet produces a fresh set of records.
type Record struct {
	category Category
	row      int
	fields   []Field
	index    map[string]int
}

// NewRecord builds a record. Fields keep their given order; when a
// column name repeats, the first occurrence wins.
func NewRecord(c Category, row int, fields []Field) Record {
	r := Record{
		category: c,
		row:      row,
		fields:   make([]Field, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := r.index[f.Name]; dup {
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Category returns the category the record was loaded from.
func (r Record) Category() Category { return r.category }

// Row returns the 0-based position of the record in its loaded sheet.
func (r Record) Row() int { return r.row }

// Key returns the favorite key of the record.
func (r Record) Key() FavoriteKey { return FavoriteKey{Category: r.category, Row: r.row} }

// Fields returns a copy of the record's fields in sheet column order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the value of a column and whether the column exists.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Value returns the value of a column, or "" when the column is absent.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Fingerprint is a content-derived identity (category + title). It lets
// a saved favorite find its record again after the sheet is reordered.
func (r Record) Fingerprint() string {
	sum := sha256.Sum256([]byte(string(r.category) + "\x00" + strings.ToLower(TitleOf(r))))
	return hex.EncodeToString(sum[:])[:16]
}
