package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type counterFile struct {
	Count int64 `json:"count"`
}

// VisitorCounter is a JSON-file counter. One mutex guards the whole
// read-increment-write cycle.
type VisitorCounter struct {
	path string
	mu   sync.Mutex
}

// NewVisitorCounter creates a counter backed by path.
func NewVisitorCounter(path string) *VisitorCounter {
	return &VisitorCounter{path: path}
}

// IncrementVisitors adds one visit and returns the new total.
func (c *VisitorCounter) IncrementVisitors(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.read()
	if err != nil {
		return 0, err
	}
	cur.Count++
	if err := writeJSON(c.path, cur); err != nil {
		return 0, err
	}
	return cur.Count, nil
}

// Visitors returns the current total.
func (c *VisitorCounter) Visitors(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.read()
	if err != nil {
		return 0, err
	}
	return cur.Count, nil
}

func (c *VisitorCounter) read() (counterFile, error) {
	var cur counterFile
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cur, nil
		}
		return cur, fmt.Errorf("failed to read visitor file: %w", err)
	}
	if len(data) == 0 {
		return cur, nil
	}
	if err := json.Unmarshal(data, &cur); err != nil {
		return cur, fmt.Errorf("failed to parse visitor file: %w", err)
	}
	return cur, nil
}
