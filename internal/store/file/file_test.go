package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

func TestLedgerStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "favorites.json")
	store := NewLedgerStore(path)
	ctx := context.Background()

	empty, err := store.LoadLedger(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadLedger() on missing file error = %v", err)
	}
	if len(empty.Entries) != 0 {
		t.Errorf("LoadLedger() on missing file = %+v, want empty", empty)
	}

	alice := domain.LedgerState{Entries: []domain.LedgerEntry{
		{Category: domain.CategoryTools, Row: 2, Fingerprint: "abc"},
	}}
	bob := domain.LedgerState{Entries: []domain.LedgerEntry{
		{Category: domain.CategoryCourses, Row: 0},
	}}
	if err := store.SaveLedger(ctx, "alice", alice); err != nil {
		t.Fatalf("SaveLedger(alice) error = %v", err)
	}
	if err := store.SaveLedger(ctx, "bob", bob); err != nil {
		t.Fatalf("SaveLedger(bob) error = %v", err)
	}

	got, err := store.LoadLedger(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Row != 2 || got.Entries[0].Fingerprint != "abc" {
		t.Errorf("LoadLedger(alice) = %+v", got)
	}

	// Overwrite is wholesale.
	if err := store.SaveLedger(ctx, "alice", domain.LedgerState{}); err != nil {
		t.Fatalf("SaveLedger() error = %v", err)
	}
	got, _ = store.LoadLedger(ctx, "alice")
	if len(got.Entries) != 0 {
		t.Errorf("LoadLedger(alice) after clear = %+v", got)
	}
	got, _ = store.LoadLedger(ctx, "bob")
	if len(got.Entries) != 1 {
		t.Errorf("saving alice clobbered bob: %+v", got)
	}
}

func TestLedgerStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store := NewLedgerStore(path)
	if _, err := store.LoadLedger(context.Background(), "alice"); err == nil {
		t.Error("LoadLedger() should fail on a corrupt file")
	}
	if err := store.SaveLedger(context.Background(), "alice", domain.LedgerState{}); err == nil {
		t.Error("SaveLedger() should fail on a corrupt file")
	}
}

func TestVisitorCounterConcurrent(t *testing.T) {
	counter := NewVisitorCounter(filepath.Join(t.TempDir(), "visitors.json"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := counter.IncrementVisitors(ctx); err != nil {
				t.Errorf("IncrementVisitors() error = %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := counter.Visitors(ctx)
	if err != nil {
		t.Fatalf("Visitors() error = %v", err)
	}
	if n != 20 {
		t.Errorf("Visitors() = %d, want 20", n)
	}
}
