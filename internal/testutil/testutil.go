// Package testutil provides shared test helpers for setting up draft stores
// and data directories.
package testutil

import (
	"os"
	"testing"

	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/storage"
)

// TestDrafts creates a temporary SQLite draft store that is automatically
// cleaned up.
func TestDrafts(t *testing.T) draftstore.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "blogforge-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	drafts, err := draftstore.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { drafts.Close() })
	return drafts
}

// TestDataDir creates a temporary data directory with a storage.Provider.
func TestDataDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
