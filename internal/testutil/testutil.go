// Package testutil provides shared test fixtures for the store package,
// adapted from the teacher's test_utils/sync.go pattern (temp-directory
// scoped fixtures with automatic cleanup) and chotki_test.go's testdirs
// helper.
package testutil

import (
	"testing"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/store"
)

// OpenStore creates a fresh store.Store rooted in a t.TempDir(), closed
// automatically via t.Cleanup. Tests that need custom Options should
// call store.Create directly against t.TempDir() instead.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	if err != nil {
		t.Fatalf("testutil: create store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("testutil: close store: %v", err)
		}
	})
	return s
}
