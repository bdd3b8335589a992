package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/store"
)

func TestCreateAndOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := store.Open(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}

func TestCloseIsIdempotentSafe(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Close(), store.ErrClosed)
}

func TestOperationsAfterCloseReturnErrClosed(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Query(catalog.SymbolNames, 1, []byte("x"), false, func(uint32, []byte, []byte) store.QueryResult {
		return store.Stop
	}), store.ErrClosed)
}

func TestMetricsAndCollectorAreWired(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Metrics())
	require.NotNil(t, s.Collector())
}
