package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/internal/testutil"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

func seedTwoUnits(t *testing.T) *store.Store {
	t.Helper()
	s := testutil.OpenStore(t)

	require.NoError(t, s.UpdateUnit(1, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"needle":  {{FileId: 1, Line: 1, Column: 1}},
			"needle2": {{FileId: 1, Line: 2, Column: 1}},
		},
	}))
	require.NoError(t, s.UpdateUnit(2, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"needle": {{FileId: 2, Line: 5, Column: 1}},
		},
	}))
	return s
}

func TestQueryGlobalFindsRowsAcrossUnits(t *testing.T) {
	s := seedTwoUnits(t)

	var fileIds []uint32
	err := s.QueryGlobal(catalog.SymbolNames, []byte("needle"), false, func(fileId uint32, key, value []byte) store.QueryResult {
		require.Equal(t, "needle", string(key))
		fileIds = append(fileIds, fileId)
		return store.Continue
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []uint32{1, 2}, fileIds)
}

func TestQueryGlobalPrefixScan(t *testing.T) {
	s := seedTwoUnits(t)

	count := 0
	err := s.QueryGlobal(catalog.SymbolNames, []byte("needle"), true, func(uint32, []byte, []byte) store.QueryResult {
		count++
		return store.Continue
	})
	require.NoError(t, err)
	require.Equal(t, 3, count, "needle (x2 units) + needle2 must all match the prefix")
}

func TestQueryScopedDoesNotSeeOtherUnits(t *testing.T) {
	s := seedTwoUnits(t)

	count := 0
	err := s.Query(catalog.SymbolNames, 1, []byte("needle"), false, func(fileId uint32, _, _ []byte) store.QueryResult {
		count++
		require.EqualValues(t, 1, fileId)
		return store.Continue
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestQueryStopHaltsScan(t *testing.T) {
	s := seedTwoUnits(t)

	count := 0
	err := s.Query(catalog.SymbolNames, 1, nil, true, func(uint32, []byte, []byte) store.QueryResult {
		count++
		return store.Stop
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestQueryOnEmptyTableYieldsNothing(t *testing.T) {
	s := testutil.OpenStore(t)

	called := false
	err := s.Query(catalog.SymbolNames, 1, []byte("anything"), true, func(uint32, []byte, []byte) store.QueryResult {
		called = true
		return store.Continue
	})
	require.NoError(t, err)
	require.False(t, called)
}
