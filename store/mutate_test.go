package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/codec"
	"github.com/ngkaho1234/rtags/internal/testutil"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

func TestUpdateUnitPanicsOnZeroFileId(t *testing.T) {
	s := testutil.OpenStore(t)
	require.Panics(t, func() {
		_ = s.UpdateUnit(0, &store.UpdateUnitArgs{})
	})
}

func TestUpdateUnitPanicsOnNilBundle(t *testing.T) {
	s := testutil.OpenStore(t)
	require.Panics(t, func() {
		_ = s.UpdateUnit(1, nil)
	})
}

func TestUpdateUnitThenScopedQueryFindsRow(t *testing.T) {
	s := testutil.OpenStore(t)

	bundle := &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 7, Line: 1, Column: 1}},
		},
	}
	require.NoError(t, s.UpdateUnit(7, bundle))

	var got tags.LocationSet
	err := s.Query(catalog.SymbolNames, 7, []byte("foo"), false, func(fileId uint32, key, value []byte) store.QueryResult {
		require.EqualValues(t, 7, fileId)
		var derr error
		got, derr = tags.DecodeLocationSet(codec.NewReader(value))
		require.NoError(t, derr)
		return store.Continue
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.EqualValues(t, 7, got[0].FileId)
}

func TestUpdateUnitReplacesPreviousRows(t *testing.T) {
	s := testutil.OpenStore(t)

	bundle1 := &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 3, Line: 1, Column: 1}},
			"bar": {{FileId: 3, Line: 2, Column: 1}},
		},
	}
	require.NoError(t, s.UpdateUnit(3, bundle1))

	bundle2 := &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 3, Line: 99, Column: 1}},
		},
	}
	require.NoError(t, s.UpdateUnit(3, bundle2))

	seen := 0
	err := s.Query(catalog.SymbolNames, 3, nil, true, func(uint32, []byte, []byte) store.QueryResult {
		seen++
		return store.Continue
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen, "bar must have been cleared by the replace")
}

func TestDeleteUnitRemovesEveryTable(t *testing.T) {
	s := testutil.OpenStore(t)

	bundle := &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{"foo": {{FileId: 5, Line: 1, Column: 1}}},
		Usrs:        map[string]tags.LocationSet{"usr1": {{FileId: 5, Line: 1, Column: 1}}},
	}
	require.NoError(t, s.UpdateUnit(5, bundle))
	require.NoError(t, s.DeleteUnit(5))

	for _, tb := range []catalog.Table{catalog.SymbolNames, catalog.Usrs} {
		seen := 0
		err := s.Query(tb, 5, nil, true, func(uint32, []byte, []byte) store.QueryResult {
			seen++
			return store.Continue
		})
		require.NoError(t, err)
		require.Zero(t, seen)
	}
}

func TestDeleteUnitPanicsOnZeroFileId(t *testing.T) {
	s := testutil.OpenStore(t)
	require.Panics(t, func() {
		_ = s.DeleteUnit(0)
	})
}

func TestTwoUnitsAreIsolated(t *testing.T) {
	s := testutil.OpenStore(t)

	require.NoError(t, s.UpdateUnit(1, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{"shared": {{FileId: 1, Line: 1, Column: 1}}},
	}))
	require.NoError(t, s.UpdateUnit(2, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{"shared": {{FileId: 2, Line: 1, Column: 1}}},
	}))

	require.NoError(t, s.DeleteUnit(1))

	seen := 0
	err := s.Query(catalog.SymbolNames, 2, []byte("shared"), false, func(uint32, []byte, []byte) store.QueryResult {
		seen++
		return store.Continue
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen, "deleting unit 1 must not affect unit 2's rows")
}
