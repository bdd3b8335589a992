package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/internal/testutil"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

func TestQueryLocationSetDecodesRows(t *testing.T) {
	s := testutil.OpenStore(t)
	require.NoError(t, s.UpdateUnit(1, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 1, Line: 1, Column: 1}},
		},
	}))

	var got tags.LocationSet
	err := s.QueryLocationSet(catalog.SymbolNames, 1, []byte("foo"), false, func(fileId uint32, key string, locs tags.LocationSet) store.QueryResult {
		require.Equal(t, "foo", key)
		got = locs
		return store.Continue
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestQueryGlobalLocationSetVisitsEveryUnit(t *testing.T) {
	s := testutil.OpenStore(t)
	require.NoError(t, s.UpdateUnit(1, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 1, Line: 1, Column: 1}},
		},
	}))
	require.NoError(t, s.UpdateUnit(2, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{
			"foo": {{FileId: 2, Line: 1, Column: 1}},
		},
	}))

	called := 0
	err := s.QueryGlobalLocationSet(catalog.SymbolNames, nil, true, func(fileId uint32, key string, locs tags.LocationSet) store.QueryResult {
		called++
		return store.Continue
	})
	require.NoError(t, err)
	require.Equal(t, 2, called)
}

func TestFileIdsListsDistinctFiles(t *testing.T) {
	s := testutil.OpenStore(t)
	require.NoError(t, s.UpdateUnit(3, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{"a": {{FileId: 3, Line: 1, Column: 1}}},
	}))
	require.NoError(t, s.UpdateUnit(1, &store.UpdateUnitArgs{
		SymbolNames: map[string]tags.LocationSet{"b": {{FileId: 1, Line: 1, Column: 1}}},
	}))

	ids, err := s.FileIds(catalog.SymbolNames)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, ids)
}
