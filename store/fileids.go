package store

import "github.com/ngkaho1234/rtags/catalog"

// FileIds returns the distinct FileIds that own at least one primary row
// in table t, in ascending order. Primary keys are ordered by FileId
// first, so this is a single forward scan that jumps straight to the
// next FileId's prefix as soon as one is seen, rather than visiting
// every row of every file.
//
// The scan runs against a *pebble.Snapshot taken at call start, the same
// as Query/QueryGlobal (SPEC_FULL.md §9).
func (s *Store) FileIds(t catalog.Table) ([]uint32, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	snap := s.db.NewSnapshot()
	defer snap.Close()

	prefix := tablePrefix(t, primaryKind)
	upper := prefixUpperBound(prefix)

	cur, err := newCursor(snap, prefix, upper)
	if err != nil {
		return nil, &StoreError{Op: "file_ids", Table: t, Err: err}
	}
	defer cur.Close()

	var ids []uint32
	for ok := cur.first(); ok; {
		fileId, _ := parsePrimaryKey(cur.key())
		ids = append(ids, fileId)

		nextUpper := prefixUpperBound(s.primaryFilePrefix(t, fileId))
		if nextUpper == nil {
			break
		}
		ok = cur.seekGE(nextUpper)
	}
	if err := cur.error(); err != nil {
		return nil, &StoreError{Op: "file_ids", Table: t, Err: err}
	}
	return ids, nil
}
