package store

import (
	"encoding/binary"

	"github.com/ngkaho1234/rtags/catalog"
)

// Every physical pebble key is:
//
//	table-prefix(1) ‖ index-kind(1) ‖ payload
//
// mirroring the teacher's single-keyspace OKey/VKey convention
// (chotki.go) rather than one pebble instance per table, so the whole
// store runs through one *pebble.DB, one WAL, one set of compactions.
//
// Primary payload:   BigEndian(FileId uint32) ‖ LogicalKey
// Secondary payload: LogicalKey ‖ BigEndian(FileId uint32)
//
// FileId is fixed big-endian (SPEC_FULL.md §2), not the native-order the
// original source used, so it participates correctly in lexicographic
// ordering on every host.
const (
	primaryKind   byte = 'p'
	secondaryKind byte = 's'
)

func tablePrefix(t catalog.Table, kind byte) []byte {
	return []byte{t.Prefix(), kind}
}

// encodeFileId returns FileId's fixed big-endian 4-byte encoding,
// consulting the Store's fileIdCache first. A long-running indexer tends
// to rewrite the same handful of units over and over within one batch
// (every row of one UpdateUnit call shares a FileId), so this avoids
// re-running binary.BigEndian.PutUint32 for every row.
func (s *Store) encodeFileId(fileId uint32) [4]byte {
	if enc, ok := s.fileIdCache.Get(fileId); ok {
		return enc
	}
	var enc [4]byte
	binary.BigEndian.PutUint32(enc[:], fileId)
	s.fileIdCache.Add(fileId, enc)
	return enc
}

// primaryKey builds the full primary-index key for one row.
func (s *Store) primaryKey(t catalog.Table, fileId uint32, logicalKey []byte) []byte {
	enc := s.encodeFileId(fileId)
	key := make([]byte, 0, 2+4+len(logicalKey))
	key = append(key, tablePrefix(t, primaryKind)...)
	key = append(key, enc[:]...)
	key = append(key, logicalKey...)
	return key
}

// primaryFilePrefix is the key prefix shared by every primary row owned
// by fileId in table t — the range unit update's delete step clears.
func (s *Store) primaryFilePrefix(t catalog.Table, fileId uint32) []byte {
	enc := s.encodeFileId(fileId)
	key := make([]byte, 0, 2+4)
	key = append(key, tablePrefix(t, primaryKind)...)
	key = append(key, enc[:]...)
	return key
}

// parsePrimaryKey splits a primary-index key back into its FileId and
// logical-key parts. Callers must have already checked the key carries
// the expected table prefix.
func parsePrimaryKey(key []byte) (fileId uint32, logicalKey []byte) {
	fileId = binary.BigEndian.Uint32(key[2:6])
	logicalKey = key[6:]
	return
}

// secondaryKey builds the full secondary-index key for one row: the
// logical key followed by its owning FileId as a tie-breaker, since
// pebble (unlike a B-tree engine with native duplicate-key support)
// requires unique keys.
func (s *Store) secondaryKey(t catalog.Table, logicalKey []byte, fileId uint32) []byte {
	enc := s.encodeFileId(fileId)
	key := make([]byte, 0, 2+len(logicalKey)+4)
	key = append(key, tablePrefix(t, secondaryKind)...)
	key = append(key, logicalKey...)
	key = append(key, enc[:]...)
	return key
}

// secondaryKeyPrefix is the key prefix shared by every secondary row for
// one exact logical key, across every FileId that owns one.
func secondaryKeyPrefix(t catalog.Table, logicalKey []byte) []byte {
	key := make([]byte, 0, 2+len(logicalKey))
	key = append(key, tablePrefix(t, secondaryKind)...)
	key = append(key, logicalKey...)
	return key
}

// parseSecondaryKey splits a secondary-index key back into its logical
// key and owning FileId.
func parseSecondaryKey(key []byte) (logicalKey []byte, fileId uint32) {
	n := len(key)
	fileId = binary.BigEndian.Uint32(key[n-4:])
	logicalKey = key[2 : n-4]
	return
}

// prefixUpperBound returns the smallest key that sorts after every key
// beginning with prefix, for use as a pebble IterOptions.UpperBound. A
// prefix of all 0xff bytes has no such bound and yields nil, meaning
// unbounded above.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}
