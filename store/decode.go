package store

import (
	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/codec"
	"github.com/ngkaho1234/rtags/tags"
)

// LocationSetFunc is invoked once per decoded SymbolNames/Usrs row.
type LocationSetFunc func(fileId uint32, key string, locs tags.LocationSet) QueryResult

// TargetRefSetFunc is invoked once per decoded Targets row.
type TargetRefSetFunc func(fileId uint32, key string, refs tags.TargetRefSet) QueryResult

// QueryLocationSet is Query for SymbolNames/Usrs, decoding each row's
// value before handing it to cb. A row that fails to decode terminates
// the scan with a *DecodeError instead of calling cb (spec.md §7/§8:
// a serialization mismatch is surfaced as a typed DecodeError and the
// scan terminates; it is not retried).
func (s *Store) QueryLocationSet(t catalog.Table, fileId uint32, key []byte, isPrefix bool, cb LocationSetFunc) error {
	var decodeErr *DecodeError
	err := s.Query(t, fileId, key, isPrefix, func(fid uint32, k, v []byte) QueryResult {
		locs, derr := tags.DecodeLocationSet(codec.NewReader(v))
		if derr != nil {
			decodeErr = &DecodeError{Table: t, Key: append([]byte(nil), k...), Err: derr}
			return Stop
		}
		return cb(fid, string(k), locs)
	})
	if decodeErr != nil {
		return decodeErr
	}
	return err
}

// QueryGlobalLocationSet is QueryGlobal for SymbolNames/Usrs, decoding
// each row's value before handing it to cb. See QueryLocationSet for
// the decode-failure contract.
func (s *Store) QueryGlobalLocationSet(t catalog.Table, key []byte, isPrefix bool, cb LocationSetFunc) error {
	var decodeErr *DecodeError
	err := s.QueryGlobal(t, key, isPrefix, func(fid uint32, k, v []byte) QueryResult {
		locs, derr := tags.DecodeLocationSet(codec.NewReader(v))
		if derr != nil {
			decodeErr = &DecodeError{Table: t, Key: append([]byte(nil), k...), Err: derr}
			return Stop
		}
		return cb(fid, string(k), locs)
	})
	if decodeErr != nil {
		return decodeErr
	}
	return err
}

// QueryGlobalTargetRefSet is QueryGlobal over catalog.Targets, decoding
// each row's value before handing it to cb. See QueryLocationSet for
// the decode-failure contract.
func (s *Store) QueryGlobalTargetRefSet(key []byte, isPrefix bool, cb TargetRefSetFunc) error {
	var decodeErr *DecodeError
	err := s.QueryGlobal(catalog.Targets, key, isPrefix, func(fid uint32, k, v []byte) QueryResult {
		refs, derr := tags.DecodeTargetRefSet(codec.NewReader(v))
		if derr != nil {
			decodeErr = &DecodeError{Table: catalog.Targets, Key: append([]byte(nil), k...), Err: derr}
			return Stop
		}
		return cb(fid, string(k), refs)
	})
	if decodeErr != nil {
		return decodeErr
	}
	return err
}
