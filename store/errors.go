package store

import (
	"fmt"

	"github.com/ngkaho1234/rtags/catalog"
)

// Sentinel errors for the taxonomy spec.md §7 calls "precondition
// violation" and "not-found"; kept as package-level errors.New values the
// same way the teacher's chotki_errors package names its own.
var (
	// ErrClosed is returned by any Store operation attempted after Close.
	ErrClosed = fmt.Errorf("tagstore: store is closed")
	// ErrFileIdZero marks the precondition violation of updating or
	// deleting FileId 0, which is reserved and never a valid unit.
	ErrFileIdZero = fmt.Errorf("tagstore: fileId 0 is reserved")
	// ErrNilBundle marks the precondition violation of calling UpdateUnit
	// with a nil bundle.
	ErrNilBundle = fmt.Errorf("tagstore: nil UpdateUnitArgs")
)

// StoreError wraps a structural engine error (corruption, I/O failure,
// out-of-space, permission error) with the table and operation it
// happened under. The underlying transaction, if any, has already been
// aborted by the time this is returned — spec.md §7 guarantees the
// operation has no partial effect.
type StoreError struct {
	Op    string
	Table catalog.Table
	Err   error
}

func (e *StoreError) Error() string {
	if e.Table.Valid() {
		return fmt.Sprintf("tagstore: %s on table %s: %s", e.Op, e.Table.Name(), e.Err)
	}
	return fmt.Sprintf("tagstore: %s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError marks a serialization mismatch: value bytes that failed to
// deserialize during a scan. The scan that produced it terminates and is
// not retried.
type DecodeError struct {
	Table catalog.Table
	Key   []byte
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tagstore: decode failed on table %s key %q: %s", e.Table.Name(), e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
