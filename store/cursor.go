package store

import (
	"io"

	"github.com/cockroachdb/pebble"
)

// reader is the read-only subset of *pebble.DB and *pebble.Snapshot: the
// query scans (Query, QueryGlobal, FileIds) hand newCursor a snapshot
// (SPEC_FULL.md §9), while the unit mutator's clear step, which builds
// its own batch, hands it the live *pebble.DB.
type reader interface {
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
	Get(key []byte) ([]byte, io.Closer, error)
}

// cursor wraps a *pebble.Iterator as a scoped resource (spec.md §9): it
// is never returned to a caller outside this package, and every
// function that opens one defers its Close immediately, mirroring the
// teacher's own narrow, short-lived use of pebble iterators.
type cursor struct {
	it *pebble.Iterator
}

func newCursor(r reader, lower, upper []byte) (*cursor, error) {
	it, err := r.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return nil, err
	}
	return &cursor{it: it}, nil
}

func (c *cursor) seekGE(key []byte) bool {
	return c.it.SeekGE(key)
}

func (c *cursor) first() bool {
	return c.it.First()
}

func (c *cursor) valid() bool {
	return c.it.Valid()
}

func (c *cursor) next() bool {
	return c.it.Next()
}

func (c *cursor) key() []byte {
	return c.it.Key()
}

func (c *cursor) value() ([]byte, error) {
	return c.it.ValueAndErr()
}

func (c *cursor) error() error {
	return c.it.Error()
}

func (c *cursor) Close() error {
	return c.it.Close()
}
