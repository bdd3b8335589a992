package store

import (
	"bytes"
	"math/rand"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/codec"
	"github.com/ngkaho1234/rtags/tags"
)

// UpdateUnitArgs bundles everything one translation unit contributes to
// every table, keyed by each table's own logical key type (spec.md
// §4.1's per-table key shapes). Symbols and Tokens are only populated
// when the Store was opened with the matching catalog.TableSet bit.
type UpdateUnitArgs struct {
	SymbolNames map[string]tags.LocationSet
	Targets     map[string]tags.TargetRefSet
	Usrs        map[string]tags.LocationSet

	Symbols map[tags.Location]tags.CursorInfo
	Tokens  map[uint32]tags.Token
}

// UpdateUnit replaces everything FileId previously contributed with the
// rows in bundle, as a single atomic batch: spec.md §4.4's
// delete-then-insert-then-commit algorithm. A bundle with no entries for
// a table still clears that table's old rows for FileId — this is how
// callers express "this unit no longer references anything here."
func (s *Store) UpdateUnit(fileId uint32, bundle *UpdateUnitArgs) error {
	if fileId == 0 {
		panic(ErrFileIdZero)
	}
	if bundle == nil {
		panic(ErrNilBundle)
	}
	if s.db == nil {
		return ErrClosed
	}

	start := time.Now()
	err := s.withRetry("update_unit", func() error {
		batch := s.db.NewBatch()
		defer batch.Close()

		if err := s.clearUnitLocked(batch, fileId); err != nil {
			return err
		}
		if err := s.writeBundleLocked(batch, fileId, bundle); err != nil {
			return err
		}
		return batch.Commit(writeOptions)
	})

	table := catalog.SymbolNames // representative label; the batch spans every table
	UnitUpdateDuration.WithLabelValues(table.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		UnitUpdateCount.WithLabelValues(table.Name(), "error").Inc()
		return errors.Wrap(err, "update unit")
	}
	UnitUpdateCount.WithLabelValues(table.Name(), "ok").Inc()
	return nil
}

// DeleteUnit removes every row FileId owns across every table, as a
// single atomic batch.
func (s *Store) DeleteUnit(fileId uint32) error {
	if fileId == 0 {
		panic(ErrFileIdZero)
	}
	if s.db == nil {
		return ErrClosed
	}

	err := s.withRetry("delete_unit", func() error {
		batch := s.db.NewBatch()
		defer batch.Close()

		if err := s.clearUnitLocked(batch, fileId); err != nil {
			return err
		}
		return batch.Commit(writeOptions)
	})
	if err != nil {
		UnitDeleteCount.WithLabelValues("error").Inc()
		return errors.Wrap(err, "delete unit")
	}
	UnitDeleteCount.WithLabelValues("ok").Inc()
	return nil
}

// withRetry runs fn with bounded exponential backoff on transient
// contention, per spec.md §9's retry-loop redesign directive, wrapping
// the final failure with github.com/pkg/errors the way the teacher's
// sync.go wraps its own commit errors.
func (s *Store) withRetry(table string, fn func() error) error {
	var err error
	delay := s.opts.RetryBaseDelay
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt == s.opts.MaxRetries {
			break
		}
		RetryCount.WithLabelValues(table).Inc()
		jitter := time.Duration(rand.Int63n(int64(delay) + 1))
		time.Sleep(delay + jitter)
		delay *= 2
	}
	return errors.Wrapf(err, "exhausted %d retries", s.opts.MaxRetries)
}

func isRetryable(err error) bool {
	// pebble surfaces contention and transient resource exhaustion as
	// plain errors rather than a typed "busy" sentinel; pebble.ErrNotFound
	// and decode failures are not retried because they are not transient.
	var decodeErr *DecodeError
	return err != nil && !errors.Is(err, pebble.ErrNotFound) && !errors.As(err, &decodeErr)
}

// clearUnitLocked deletes every row FileId owns, primary and secondary,
// across every table the store carries. It operates directly on batch
// and must only be called from within the retry loop above: on retry the
// whole batch (including this clear) is rebuilt from scratch.
func (s *Store) clearUnitLocked(batch *pebble.Batch, fileId uint32) error {
	for _, t := range s.opts.Tables.Ordered() {
		if err := s.clearTableUnitLocked(batch, t, fileId); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) clearTableUnitLocked(batch *pebble.Batch, t catalog.Table, fileId uint32) error {
	prefix := s.primaryFilePrefix(t, fileId)
	upper := prefixUpperBound(prefix)

	cur, err := newCursor(s.db, prefix, upper)
	if err != nil {
		return &StoreError{Op: "clear_unit", Table: t, Err: err}
	}
	defer cur.Close()

	var secondaryKeys [][]byte
	for ok := cur.first(); ok; ok = cur.next() {
		key := append([]byte(nil), cur.key()...)
		_, logicalKey := parsePrimaryKey(key)
		secondaryKeys = append(secondaryKeys, s.secondaryKey(t, logicalKey, fileId))
		if err := batch.Delete(key, nil); err != nil {
			return &StoreError{Op: "clear_unit", Table: t, Err: err}
		}
	}
	if err := cur.error(); err != nil {
		return &StoreError{Op: "clear_unit", Table: t, Err: err}
	}
	for _, sk := range secondaryKeys {
		if err := batch.Delete(sk, nil); err != nil {
			return &StoreError{Op: "clear_unit", Table: t, Err: err}
		}
	}
	return nil
}

// writeBundleLocked writes every row bundle contributes for fileId. It
// is only ever called immediately after clearUnitLocked within the same
// batch, so a row present in bundle always lands on a clean slate.
func (s *Store) writeBundleLocked(batch *pebble.Batch, fileId uint32, bundle *UpdateUnitArgs) error {
	if err := s.writeLocationSetTable(batch, catalog.SymbolNames, fileId, bundle.SymbolNames); err != nil {
		return err
	}
	if err := s.writeTargetTable(batch, catalog.Targets, fileId, bundle.Targets); err != nil {
		return err
	}
	if err := s.writeLocationSetTable(batch, catalog.Usrs, fileId, bundle.Usrs); err != nil {
		return err
	}
	if s.opts.Tables.WithSymbols {
		if err := s.writeSymbolsTable(batch, fileId, bundle.Symbols); err != nil {
			return err
		}
	}
	if s.opts.Tables.WithTokens {
		if err := s.writeTokensTable(batch, fileId, bundle.Tokens); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) putRow(batch *pebble.Batch, t catalog.Table, fileId uint32, logicalKey []byte, value []byte) error {
	if err := batch.Set(s.primaryKey(t, fileId, logicalKey), value, nil); err != nil {
		return &StoreError{Op: "put", Table: t, Err: err}
	}
	if err := batch.Set(s.secondaryKey(t, logicalKey, fileId), nil, nil); err != nil {
		return &StoreError{Op: "put", Table: t, Err: err}
	}
	return nil
}

// writeLocationSetTable serves both SymbolNames and Usrs, whose values
// are both tags.LocationSet keyed by an opaque string (symbol name or
// USR), sorted by key per spec.md §4.2 before they're written.
func (s *Store) writeLocationSetTable(batch *pebble.Batch, t catalog.Table, fileId uint32, rows map[string]tags.LocationSet) error {
	for _, key := range tags.SortedKeys(rows) {
		locs := rows[key]
		var buf bytes.Buffer
		if err := locs.Encode(codec.NewWriter(&buf)); err != nil {
			return &StoreError{Op: "encode", Table: t, Err: err}
		}
		if err := s.putRow(batch, t, fileId, []byte(key), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeTargetTable(batch *pebble.Batch, t catalog.Table, fileId uint32, rows map[string]tags.TargetRefSet) error {
	for _, key := range tags.SortedKeys(rows) {
		targets := rows[key]
		var buf bytes.Buffer
		if err := targets.Encode(codec.NewWriter(&buf)); err != nil {
			return &StoreError{Op: "encode", Table: t, Err: err}
		}
		if err := s.putRow(batch, t, fileId, []byte(key), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeSymbolsTable(batch *pebble.Batch, fileId uint32, rows map[tags.Location]tags.CursorInfo) error {
	keys := make([]tags.Location, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for _, loc := range keys {
		info := rows[loc]
		var keyBuf bytes.Buffer
		if err := loc.Encode(codec.NewWriter(&keyBuf)); err != nil {
			return &StoreError{Op: "encode", Table: catalog.Symbols, Err: err}
		}
		var valBuf bytes.Buffer
		if err := info.Encode(codec.NewWriter(&valBuf)); err != nil {
			return &StoreError{Op: "encode", Table: catalog.Symbols, Err: err}
		}
		if err := s.putRow(batch, catalog.Symbols, fileId, keyBuf.Bytes(), valBuf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeTokensTable(batch *pebble.Batch, fileId uint32, rows map[uint32]tags.Token) error {
	keys := tags.SortedKeys(rows)
	for _, tokenID := range keys {
		tok := rows[tokenID]
		var keyBuf bytes.Buffer
		kw := codec.NewWriter(&keyBuf)
		if err := kw.WriteUint32(tokenID); err != nil {
			return &StoreError{Op: "encode", Table: catalog.Tokens, Err: err}
		}
		var valBuf bytes.Buffer
		if err := tok.Encode(codec.NewWriter(&valBuf)); err != nil {
			return &StoreError{Op: "encode", Table: catalog.Tokens, Err: err}
		}
		if err := s.putRow(batch, catalog.Tokens, fileId, keyBuf.Bytes(), valBuf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
