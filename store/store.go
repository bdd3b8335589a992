// Package store implements the unit mutator and query engine: the
// transactional, on-disk key/value store described by SPEC_FULL.md,
// built on github.com/cockroachdb/pebble — the teacher's own embedded
// storage engine — rather than SQLite (the original source's other
// variant).
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/utils"
)

// Options carries pebble tuning, the canonical table set, and ambient
// dependencies, mirroring the teacher's Options/Options.SetDefaults
// pattern (chotki.go).
type Options struct {
	// Tables selects which optional tables this Store carries. The zero
	// value is not useful; callers should start from
	// catalog.FullTableSet() and opt out explicitly.
	Tables catalog.TableSet

	// Logger receives structured log lines for pebble's WAL, flush,
	// compaction and background-error events, and for a swallowed Close
	// failure (spec.md §7's propagation policy). Defaults to utils.NewDefaultLogger(slog.LevelInfo).
	Logger utils.Logger

	// MaxRetries bounds the unit mutator's retry-on-busy loop (spec.md
	// §4.4, §9's "bounded number of attempts" redesign directive).
	MaxRetries int
	// RetryBaseDelay is the first backoff delay; it doubles each retry.
	RetryBaseDelay time.Duration

	// MemtableSizeBytes and L0CompactionThreshold tune pebble's own
	// flush/compaction scheduler, which stands in for the WAL-frame
	// auto-checkpoint callback spec.md §5 describes for the SQLite
	// variant (SPEC_FULL.md §9).
	MemtableSizeBytes     int64
	L0CompactionThreshold int
}

// SetDefaults fills unset fields with their production defaults.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = utils.NewDefaultLogger(slog.LevelInfo)
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 5
	}
	if o.RetryBaseDelay == 0 {
		o.RetryBaseDelay = 10 * time.Millisecond
	}
	if o.MemtableSizeBytes == 0 {
		o.MemtableSizeBytes = 4 << 20 // 4 MiB, pebble's own default order of magnitude
	}
	if o.L0CompactionThreshold == 0 {
		o.L0CompactionThreshold = 4
	}
}

// Store is the per-translation-unit symbol index: one pebble.DB carrying
// every logical table in Options.Tables, namespaced by the one-byte table
// prefixes in store/keys.go.
type Store struct {
	db   *pebble.DB
	dir  string
	opts Options

	// fileIdCache avoids re-encoding the same FileId's big-endian prefix
	// on every row of a long bundle from a long-running indexer that
	// keeps rewriting the same handful of units, the same
	// LRU-cache-in-front-of-a-hot-path idiom as the teacher's
	// IndexManager.classCache/hashIndexCache.
	fileIdCache *lru.Cache[uint32, [4]byte]
}

var writeOptions = &pebble.WriteOptions{Sync: false}

func newEventListener(log utils.Logger) pebble.EventListener {
	log = utils.WithComponent(log, "pebble")
	return pebble.EventListener{
		WALCreated: func(info pebble.WALCreateInfo) {
			log.Debug("wal created", "path", info.Path)
		},
		FlushEnd: func(info pebble.FlushInfo) {
			if info.Err != nil {
				log.Error("memtable flush failed", "err", info.Err)
				return
			}
			log.Debug("memtable flushed", "output", info.Output)
		},
		CompactionEnd: func(info pebble.CompactionInfo) {
			if info.Err != nil {
				log.Error("compaction failed", "err", info.Err)
				return
			}
			log.Debug("compaction finished", "job", info.JobID)
		},
		BackgroundError: func(err error) {
			log.Error("background engine error", "err", err)
		},
	}
}

func open(dir string, opts Options, create bool) (*Store, error) {
	opts.SetDefaults()

	pebbleOpts := &pebble.Options{
		ErrorIfNotExists: !create,
		ErrorIfExists:    create,
		MemTableSize:     uint64(opts.MemtableSizeBytes),
		L0CompactionThreshold: func() int {
			if opts.L0CompactionThreshold > 0 {
				return opts.L0CompactionThreshold
			}
			return 4
		}(),
		EventListener: func() *pebble.EventListener { l := newEventListener(opts.Logger); return &l }(),
	}

	db, err := pebble.Open(dir, pebbleOpts)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	cache, _ := lru.New[uint32, [4]byte](1024)

	s := &Store{
		db:          db,
		dir:         dir,
		opts:        opts,
		fileIdCache: cache,
	}
	return s, nil
}

// Create opens a brand-new store at dir, failing if one already exists.
func Create(dir string, opts Options) (*Store, error) {
	return open(dir, opts, true)
}

// Open opens an existing store at dir.
func Open(dir string, opts Options) (*Store, error) {
	return open(dir, opts, false)
}

// Close releases the store's handles. Per spec.md §7, a failure during
// cleanup is logged and swallowed rather than propagated.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	if err != nil {
		s.opts.Logger.Error("error closing store", "err", err)
	}
	s.db = nil
	return nil
}

// Dir returns the on-disk directory this store was opened against.
func (s *Store) Dir() string {
	return s.dir
}

// Tables returns the table set this store was configured with.
func (s *Store) Tables() catalog.TableSet {
	return s.opts.Tables
}

// Metrics returns the embedded engine's own metrics snapshot, the same
// value PebbleCollector reports to prometheus.
func (s *Store) Metrics() *pebble.Metrics {
	return s.db.Metrics()
}

// Collector builds a PebbleCollector over this store's engine. Callers
// register it with their own prometheus.Registry; Store does not
// register metrics globally on its own, the same opt-in convention the
// teacher leaves to its callers.
func (s *Store) Collector() *PebbleCollector {
	return NewPebbleCollector(s.db)
}

// WithDefaultArgs threads default structured-log args through ctx, the
// same context-scoped convention the teacher's utils.WithDefaultArgs
// uses so every log line inside one call carries, e.g., the fileId being
// mutated without every call site repeating it.
func WithDefaultArgs(ctx context.Context, args ...any) context.Context {
	return utils.WithDefaultArgs(ctx, args...)
}
