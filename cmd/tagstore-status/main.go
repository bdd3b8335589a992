// Command tagstore-status pretty-prints a store's contents, grounded on
// original_source/src/StatusJob.cpp's delimiter-separated section dump.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

const delimiter = "*********************************"

func section(name string) {
	fmt.Println(delimiter)
	fmt.Println(name)
	fmt.Println(delimiter)
}

// dumpFileIds prints the union of FileIds that own at least one row in
// any table the store carries, the same roster StatusJob.cpp's "fileids"
// section lists before it dumps anything keyed by file.
func dumpFileIds(s *store.Store) error {
	section("fileids")

	seen := make(map[uint32]bool)
	var ids []uint32
	for _, t := range s.Tables().Ordered() {
		tids, err := s.FileIds(t)
		if err != nil {
			return err
		}
		for _, id := range tids {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Printf("  %d\n", id)
	}
	return nil
}

func dumpLocationSetTable(s *store.Store, t catalog.Table, name string) error {
	section(name)
	return s.QueryGlobalLocationSet(t, nil, true, func(fileId uint32, key string, locs tags.LocationSet) store.QueryResult {
		fmt.Printf("  %s (file %d): %v\n", key, fileId, locs)
		return store.Continue
	})
}

func dumpTargets(s *store.Store) error {
	section("targets")
	return s.QueryGlobalTargetRefSet(nil, true, func(fileId uint32, key string, refs tags.TargetRefSet) store.QueryResult {
		for _, r := range refs.Sorted() {
			fmt.Printf("  %s (file %d): kind=%d definition=%v rank=%d\n", key, fileId, r.Kind, r.IsDefinition, r.Rank())
		}
		return store.Continue
	})
}

func dumpInfo(s *store.Store, runID uuid.UUID) {
	section("info")
	fmt.Printf("  run: %s\n", runID)
	fmt.Printf("  dir: %s\n", s.Dir())
	fmt.Printf("  tables: %+v\n", s.Tables())

	m := s.Metrics()
	fmt.Printf("  compactions: %d\n", m.Compact.Count)
	fmt.Printf("  memtable size: %d bytes\n", m.MemTable.Size)
	fmt.Printf("  wal files: %d\n", m.WAL.Files)
}

func main() {
	dbDir := flag.String("db", "", "store directory")
	flag.Parse()

	if *dbDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: tagstore-status -db <dir>")
		os.Exit(2)
	}

	s, err := store.Open(*dbDir, store.Options{Tables: catalog.FullTableSet()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer s.Close()

	runID := uuid.New()

	if err := dumpFileIds(s); err != nil {
		abort(err)
	}
	if err := dumpLocationSetTable(s, catalog.SymbolNames, "symbolnames"); err != nil {
		abort(err)
	}
	if err := dumpTargets(s); err != nil {
		abort(err)
	}
	if err := dumpLocationSetTable(s, catalog.Usrs, "usrs"); err != nil {
		abort(err)
	}
	dumpInfo(s, runID)
}

func abort(err error) {
	var decodeErr *store.DecodeError
	if errors.As(err, &decodeErr) {
		fmt.Fprintln(os.Stderr, "status aborted, row failed to decode:", decodeErr)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "status:", err)
	os.Exit(1)
}
