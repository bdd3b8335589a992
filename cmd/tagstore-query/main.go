// Command tagstore-query drives Store.Query/QueryGlobal from the
// command line, printing one line per matching row.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/codec"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

func tableByName(name string) (catalog.Table, bool) {
	for _, t := range catalog.FullTableSet().Ordered() {
		if t.Name() == name {
			return t, true
		}
	}
	return 0, false
}

func printRawRow(t catalog.Table, fileId uint32, key, value []byte) {
	fmt.Printf("%s\tfile=%d\t%q\t%d bytes\n", t.Name(), fileId, key, len(value))
}

func runQuery(s *store.Store, t catalog.Table, global bool, fileId uint32, key []byte, prefix bool) error {
	switch t {
	case catalog.SymbolNames, catalog.Usrs:
		cb := func(fid uint32, k string, locs tags.LocationSet) store.QueryResult {
			fmt.Printf("%s\tfile=%d\t%s\t%v\n", t.Name(), fid, k, locs)
			return store.Continue
		}
		if global {
			return s.QueryGlobalLocationSet(t, key, prefix, cb)
		}
		return s.QueryLocationSet(t, fileId, key, prefix, cb)
	case catalog.Targets:
		cb := func(fid uint32, k string, refs tags.TargetRefSet) store.QueryResult {
			for _, r := range refs.Sorted() {
				fmt.Printf("%s\tfile=%d\t%s\tkind=%d definition=%v\n", t.Name(), fid, k, r.Kind, r.IsDefinition)
			}
			return store.Continue
		}
		if global {
			return s.QueryGlobalTargetRefSet(key, prefix, cb)
		}
		// Targets has no scoped-decode helper because a scoped Targets
		// lookup is rare enough (per-FileId target sets are mostly a
		// tagstore-status concern) that decoding it inline here is not
		// worth a fourth QueryLocationSet-shaped wrapper; fall back to
		// the raw scoped query and decode the same way QueryGlobal does.
		var decodeErr *store.DecodeError
		err := s.Query(t, fileId, key, prefix, func(fid uint32, k, v []byte) store.QueryResult {
			refs, derr := tags.DecodeTargetRefSet(codec.NewReader(v))
			if derr != nil {
				decodeErr = &store.DecodeError{Table: t, Key: append([]byte(nil), k...), Err: derr}
				return store.Stop
			}
			return cb(fid, string(k), refs)
		})
		if decodeErr != nil {
			return decodeErr
		}
		return err
	default:
		cb := func(fid uint32, k, v []byte) store.QueryResult {
			printRawRow(t, fid, k, v)
			return store.Continue
		}
		if global {
			return s.QueryGlobal(t, key, prefix, cb)
		}
		return s.Query(t, fileId, key, prefix, cb)
	}
}

func main() {
	dbDir := flag.String("db", "", "store directory")
	tableName := flag.String("table", "SymbolNames", "table to query")
	key := flag.String("key", "", "logical key to look up")
	prefix := flag.Bool("prefix", false, "treat -key as a prefix rather than an exact match")
	global := flag.Bool("global", false, "query across every unit instead of one fileId")
	fileId := flag.Uint("fileid", 0, "fileId to scope the query to (ignored with -global)")
	flag.Parse()

	if *dbDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: tagstore-query -db <dir> -table <name> -key <k> [-prefix] [-global | -fileid N]")
		os.Exit(2)
	}

	t, ok := tableByName(*tableName)
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown table:", *tableName)
		os.Exit(2)
	}

	s, err := store.Open(*dbDir, store.Options{Tables: catalog.FullTableSet()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer s.Close()

	if !*global && *fileId == 0 {
		fmt.Fprintln(os.Stderr, "-fileid is required unless -global is given")
		os.Exit(2)
	}

	if err := runQuery(s, t, *global, uint32(*fileId), []byte(*key), *prefix); err != nil {
		var decodeErr *store.DecodeError
		if errors.As(err, &decodeErr) {
			fmt.Fprintln(os.Stderr, "query aborted, row failed to decode:", decodeErr)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "query:", err)
		os.Exit(1)
	}
}
