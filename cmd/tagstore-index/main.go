// Command tagstore-index drives Store.UpdateUnit/DeleteUnit from a small
// JSON bundle fixture. The JSON shape here is this tool's own invention,
// not a spec-mandated wire format (SPEC_FULL.md §11) — real indexers are
// expected to call the store package directly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/store"
	"github.com/ngkaho1234/rtags/tags"
)

// bundleFile is the on-disk JSON shape this tool accepts:
//
//	{
//	  "fileId": 7,
//	  "symbolNames": {"foo::bar": [{"fileId":7,"line":1,"column":1}]},
//	  "targets":     {"foo::bar": [{"loc":{"fileId":7,"line":1,"column":1},"kind":1,"isDefinition":true}]},
//	  "usrs":        {"c:@F@bar": [{"fileId":7,"line":1,"column":1}]}
//	}
type bundleFile struct {
	FileId      uint32                          `json:"fileId"`
	SymbolNames map[string][]jsonLocation        `json:"symbolNames"`
	Targets     map[string][]jsonTargetRef       `json:"targets"`
	Usrs        map[string][]jsonLocation        `json:"usrs"`
}

type jsonLocation struct {
	FileId uint32 `json:"fileId"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

func (l jsonLocation) toLocation() tags.Location {
	return tags.Location{FileId: l.FileId, Line: l.Line, Column: l.Column}
}

type jsonTargetRef struct {
	Loc          jsonLocation `json:"loc"`
	Kind         uint16       `json:"kind"`
	IsDefinition bool         `json:"isDefinition"`
}

func (t jsonTargetRef) toTargetRef() tags.TargetRef {
	return tags.TargetRef{Loc: t.Loc.toLocation(), Kind: t.Kind, IsDefinition: t.IsDefinition}
}

func toLocationSets(in map[string][]jsonLocation) map[string]tags.LocationSet {
	out := make(map[string]tags.LocationSet, len(in))
	for k, locs := range in {
		set := make(tags.LocationSet, 0, len(locs))
		for _, l := range locs {
			set = append(set, l.toLocation())
		}
		out[k] = set
	}
	return out
}

func toTargetSets(in map[string][]jsonTargetRef) map[string]tags.TargetRefSet {
	out := make(map[string]tags.TargetRefSet, len(in))
	for k, refs := range in {
		set := make(tags.TargetRefSet, 0, len(refs))
		for _, r := range refs {
			set = append(set, r.toTargetRef())
		}
		out[k] = set
	}
	return out
}

func main() {
	dbDir := flag.String("db", "", "store directory")
	bundlePath := flag.String("bundle", "", "JSON bundle file")
	deleteOnly := flag.Bool("delete", false, "delete the unit named by -fileid instead of updating it")
	fileIdFlag := flag.Uint("fileid", 0, "fileId to delete (only with -delete)")
	flag.Parse()

	if *dbDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: tagstore-index -db <dir> -bundle <file.json>")
		os.Exit(2)
	}

	s, err := store.Open(*dbDir, store.Options{Tables: catalog.FullTableSet()})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer s.Close()

	if *deleteOnly {
		if *fileIdFlag == 0 {
			fmt.Fprintln(os.Stderr, "-fileid is required with -delete")
			os.Exit(2)
		}
		if err := s.DeleteUnit(uint32(*fileIdFlag)); err != nil {
			fmt.Fprintln(os.Stderr, "delete unit:", err)
			os.Exit(1)
		}
		return
	}

	if *bundlePath == "" {
		fmt.Fprintln(os.Stderr, "-bundle is required unless -delete is given")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*bundlePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read bundle:", err)
		os.Exit(1)
	}

	var bf bundleFile
	if err := json.Unmarshal(raw, &bf); err != nil {
		fmt.Fprintln(os.Stderr, "parse bundle:", err)
		os.Exit(1)
	}
	if bf.FileId == 0 {
		fmt.Fprintln(os.Stderr, "bundle fileId must be non-zero")
		os.Exit(2)
	}

	args := &store.UpdateUnitArgs{
		SymbolNames: toLocationSets(bf.SymbolNames),
		Targets:     toTargetSets(bf.Targets),
		Usrs:        toLocationSets(bf.Usrs),
	}
	if err := s.UpdateUnit(bf.FileId, args); err != nil {
		fmt.Fprintln(os.Stderr, "update unit:", err)
		os.Exit(1)
	}
	fmt.Printf("updated fileId %d: %d symbolNames, %d targets, %d usrs\n",
		bf.FileId, len(args.SymbolNames), len(args.Targets), len(args.Usrs))
}
