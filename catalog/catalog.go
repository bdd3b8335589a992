// Package catalog names the fixed set of logical tables the store knows
// about and the per-table choices (which build flavor includes it, what
// one-byte prefix its physical keys carry) that the rest of the store
// consults during every update and query.
package catalog

// Table identifies one logical table. The zero value is not a valid table.
type Table byte

const (
	// SymbolNames maps a fully qualified symbol name to the set of
	// locations where that name appears.
	SymbolNames Table = iota + 1
	// Targets maps a USR-like target identifier to the set of locations
	// that reference it, each tagged with a (kind, isDefinition) code.
	Targets
	// Usrs maps a USR string to the set of locations declaring it.
	Usrs
	// Symbols maps a source location to the CursorInfo record for the
	// symbol found there. Optional: present only in the "full" build
	// flavor (see SPEC_FULL.md §2).
	Symbols
	// Tokens maps a 32-bit token id to its Token record. Optional: present
	// only in the "full" build flavor.
	Tokens
)

// descriptor carries everything the store needs to know about one table:
// its display name and the one-byte prefix its physical pebble keys carry.
// Prefixes are chosen to be distinct printable bytes, the same convention
// the teacher uses for its own single-keyspace 'O'/'V' prefixes.
type descriptor struct {
	name   string
	prefix byte
}

var descriptors = map[Table]descriptor{
	SymbolNames: {name: "SymbolNames", prefix: 'N'},
	Targets:     {name: "Targets", prefix: 'T'},
	Usrs:        {name: "Usrs", prefix: 'U'},
	Symbols:     {name: "Symbols", prefix: 'S'},
	Tokens:      {name: "Tokens", prefix: 'K'},
}

// ordered is the fixed iteration order used everywhere a caller must walk
// every table deterministically, such as the unit mutator's per-table
// delete loop (spec.md §4.4 step 1).
var ordered = []Table{SymbolNames, Targets, Usrs, Symbols, Tokens}

// Name returns the table's display name, used in log lines and in
// StoreError/DecodeError messages.
func (t Table) Name() string {
	d, ok := descriptors[t]
	if !ok {
		return "Unknown"
	}
	return d.name
}

// Prefix returns the one-byte prefix this table's physical pebble keys
// (both primary and secondary) begin with.
func (t Table) Prefix() byte {
	d, ok := descriptors[t]
	if !ok {
		return 0
	}
	return d.prefix
}

// Valid reports whether t names a known table.
func (t Table) Valid() bool {
	_, ok := descriptors[t]
	return ok
}

// TableSet selects which of the two optional tables a given Store carries.
// SymbolNames, Targets, and Usrs are always present.
type TableSet struct {
	WithSymbols bool
	WithTokens  bool
}

// FullTableSet is the canonical "full" build flavor this implementation
// picks (SPEC_FULL.md §2): every optional table present.
func FullTableSet() TableSet {
	return TableSet{WithSymbols: true, WithTokens: true}
}

// Ordered returns the tables present under ts, in the fixed iteration
// order used for deterministic walks over every table.
func (ts TableSet) Ordered() []Table {
	out := make([]Table, 0, len(ordered))
	for _, tb := range ordered {
		switch tb {
		case Symbols:
			if !ts.WithSymbols {
				continue
			}
		case Tokens:
			if !ts.WithTokens {
				continue
			}
		}
		out = append(out, tb)
	}
	return out
}

// Has reports whether table tb is present under ts.
func (ts TableSet) Has(tb Table) bool {
	for _, t := range ts.Ordered() {
		if t == tb {
			return true
		}
	}
	return false
}
