package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullTableSetOrderedIncludesOptional(t *testing.T) {
	ts := FullTableSet()
	got := ts.Ordered()
	assert.Equal(t, []Table{SymbolNames, Targets, Usrs, Symbols, Tokens}, got)
}

func TestTableSetWithoutOptionalTables(t *testing.T) {
	ts := TableSet{}
	got := ts.Ordered()
	assert.Equal(t, []Table{SymbolNames, Targets, Usrs}, got)
	assert.False(t, ts.Has(Symbols))
	assert.False(t, ts.Has(Tokens))
	assert.True(t, ts.Has(Targets))
}

func TestTablePrefixesAreDistinct(t *testing.T) {
	seen := map[byte]Table{}
	for _, tb := range FullTableSet().Ordered() {
		p := tb.Prefix()
		if other, ok := seen[p]; ok {
			t.Fatalf("prefix %q shared between %s and %s", p, tb.Name(), other.Name())
		}
		seen[p] = tb
	}
}

func TestUnknownTableIsInvalid(t *testing.T) {
	var zero Table
	assert.False(t, zero.Valid())
	assert.Equal(t, "Unknown", zero.Name())
}
