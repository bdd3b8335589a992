package store_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ngkaho1234/rtags/catalog"
	"github.com/ngkaho1234/rtags/store"
)

func TestPebbleCollectorReportsDescribedMetrics(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Create(dir, store.Options{Tables: catalog.FullTableSet()})
	require.NoError(t, err)
	defer s.Close()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(s.Collector()))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["tagstore_pebble_memtable_size_bytes"])
	require.True(t, names["tagstore_pebble_wal_files_total"])
	require.True(t, names["tagstore_pebble_compaction_count_total"])

	descCh := make(chan *prometheus.Desc, 64)
	s.Collector().Describe(descCh)
	close(descCh)
	descCount := 0
	for range descCh {
		descCount++
	}
	require.Equal(t, len(families), descCount)
}
