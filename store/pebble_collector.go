package store

import (
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

// pebbleGauge names one pebble.Metrics field this collector exports and
// how to read it. Unlike the teacher's pebble_collector.go, which
// declares one struct field plus one Collect stanza per metric,
// PebbleCollector holds a single slice of these and both Describe and
// Collect just range over it — adding a metric here means adding one
// entry, not touching three places.
type pebbleGauge struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	read      func(*pebble.Metrics) float64
}

// PebbleCollector exports the embedded engine's own compaction/memtable/
// WAL metrics to prometheus under the tagstore_pebble_ namespace, read
// fresh from pebble.DB.Metrics() on every scrape rather than cached.
type PebbleCollector struct {
	db     *pebble.DB
	gauges []pebbleGauge
}

func NewPebbleCollector(db *pebble.DB) *PebbleCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("tagstore_pebble_"+name, help, nil, nil)
	}
	counter := func(name, help string, read func(*pebble.Metrics) float64) pebbleGauge {
		return pebbleGauge{desc: desc(name, help), valueType: prometheus.CounterValue, read: read}
	}
	gauge := func(name, help string, read func(*pebble.Metrics) float64) pebbleGauge {
		return pebbleGauge{desc: desc(name, help), valueType: prometheus.GaugeValue, read: read}
	}

	return &PebbleCollector{
		db: db,
		gauges: []pebbleGauge{
			counter("compaction_count_total", "Total number of compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.Count) }),
			counter("compaction_default_count_total", "Total number of default compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.DefaultCount) }),
			counter("compaction_elision_only_total", "Total number of elision-only compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.ElisionOnlyCount) }),
			counter("compaction_move_total", "Total number of move compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.MoveCount) }),
			counter("compaction_read_total", "Total number of read compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.ReadCount) }),
			counter("compaction_rewrite_total", "Total number of rewrite compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.RewriteCount) }),
			counter("compaction_multilevel_total", "Total number of multi-level compactions performed",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.MultiLevelCount) }),
			gauge("compaction_estimated_debt_bytes", "Estimated number of bytes that need to be compacted to reach a stable state",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.EstimatedDebt) }),
			gauge("compaction_in_progress_bytes", "Number of bytes being compacted currently",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.InProgressBytes) }),
			gauge("compaction_marked_files_total", "Number of files marked for compaction",
				func(m *pebble.Metrics) float64 { return float64(m.Compact.MarkedFiles) }),

			gauge("memtable_size_bytes", "Current size of the memtable in bytes",
				func(m *pebble.Metrics) float64 { return float64(m.MemTable.Size) }),
			gauge("memtable_count_total", "Current count of memtables",
				func(m *pebble.Metrics) float64 { return float64(m.MemTable.Count) }),
			gauge("memtable_zombie_size_bytes", "Size of zombie memtables in bytes",
				func(m *pebble.Metrics) float64 { return float64(m.MemTable.ZombieSize) }),
			gauge("memtable_zombie_count_total", "Count of zombie memtables",
				func(m *pebble.Metrics) float64 { return float64(m.MemTable.ZombieCount) }),

			gauge("wal_files_total", "Number of live WAL files",
				func(m *pebble.Metrics) float64 { return float64(m.WAL.Files) }),
			gauge("wal_obsolete_files_total", "Number of obsolete WAL files",
				func(m *pebble.Metrics) float64 { return float64(m.WAL.ObsoleteFiles) }),
			gauge("wal_size_bytes", "Size of live WAL data in bytes",
				func(m *pebble.Metrics) float64 { return float64(m.WAL.Size) }),
			counter("wal_bytes_in_total", "Total logical bytes written to the WAL",
				func(m *pebble.Metrics) float64 { return float64(m.WAL.BytesIn) }),
			counter("wal_bytes_written_total", "Total physical bytes written to the WAL",
				func(m *pebble.Metrics) float64 { return float64(m.WAL.BytesWritten) }),
		},
	}
}

func (pc *PebbleCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range pc.gauges {
		ch <- g.desc
	}
}

func (pc *PebbleCollector) Collect(ch chan<- prometheus.Metric) {
	m := pc.db.Metrics()
	for _, g := range pc.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, g.valueType, g.read(m))
	}
}
