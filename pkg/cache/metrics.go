package cache

import "github.com/prometheus/client_golang/prometheus"

// metricSet mirrors the cache's atomic counters as Prometheus gauges. It is
// optional: Init only creates one when Config.Registerer is non-nil, so
// embedding a cache in a process that doesn't run a metrics server costs
// nothing beyond the bytes already in shared memory.
type metricSet struct {
	accesses       prometheus.GaugeFunc
	hits           prometheus.GaugeFunc
	coldMisses     prometheus.GaugeFunc
	capacityMisses prometheus.GaugeFunc
	fails          prometheus.GaugeFunc
	usedBytes      prometheus.GaugeFunc
	entries        prometheus.GaugeFunc
}

// newMetricSet builds and registers a metricSet against reg. Each gauge
// reads straight out of the shared region on every scrape rather than
// caching a value, so a scrape always reflects every sibling process's
// writes, not just this one's.
func newMetricSet(reg prometheus.Registerer, buf []byte) (*metricSet, error) {
	gaugeFunc := func(name, help string, off int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "minio_cache",
				Name:      name,
				Help:      help,
			},
			func() float64 { return float64(atomicLoadU64At(buf, off)) },
		)
	}

	m := &metricSet{
		accesses:       gaugeFunc("accesses_total", "Total Read calls.", offAccesses),
		hits:           gaugeFunc("hits_total", "Reads served entirely from shared memory.", offHits),
		coldMisses:     gaugeFunc("cold_misses_total", "Reads that fell through to the filesystem and were admitted.", offColdMisses),
		capacityMisses: gaugeFunc("capacity_misses_total", "Reads that fell through to the filesystem but could not be admitted.", offCapacityMisses),
		fails:          gaugeFunc("fails_total", "Reads that failed outright.", offFails),
		usedBytes:      gaugeFunc("used_bytes", "Bytes currently admitted.", offUsed),
		entries:        gaugeFunc("entries", "Entry-table slots reserved so far, including wasted ones.", offEntries),
	}

	for _, c := range []prometheus.Collector{
		m.accesses, m.hits, m.coldMisses, m.capacityMisses, m.fails, m.usedBytes, m.entries,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
