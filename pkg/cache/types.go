package cache

import "github.com/prometheus/client_golang/prometheus"

// Policy selects the cache's admission/replacement policy.
//
// Only [PolicyMinIO] is implemented. [PolicyFIFO] is a named placeholder
// for a policy that evicts, and is rejected by [Init].
type Policy int

const (
	// PolicyFIFO is defined but not implemented. Init rejects it.
	PolicyFIFO Policy = iota

	// PolicyMinIO admits a file on its first miss if it fits within the
	// configured limits, and never evicts.
	PolicyMinIO
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "FIFO"
	case PolicyMinIO:
		return "MinIO"
	default:
		return "unknown"
	}
}

// Config configures a cache at [Init] time. All fields are immutable for
// the cache's lifetime.
type Config struct {
	// CapacityBytes is the total data capacity C, in bytes.
	CapacityBytes uint64

	// MaxItemSize is the maximum single-item size M, in bytes. Zero means
	// unlimited (an item may be admitted as long as it fits in remaining
	// capacity).
	MaxItemSize uint64

	// AvgItemSize is the expected average item size A, in bytes, used only
	// to size the entry table (N_max = 2C/A). Zero means "use the default
	// of 100 KiB".
	AvgItemSize uint64

	// Policy selects the admission policy. Must be [PolicyMinIO].
	Policy Policy

	// Registerer, if non-nil, receives a set of Prometheus gauges mirroring
	// the cache's atomic counters. Each gauge reads the shared region live
	// on every scrape rather than caching a value.
	Registerer prometheus.Registerer

	// FlushLockPath, if non-empty, names a file used as an advisory
	// cross-process lock around Flush and Destroy. The directory spinlock
	// already serializes Flush (not Destroy) against Store/Load/Read within
	// one process; this additionally keeps two sibling processes from
	// running Flush at the same time. Leave empty for a single-process
	// cache, or when the caller already serializes Flush externally.
	FlushLockPath string
}

// Stats is a point-in-time snapshot of the cache's atomic counters.
//
// The invariant Hits+ColdMisses+CapacityMisses+Fails == Accesses holds for
// any snapshot taken when no concurrent Read is in flight; under
// concurrent access the components are eventually consistent with the
// total, per the relaxed-add semantics in the concurrency model.
type Stats struct {
	Accesses       uint64
	Hits           uint64
	ColdMisses     uint64
	CapacityMisses uint64
	Fails          uint64
}
