package cache

// directory.go implements the hash directory: an open-addressed table of
// (hash, slot index) buckets guarded by a single spinlock. The directory
// never stores a key or a payload directly — a hit only tells the caller
// which entry-table slot to read, under that slot's bucket lock.

type directory struct {
	buf         []byte
	off         int
	bucketCount uint64
	lock        spinlock
}

func newDirectory(buf []byte, off int, bucketCount uint64, lock spinlock) directory {
	return directory{buf: buf, off: off, bucketCount: bucketCount, lock: lock}
}

func (d directory) bucketOffset(i uint64) int {
	return d.off + int(i)*bucketSize()
}

// lookup takes the directory spinlock, probes for path, and releases the
// lock before returning. Safe for callers that only need to know whether
// path is present (Contains) — any caller that goes on to touch the
// slot's payload must use lookupHandoff instead, so the bucket lock is
// taken before the directory lock is released.
func (d directory) lookup(path string, table entryTable) (slot uint64, found bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.probeLocked(path, table)
}

// lookupHandoff takes the directory spinlock, probes for path, and — if
// found — calls takeBucket(slot) before releasing the directory lock. The
// caller's takeBucket must acquire the slot's bucket lock synchronously,
// so the directory lock is never free while a reader is still deciding
// which bucket lock to take (the hand-off Cache.Load depends on).
func (d directory) lookupHandoff(path string, table entryTable, takeBucket func(slot uint64)) (found bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	slot, found := d.probeLocked(path, table)
	if found {
		takeBucket(slot)
	}

	return found
}

// probeLocked runs the open-addressing probe for path. Callers must hold
// d.lock already.
func (d directory) probeLocked(path string, table entryTable) (slot uint64, found bool) {
	h := fnv1a64([]byte(path))

	start := h % d.bucketCount
	for i := uint64(0); i < d.bucketCount; i++ {
		idx := (start + i) % d.bucketCount
		rec := d.buf[d.bucketOffset(idx):]

		if atomicLoadU64At(rec, bucketOffState) == bucketStateEmpty {
			return 0, false
		}

		if atomicLoadU64At(rec, bucketOffHash) == h {
			candidate := atomicLoadU64At(rec, bucketOffSlot)
			if table.isLive(candidate) && table.path(candidate) == path {
				return candidate, true
			}
		}
	}

	return 0, false
}

// insert takes the directory spinlock, probes for the first empty bucket,
// and publishes (hash, slot) there. Capacity guarantees (bucketCount is
// always > N_max) make termination within bucketCount probes certain.
func (d directory) insert(path string, slot uint64) {
	h := fnv1a64([]byte(path))

	d.lock.Lock()
	defer d.lock.Unlock()

	start := h % d.bucketCount
	for i := uint64(0); i < d.bucketCount; i++ {
		idx := (start + i) % d.bucketCount
		rec := d.buf[d.bucketOffset(idx):]

		if atomicLoadU64At(rec, bucketOffState) == bucketStateEmpty {
			atomicStoreU64At(rec, bucketOffHash, h)
			atomicStoreU64At(rec, bucketOffSlot, slot)
			atomicStoreU64At(rec, bucketOffState, bucketStateOccupied)

			return
		}
	}

	// Unreachable under the capacity invariant: bucketCount is sized to
	// roughly 2x N_max, and admission never reserves more than N_max slots.
	panic("cache: directory full, capacity invariant violated")
}

// clear resets every bucket to empty. Callers must hold d.lock already
// (Flush holds it for its entire duration); clear does not take it itself.
func (d directory) clear() {
	for i := uint64(0); i < d.bucketCount; i++ {
		rec := d.buf[d.bucketOffset(i):]
		atomicStoreU64At(rec, bucketOffState, bucketStateEmpty)
	}
}
