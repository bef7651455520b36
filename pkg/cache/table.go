package cache

// table.go implements the entry table: a fixed-capacity array of entry
// records, bump-allocated via an atomic counter on n_entries. This is the
// sole storage for entry metadata — the directory (directory.go) only ever
// stores a slot index into this array.

// entryTable is a thin view over the region's entry-table section.
type entryTable struct {
	buf  []byte
	off  int // byte offset of the section's start within buf
	size int // bytes per record
	nMax uint64
}

func newEntryTable(buf []byte, off, size int, nMax uint64) entryTable {
	return entryTable{buf: buf, off: off, size: size, nMax: nMax}
}

func (t entryTable) recordOffset(idx uint64) int {
	return t.off + int(idx)*t.size
}

// reserveSlot performs an atomic fetch-and-add on the entry counter to
// claim a slot index. The counter is never rolled back, even when the
// post-increment value exceeds capacity — the slot is simply never
// initialized, and stays wasted until the next Flush.
func reserveSlot(buf []byte, nMax uint64) (idx uint64, ok bool) {
	newCount := atomicAddU64At(buf, offEntries, 1)
	if newCount > nMax {
		return 0, false
	}

	return newCount - 1, true
}

// init writes a newly-reserved slot's metadata and publishes it as live.
// Callers must have already reserved the byte range this entry occupies;
// init does not touch `used`.
//
// The publish (state store) happens after every other field write so a
// concurrent reader who observes state==live via an atomic load is
// guaranteed to see a fully-initialized record — Go's sync/atomic gives
// sequential consistency, which is strictly stronger than the
// acquire/release pairing this ordering requires.
func (t entryTable) init(idx uint64, path string, size, bucketID uint64) {
	rec := t.buf[t.recordOffset(idx):]

	atomicStoreU64At(rec, entryOffPathLen, uint64(len(path)))

	pathField := rec[entryOffPath : entryOffPath+MaxPathLength]
	clear(pathField)
	copy(pathField, path)

	atomicStoreU64At(rec, entryOffSize(t.size), size)
	atomicStoreU64At(rec, entryOffBucketID(t.size), bucketID)

	atomicStoreU64At(rec, entryOffState, entryStateLive)
}

// reset clears a slot back to uninitialized, for reuse after Flush.
func (t entryTable) reset(idx uint64) {
	rec := t.buf[t.recordOffset(idx):]
	clear(rec[:t.size])
}

// isLive reports whether the slot at idx has been published.
func (t entryTable) isLive(idx uint64) bool {
	rec := t.buf[t.recordOffset(idx):]

	return atomicLoadU64At(rec, entryOffState) == entryStateLive
}

// path returns the slot's key. Only valid if isLive(idx).
func (t entryTable) path(idx uint64) string {
	rec := t.buf[t.recordOffset(idx):]

	n := atomicLoadU64At(rec, entryOffPathLen)
	pathField := rec[entryOffPath : entryOffPath+MaxPathLength]

	return string(pathField[:n])
}

// payloadSize returns the slot's payload size. Only valid if isLive(idx).
func (t entryTable) payloadSize(idx uint64) uint64 {
	rec := t.buf[t.recordOffset(idx):]

	return atomicLoadU64At(rec, entryOffSize(t.size))
}

// bucketID returns the slot's fixed entry-bucket lock index. Only valid if
// isLive(idx).
func (t entryTable) bucketID(idx uint64) uint64 {
	rec := t.buf[t.recordOffset(idx):]

	return atomicLoadU64At(rec, entryOffBucketID(t.size))
}
