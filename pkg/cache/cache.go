// Package cache implements the shared-memory, read-through file cache: a
// fixed-capacity store that admits a file's contents on first miss and
// serves every later access straight out of shared memory, visible to
// every process that inherited the mapping across a fork.
//
// The cache's own bookkeeping (entry table, hash directory, lock array) and
// every admitted payload live in memory obtained from pkg/shm, never in a
// process-private heap — a Cache value itself is just a set of offsets and
// locks layered over that memory, so it is only as "shared" as the mapping
// underneath it. Two Cache values constructed with Init and a
// fork-inherited mapping respectively see the exact same entries.
package cache

import (
	"fmt"
	"sync"

	"github.com/gofrs/flock"
	"github.com/gustrain/minio/pkg/shm"
)

// Cache is a handle onto a shared-memory cache region. The zero value is
// not usable; construct one with [Init].
type Cache struct {
	region *shm.Region
	buf    []byte

	capacityBytes uint64
	maxItemSize   uint64
	nMax          uint64
	policy        Policy

	table entryTable
	dir   directory
	locks bucketLocks

	metrics *metricSet

	// flushGuard serializes Flush/Destroy against sibling processes that
	// hold this cache open. It is advisory only: Flush is not safe to call
	// concurrently with itself across processes, and the directory
	// spinlock only serializes it against Store/Load/Read within this
	// address space.
	flushGuard *flock.Flock

	closeMu sync.Mutex
	closed  bool
}

// bucketLocks is a thin view over the entry-bucket lock array.
type bucketLocks struct {
	buf   []byte
	off   int
	count uint64
}

func newBucketLocks(buf []byte, off int, count uint64) bucketLocks {
	return bucketLocks{buf: buf, off: off, count: count}
}

func (b bucketLocks) at(id uint64) spinlock {
	return newSpinlock(b.buf, b.off+int(id%b.count)*lockStride)
}

// bucketIDFor derives the fixed entry-bucket lock index for a newly
// reserved slot by hashing the slot index itself, not the key. A second,
// independent hash keeps lock assignment from correlating with directory
// bucket assignment, which hashes the path.
func bucketIDFor(idx uint64, lockCount uint64) uint64 {
	var enc [8]byte
	for i := range enc {
		enc[i] = byte(idx >> (8 * i))
	}

	return fnv1a64(enc[:]) % lockCount
}

// Init allocates a new cache region sized for cfg and returns a handle to
// it. The returned region must be allocated before any process that needs
// to see this cache forks its workers — see the package doc comment.
func Init(cfg Config) (*Cache, error) {
	if cfg.CapacityBytes == 0 {
		return nil, fmt.Errorf("%w: capacity_bytes must be > 0", ErrInvalidConfig)
	}
	if cfg.Policy != PolicyMinIO {
		return nil, fmt.Errorf("%w: policy %s not implemented", ErrInvalidConfig, cfg.Policy)
	}

	avgItemSize := cfg.AvgItemSize
	if avgItemSize == 0 {
		avgItemSize = defaultAvgItemSize
	}

	nMax := (2 * cfg.CapacityBytes) / avgItemSize
	if nMax < 1 {
		return nil, fmt.Errorf("%w: capacity_bytes/avg_item_size too small to hold a single entry", ErrInvalidConfig)
	}

	bucketCount := computeBucketCount(nMax)
	lockCount := max(minBucketLocks, nMax/16)

	entRecSize := entrySize()
	bktRecSize := bucketSize()

	entryTableOff := headerSize
	bucketsOff := entryTableOff + int(nMax)*entRecSize
	locksOff := bucketsOff + int(bucketCount)*bktRecSize
	totalSize := locksOff + int(lockCount)*lockStride

	region, err := shm.Alloc(totalSize)
	if err != nil {
		return nil, fmt.Errorf("cache: allocating region: %w", err)
	}

	buf := region.Bytes()

	copy(buf[offMagic:offMagic+8], cacheMagic)
	atomicStoreU64At(buf, offCapacityBytes, cfg.CapacityBytes)
	atomicStoreU64At(buf, offMaxItemSize, cfg.MaxItemSize)
	atomicStoreU64At(buf, offSlotCapacity, nMax)
	atomicStoreU64At(buf, offBucketCount, bucketCount)
	atomicStoreU64At(buf, offLockCount, lockCount)
	atomicStoreU64At(buf, offPolicy, uint64(cfg.Policy))
	atomicStoreU64At(buf, offEntryTableOff, uint64(entryTableOff))
	atomicStoreU64At(buf, offBucketsOff, uint64(bucketsOff))
	atomicStoreU64At(buf, offLocksOff, uint64(locksOff))
	atomicStoreU64At(buf, offEntrySize, uint64(entRecSize))
	atomicStoreU64At(buf, offBucketSize, uint64(bktRecSize))
	atomicStoreU64At(buf, offLockStride, uint64(lockStride))

	c := attach(region, buf)

	if cfg.FlushLockPath != "" {
		c.flushGuard = flock.New(cfg.FlushLockPath)
	}

	if cfg.Registerer != nil {
		m, err := newMetricSet(cfg.Registerer, buf)
		if err != nil {
			return nil, fmt.Errorf("cache: registering metrics: %w", err)
		}
		c.metrics = m
	}

	return c, nil
}

// attach builds a Cache handle over an already-initialized region, reading
// every layout parameter back out of the header rather than assuming the
// caller's own Config. This is what lets a forked worker process, which
// inherits the mapping's bytes but starts with none of this package's Go
// state, rebuild an equivalent handle purely from what's in shared memory.
func attach(region *shm.Region, buf []byte) *Cache {
	nMax := atomicLoadU64At(buf, offSlotCapacity)
	bucketCount := atomicLoadU64At(buf, offBucketCount)
	lockCount := atomicLoadU64At(buf, offLockCount)
	entRecSize := int(atomicLoadU64At(buf, offEntrySize))
	_ = atomicLoadU64At(buf, offBucketSize)
	entryTableOff := int(atomicLoadU64At(buf, offEntryTableOff))
	bucketsOff := int(atomicLoadU64At(buf, offBucketsOff))
	locksOff := int(atomicLoadU64At(buf, offLocksOff))

	dirLock := newSpinlock(buf, offDirLock)
	table := newEntryTable(buf, entryTableOff, entRecSize, nMax)

	return &Cache{
		region:        region,
		buf:           buf,
		capacityBytes: atomicLoadU64At(buf, offCapacityBytes),
		maxItemSize:   atomicLoadU64At(buf, offMaxItemSize),
		nMax:          nMax,
		policy:        Policy(atomicLoadU64At(buf, offPolicy)),
		table:         table,
		dir:           newDirectory(buf, bucketsOff, bucketCount, dirLock),
		locks:         newBucketLocks(buf, locksOff, lockCount),
	}
}

func validatePath(path string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalid)
	}
	if len(path) >= MaxPathLength {
		return fmt.Errorf("%w: path longer than %d bytes", ErrInvalid, MaxPathLength-1)
	}

	return nil
}

// Contains reports whether path currently has a live directory entry. It
// takes and releases the directory spinlock; the result is a snapshot and
// may be stale by the time the caller acts on it.
func (c *Cache) Contains(path string) (bool, error) {
	if err := c.checkOpen(); err != nil {
		return false, err
	}
	if err := validatePath(path); err != nil {
		return false, err
	}

	_, found := c.dir.lookup(path, c.table)

	return found, nil
}

func (c *Cache) checkOpen() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	return nil
}

// reserveBytes performs the atomic fetch-and-add on `used`,
// rolling the counter back on overflow so a failed reservation never
// permanently shrinks remaining capacity — unlike reserve_slot, this
// counter is safe to roll back because overflowing it never publishes
// anything a reader could have already observed.
func (c *Cache) reserveBytes(size uint64) (offset uint64, ok bool) {
	newUsed := atomicAddU64At(c.buf, offUsed, size)
	if newUsed > c.capacityBytes {
		atomicAddU64At(c.buf, offUsed, ^(size - 1)) // atomic subtract
		return 0, false
	}

	return newUsed - size, true
}
