package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gustrain/minio/pkg/shm"
)

// Flush unmaps and unlinks every admitted payload and clears the
// directory and the used-bytes and entry counters. The access statistics
// reported by Stats are left unchanged.
// It is not safe to call concurrently with Store, Load, Read, or Contains
// from this process — the directory spinlock is held for the entire
// operation precisely so those calls block rather than race, but Flush
// still expects the caller to keep its own callers from issuing new
// requests meant for a cache that is mid-reset.
//
// Payload unlinks run in parallel via an errgroup bounded by
// flushConcurrency, so tearing down a cache with many live entries doesn't
// serialize on one unlink syscall at a time while still collecting the
// first error encountered.
func (c *Cache) Flush() error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	if c.flushGuard != nil {
		if err := c.flushGuard.Lock(); err != nil {
			return fmt.Errorf("cache: acquiring flush guard: %w", err)
		}
		defer c.flushGuard.Unlock()
	}

	c.dir.lock.Lock()
	defer c.dir.lock.Unlock()

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(flushConcurrency)

	for idx := uint64(0); idx < c.nMax; idx++ {
		if !c.table.isLive(idx) {
			continue
		}

		idx := idx
		g.Go(func() error {
			return c.unlinkEntry(idx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	c.dir.clear()
	atomicStoreU64At(c.buf, offUsed, 0)
	atomicStoreU64At(c.buf, offEntries, 0)

	return nil
}

// flushConcurrency bounds how many payload unlinks Flush runs at once.
const flushConcurrency = 8

// unlinkEntry tears down one live slot's payload under its bucket lock,
// then resets the slot so Flush leaves no stale metadata behind.
func (c *Cache) unlinkEntry(idx uint64) error {
	bucket := c.locks.at(c.table.bucketID(idx))
	bucket.Lock()
	defer bucket.Unlock()

	if !c.table.isLive(idx) {
		return nil
	}

	name := shm.PayloadName(c.table.path(idx))
	if err := shm.Unlink(name); err != nil {
		return fmt.Errorf("unlink %q: %w", name, err)
	}

	c.table.reset(idx)

	return nil
}
