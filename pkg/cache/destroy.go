package cache

import "fmt"

// Destroy unlinks every admitted payload and releases the cache's shared
// region. After Destroy returns (even with an error), the Cache is closed
// and every other method returns [ErrClosed].
func (c *Cache) Destroy() error {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.closeMu.Unlock()

	if c.flushGuard != nil {
		if err := c.flushGuard.Lock(); err != nil {
			return fmt.Errorf("cache: acquiring flush guard: %w", err)
		}
		defer c.flushGuard.Unlock()
	}

	var unlinkErr error
	for idx := uint64(0); idx < c.nMax; idx++ {
		if !c.table.isLive(idx) {
			continue
		}
		if err := c.unlinkEntry(idx); err != nil && unlinkErr == nil {
			unlinkErr = err
		}
	}

	if err := c.region.Free(); err != nil {
		if unlinkErr != nil {
			return fmt.Errorf("%w (also failed unlinking payloads: %v)", ErrIO, unlinkErr)
		}
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if unlinkErr != nil {
		return fmt.Errorf("%w: %v", ErrIO, unlinkErr)
	}

	return nil
}
