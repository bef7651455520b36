package cache

// Stats returns a point-in-time snapshot of the cache's counters. See
// [Stats] for the consistency caveat under concurrent access.
func (c *Cache) Stats() (Stats, error) {
	if err := c.checkOpen(); err != nil {
		return Stats{}, err
	}

	return Stats{
		Accesses:       atomicLoadU64At(c.buf, offAccesses),
		Hits:           atomicLoadU64At(c.buf, offHits),
		ColdMisses:     atomicLoadU64At(c.buf, offColdMisses),
		CapacityMisses: atomicLoadU64At(c.buf, offCapacityMisses),
		Fails:          atomicLoadU64At(c.buf, offFails),
	}, nil
}

// UsedBytes returns the number of bytes currently admitted.
func (c *Cache) UsedBytes() (uint64, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}

	return atomicLoadU64At(c.buf, offUsed), nil
}
