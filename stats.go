package minio

// Stats returns a point-in-time snapshot of the cache's access counters.
func (m *Cache) Stats() (Stats, error) {
	return m.c.Stats()
}

// UsedBytes returns the number of bytes currently admitted.
func (m *Cache) UsedBytes() (uint64, error) {
	return m.c.UsedBytes()
}
