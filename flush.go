package minio

// Flush unmaps and unlinks every admitted payload and empties the cache;
// the access statistics are kept. Not safe to call concurrently with any other
// operation on this Cache from this process; see [cache.Cache.Flush].
func (m *Cache) Flush() error {
	return m.c.Flush()
}
