package blockcache

// CacheStats is a point-in-time snapshot of the cache's four monotonically
// non-decreasing counters. The only way to reset them is to construct a new
// cache.
type CacheStats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}
