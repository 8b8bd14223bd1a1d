package blockcache

import "sync"

// valueHandle is the shared, lockable reference to a cached value. The
// cache's entry table holds one reference for as long as the entry is
// resident; every caller that obtained a Handle via Get holds another. An
// entry is only a candidate for eviction while the cache is its sole owner,
// i.e. refs == 1. refs is protected by the owning cache's entry map mutex,
// never by mu, since eviction candidacy must be decided while that mutex is
// held.
//
// Lock order throughout this package is: the cache's entry map mutex first,
// then a handle's own mutex (mu). A caller holding only a Handle is free to
// Lock it without touching the map.
type valueHandle struct {
	mu    sync.Mutex
	value *CachedBlock
	refs  int
}

func newValueHandle(value *CachedBlock) *valueHandle {
	return &valueHandle{value: value, refs: 1}
}

// Handle is a caller-visible, shared reference to a cached block. Every
// Handle returned by BlockCache.Get must eventually
// have Release called on it, or the entry it refers to will stay pinned and
// ineligible for eviction forever.
type Handle struct {
	cache   *BlockCache
	blockNo uint32
	inner   *valueHandle
}

// Lock acquires the handle's mutex, guarding the underlying value against
// concurrent mutation by another holder of the same block.
func (h *Handle) Lock() {
	h.inner.mu.Lock()
}

// Unlock releases the handle's mutex.
func (h *Handle) Unlock() {
	h.inner.mu.Unlock()
}

// Value returns the underlying CachedBlock. Callers must hold the handle's
// lock (via Lock/Unlock) before reading or mutating it.
func (h *Handle) Value() *CachedBlock {
	return h.inner.value
}

// Release drops the caller's reference to the handle, making the
// underlying entry eligible for eviction again once no other caller holds
// it. Calling Release more than once for the same acquisition is a bug and
// will under-count references.
func (h *Handle) Release() {
	h.cache.releaseHandle(h.blockNo, h.inner)
}

// cacheEntry is the metadata the cache keeps alongside each resident
// handle: last-access tick and cumulative access count for LRU ordering,
// plus the shared handle itself.
type cacheEntry struct {
	lastAccess  uint64
	accessCount uint64
	handle      *valueHandle
}

func newCacheEntry(value *CachedBlock, now uint64) *cacheEntry {
	return &cacheEntry{
		lastAccess:  now,
		accessCount: 1,
		handle:      newValueHandle(value),
	}
}

// touch records a fresh access at tick now, advancing the entry's LRU
// ordering key.
func (e *cacheEntry) touch(now uint64) {
	e.lastAccess = now
	e.accessCount++
}

// evictable reports whether the cache is this entry's sole owner, i.e. no
// outside caller still holds the handle. Must be called with the entry map
// mutex held.
func (e *cacheEntry) evictable() bool {
	return e.handle.refs == 1
}

// lessForEviction orders two entries by the (lastAccess, accessCount) key
// spec'd for LRU-with-liveness: oldest access tick first, fewest accesses
// as the tiebreaker.
func (e *cacheEntry) lessForEviction(other *cacheEntry) bool {
	if e.lastAccess != other.lastAccess {
		return e.lastAccess < other.lastAccess
	}
	return e.accessCount < other.accessCount
}
