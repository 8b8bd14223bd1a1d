package blockcache

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// BlockCache is a bounded, associative cache of device blocks. It implements
// a liveness-aware LRU eviction policy: an entry is only a candidate for
// eviction while no caller holds an outstanding Handle to it. Dirty entries
// are written back whenever they're dropped, whether by eviction, Remove, or
// Clear; eviction and Remove drop the entry even if that write-back fails
// (the failure is returned), while Clear keeps it resident.
//
// A BlockCache is safe for concurrent use by multiple goroutines. The entry
// map and stats are each protected by a short-held mutex and the clock is an
// atomic counter; device
// I/O happens while the map mutex is held, which is a deliberate
// simple-and-correct trade-off for the kernel context this is designed for
// rather than a fine-grained one.
type BlockCache struct {
	device   BlockDevice
	capacity int

	mapMu   sync.Mutex
	entries map[uint32]*cacheEntry

	statsMu sync.Mutex
	stats   CacheStats

	clock Clock
}

// New creates a BlockCache backed by device with room for at most capacity
// resident blocks. capacity must be at least 1.
func New(device BlockDevice, capacity int) *BlockCache {
	if capacity < 1 {
		panic("blockcache: capacity must be at least 1")
	}
	return &BlockCache{
		device:   device,
		capacity: capacity,
		entries:  make(map[uint32]*cacheEntry),
		clock:    NewMonotonicClock(),
	}
}

// Capacity returns the maximum number of blocks this cache will hold at
// once.
func (c *BlockCache) Capacity() int {
	return c.capacity
}

// Get returns a handle to block blockNo, loading it from the device on a
// miss. The returned Handle's Release method must be called once the
// caller is done with it.
//
// Get fails with LoadError if the device read fails, or CacheFull if the
// cache is full and every resident entry is pinned by another caller.
func (c *BlockCache) Get(blockNo uint32) (*Handle, error) {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()

	if entry, ok := c.entries[blockNo]; ok {
		entry.touch(c.clock.Now())
		entry.handle.refs++
		c.bumpStat(func(s *CacheStats) { s.Hits++ })
		return &Handle{cache: c, blockNo: blockNo, inner: entry.handle}, nil
	}

	c.bumpStat(func(s *CacheStats) { s.Misses++ })

	if err := c.evictIfNeeded(); err != nil {
		return nil, err
	}

	block := newCachedBlock(c.device.BlockSize())
	if err := c.device.ReadBlock(blockNo, block.data); err != nil {
		return nil, LoadError.WrapError(err)
	}

	entry := newCacheEntry(block, c.clock.Now())
	c.entries[blockNo] = entry
	entry.handle.refs++ // caller's reference, on top of the table's own

	return &Handle{cache: c, blockNo: blockNo, inner: entry.handle}, nil
}

// Insert unconditionally installs value for blockNo, evicting an existing
// entry first if the cache is full. Any previous entry for blockNo is
// replaced without being written back; Insert is meant for preloading
// values the caller already knows are clean. Fails with CacheFull if the
// cache is full and nothing is evictable.
func (c *BlockCache) Insert(blockNo uint32, value *CachedBlock) error {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()

	if _, exists := c.entries[blockNo]; !exists {
		if err := c.evictIfNeeded(); err != nil {
			return err
		}
	}

	c.entries[blockNo] = newCacheEntry(value, c.clock.Now())
	return nil
}

// Remove drops the entry for blockNo if present, writing it back first if
// it's dirty. The entry is removed from the map before the write-back is
// attempted, so a WriteError still leaves blockNo absent from the cache;
// the in-memory copy is lost rather than retried. A missing key is not an
// error.
func (c *BlockCache) Remove(blockNo uint32) error {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()

	entry, ok := c.entries[blockNo]
	if !ok {
		return nil
	}

	entry.handle.mu.Lock()
	defer entry.handle.mu.Unlock()

	dirty := entry.handle.value.IsDirty()
	delete(c.entries, blockNo)

	if dirty {
		return c.writeBackLocked(blockNo, entry.handle.value)
	}
	return nil
}

// Clear writes back every dirty entry and empties the cache. Entries that
// fail to write back remain resident, since a dirty entry is never dropped
// without a successful write-back; every failure encountered during the
// sweep is folded into a multierror.Error and returned together, rather
// than surfacing only the first one and hiding the rest.
func (c *BlockCache) Clear() error {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()

	var aggregate *multierror.Error

	for blockNo, entry := range c.entries {
		entry.handle.mu.Lock()
		block := entry.handle.value

		if !block.IsDirty() {
			entry.handle.mu.Unlock()
			delete(c.entries, blockNo)
			continue
		}

		err := c.writeBackLocked(blockNo, block)
		entry.handle.mu.Unlock()
		if err != nil {
			aggregate = multierror.Append(aggregate, err)
			continue
		}

		delete(c.entries, blockNo)
	}

	return aggregate.ErrorOrNil()
}

// Stats returns a snapshot of the cache's counters.
func (c *BlockCache) Stats() CacheStats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

func (c *BlockCache) bumpStat(f func(*CacheStats)) {
	c.statsMu.Lock()
	f(&c.stats)
	c.statsMu.Unlock()
}

// writeBackLocked writes block's contents to the device and marks it clean
// on success, incrementing the writebacks counter. Callers must hold the
// handle's mutex.
func (c *BlockCache) writeBackLocked(blockNo uint32, block *CachedBlock) error {
	if err := c.device.WriteBlock(blockNo, block.Data()); err != nil {
		return WriteError.WrapError(err)
	}
	block.MarkClean()
	c.bumpStat(func(s *CacheStats) { s.Writebacks++ })
	return nil
}

// evictIfNeeded frees a slot if the cache is at capacity. Callers must hold
// mapMu. It is a no-op if there's already room.
//
// The victim is removed from the map before its write-back is attempted, so
// a WriteError still leaves the slot freed; the victim's in-memory state is
// lost rather than left resident and stale.
func (c *BlockCache) evictIfNeeded() error {
	if len(c.entries) < c.capacity {
		return nil
	}

	victimBlock, victim, ok := c.findEvictionCandidate()
	if !ok {
		return CacheFull
	}

	victim.handle.mu.Lock()
	block := victim.handle.value
	dirty := block.IsDirty()

	delete(c.entries, victimBlock)
	c.bumpStat(func(s *CacheStats) { s.Evictions++ })

	if dirty {
		err := c.writeBackLocked(victimBlock, block)
		victim.handle.mu.Unlock()
		return err
	}
	victim.handle.mu.Unlock()
	return nil
}

// findEvictionCandidate picks the resident entry with the smallest
// (lastAccess, accessCount) key among those not currently pinned by an
// outside holder. Callers must hold mapMu.
func (c *BlockCache) findEvictionCandidate() (uint32, *cacheEntry, bool) {
	var bestBlock uint32
	var best *cacheEntry

	for blockNo, entry := range c.entries {
		if !entry.evictable() {
			continue
		}
		if best == nil || entry.lessForEviction(best) {
			bestBlock = blockNo
			best = entry
		}
	}

	return bestBlock, best, best != nil
}

// releaseHandle drops a caller's reference to a value handle, making it
// eligible for eviction again once nothing else holds it.
func (c *BlockCache) releaseHandle(blockNo uint32, handle *valueHandle) {
	c.mapMu.Lock()
	defer c.mapMu.Unlock()
	handle.refs--
}
