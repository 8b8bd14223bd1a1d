package blockcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/kcore/blockcache"
	ktesting "github.com/dargueta/kcore/testing"
)

const testBlockSize = 128

func TestBlockCache__New__PanicsOnZeroCapacity(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	assert.Panics(t, func() { blockcache.New(device, 0) })
}

// A cache of capacity 2 holding two released blocks must evict the one with
// the oldest access tick when a third block is fetched, since nothing is
// pinning either of them once Release has been called.
func TestBlockCache__Get__EvictsOldestOnCapacity(t *testing.T) {
	image := ktesting.CreateRandomImage(testBlockSize, 4, t)
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, image, t)
	cache := blockcache.New(device, 2)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Release()

	h1, err := cache.Get(1)
	require.NoError(t, err)
	h1.Release()

	// Cache is now full with blocks 0 and 1, neither pinned. Fetching block
	// 2 must evict whichever of 0/1 has the oldest access tick -- that's
	// block 0, touched first.
	h2, err := cache.Get(2)
	require.NoError(t, err)
	h2.Release()

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Evictions)

	// Re-fetching block 0 must be a miss now, proving it was the one
	// evicted rather than block 1.
	missesBefore := cache.Stats().Misses
	h0again, err := cache.Get(0)
	require.NoError(t, err)
	h0again.Release()
	assert.Equal(t, missesBefore+1, cache.Stats().Misses)
}

// A block that's still pinned by an outstanding Handle must never be
// chosen for eviction, even if it's the oldest entry.
func TestBlockCache__Get__PinnedEntryNotEvicted(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	pinned, err := cache.Get(0)
	require.NoError(t, err)
	defer pinned.Release()

	_, err = cache.Get(1)
	assert.ErrorIs(t, err, blockcache.CacheFull)
}

// Evicting a dirty block must write it back to the device before it's
// dropped, and the write must be visible through the device directly.
func TestBlockCache__Get__EvictionWritesBackDirtyBlock(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)

	h0.Lock()
	newData := h0.Value().MutableData()
	for i := range newData {
		newData[i] = 0xAB
	}
	h0.Unlock()
	h0.Release()

	h1, err := cache.Get(1)
	require.NoError(t, err)
	h1.Release()

	onDisk, err := device.ReadBlockDirect(0)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, testBlockSize), xor(onDisk, 0xAB))

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Writebacks)
}

func xor(data []byte, b byte) []byte {
	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = v ^ b
	}
	return out
}

// A clean block evicted to make room must never trigger a write-back.
func TestBlockCache__Get__EvictionSkipsWritebackWhenClean(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Release()

	h1, err := cache.Get(1)
	require.NoError(t, err)
	h1.Release()

	assert.Equal(t, uint64(0), cache.Stats().Writebacks)
}

func TestBlockCache__Get__LoadFailurePropagates(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	device.FailReads(true)
	cache := blockcache.New(device, 2)

	_, err := cache.Get(0)
	assert.ErrorContains(t, err, blockcache.LoadError.Error())
}

func TestBlockCache__Remove__WritesBackDirtyEntry(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)

	h, err := cache.Get(0)
	require.NoError(t, err)
	h.Lock()
	h.Value().MutableData()[0] = 0x42
	h.Unlock()
	h.Release()

	require.NoError(t, cache.Remove(0))

	onDisk, err := device.ReadBlockDirect(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), onDisk[0])
}

func TestBlockCache__Remove__MissingKeyIsNotAnError(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)
	assert.NoError(t, cache.Remove(3))
}

func TestBlockCache__Remove__PropagatesWriteFailure(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)

	h, err := cache.Get(0)
	require.NoError(t, err)
	h.Lock()
	h.Value().MutableData()[0] = 1
	h.Unlock()
	h.Release()

	device.FailWrites(true)
	err = cache.Remove(0)
	assert.ErrorContains(t, err, blockcache.WriteError.Error())
}

// Remove drops the entry from the map before attempting its write-back, so
// a failed write-back still leaves the block absent rather than resident:
// re-fetching it must be a miss that reloads from the device, not a hit
// returning the lost in-memory copy.
func TestBlockCache__Remove__StillDropsEntryOnWriteFailure(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)

	h, err := cache.Get(0)
	require.NoError(t, err)
	h.Lock()
	h.Value().MutableData()[0] = 1
	h.Unlock()
	h.Release()

	device.FailWrites(true)
	err = cache.Remove(0)
	assert.Error(t, err)
	device.FailWrites(false)

	missesBefore := cache.Stats().Misses
	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Release()
	assert.Equal(t, missesBefore+1, cache.Stats().Misses)
}

// evictIfNeeded drops the victim from the map before attempting its
// write-back, so a failed write-back during eviction still frees the slot
// instead of leaving the cache believing itself full over a stale entry.
func TestBlockCache__Get__EvictionStillFreesSlotOnWriteFailure(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Lock()
	h0.Value().MutableData()[0] = 1
	h0.Unlock()
	h0.Release()

	device.FailWrites(true)
	_, err = cache.Get(1)
	assert.ErrorContains(t, err, blockcache.WriteError.Error())
	device.FailWrites(false)

	// Block 0 was evicted despite the failed write-back, so the cache has
	// room again: fetching block 1 must now succeed rather than fail with
	// CacheFull.
	h1, err := cache.Get(1)
	require.NoError(t, err)
	h1.Release()
}

// Clear must flush every dirty entry and leave the cache empty.
func TestBlockCache__Clear__FlushesAllDirtyEntries(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)

	for i := uint32(0); i < 4; i++ {
		h, err := cache.Get(i)
		require.NoError(t, err)
		h.Lock()
		h.Value().MutableData()[0] = byte(i + 1)
		h.Unlock()
		h.Release()
	}

	require.NoError(t, cache.Clear())
	assert.Equal(t, uint64(4), cache.Stats().Writebacks)

	for i := uint32(0); i < 4; i++ {
		onDisk, err := device.ReadBlockDirect(i)
		require.NoError(t, err)
		assert.Equal(t, byte(i+1), onDisk[0])
	}
}

// When a write-back fails during Clear, the offending entry (and anything
// not yet attempted) must remain resident rather than being dropped.
func TestBlockCache__Clear__FailedWritebackEntryStaysResident(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 4)

	h, err := cache.Get(0)
	require.NoError(t, err)
	h.Lock()
	h.Value().MutableData()[0] = 9
	h.Unlock()
	h.Release()

	device.FailWrites(true)
	err = cache.Clear()
	assert.ErrorContains(t, err, blockcache.WriteError.Error())

	device.FailWrites(false)
	// Block 0 should still be resident and dirty: re-fetching it must be a
	// hit, not a miss that re-reads stale data from the device.
	hitsBefore := cache.Stats().Hits
	h0, err := cache.Get(0)
	require.NoError(t, err)
	assert.Equal(t, hitsBefore+1, cache.Stats().Hits)
	h0.Lock()
	assert.Equal(t, byte(9), h0.Value().Data()[0])
	assert.True(t, h0.Value().IsDirty())
	h0.Unlock()
	h0.Release()
}

func TestBlockCache__Insert__EvictsWhenFull(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Release()

	block := blockcache.NewCachedBlock(testBlockSize)
	require.NoError(t, cache.Insert(1, block))

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Evictions)
}

func TestBlockCache__Insert__FailsWhenFullAndPinned(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	defer h0.Release()

	block := blockcache.NewCachedBlock(testBlockSize)
	err = cache.Insert(1, block)
	assert.ErrorIs(t, err, blockcache.CacheFull)
}

// Releasing a handle must make its entry evictable again: once every
// holder has released, the cache itself is the sole owner.
func TestBlockCache__Release__MakesEntryEvictableAgain(t *testing.T) {
	device := ktesting.NewMockBlockDevice(testBlockSize, 4, true, nil, t)
	cache := blockcache.New(device, 1)

	h0, err := cache.Get(0)
	require.NoError(t, err)
	h0.Release()

	_, err = cache.Get(1)
	assert.NoError(t, err)
}
