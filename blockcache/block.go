package blockcache

// CachedBlock is an in-memory copy of one device block. Its length always
// equals the owning cache's device's block size. Any mutation through Data
// must go through a method that sets the dirty flag; reads never do.
type CachedBlock struct {
	data  []byte
	dirty bool
}

var _ CacheableItem = (*CachedBlock)(nil)

// newCachedBlock allocates a zero-initialized, clean block of the given
// size. Callers fill it from the device before handing it to a caller.
func newCachedBlock(size uint32) *CachedBlock {
	return &CachedBlock{data: make([]byte, size)}
}

// NewCachedBlock allocates a zero-initialized, clean block of the given
// size for use with BlockCache.Insert.
func NewCachedBlock(size uint32) *CachedBlock {
	return newCachedBlock(size)
}

// NewCachedBlockFromData wraps an existing buffer as a clean block, without
// copying it, for use with BlockCache.Insert. The caller must not retain
// another reference to data that mutates it outside the block's own
// methods.
func NewCachedBlockFromData(data []byte) *CachedBlock {
	return &CachedBlock{data: data}
}

// Data returns a read-only view of the block's contents. Reading through
// this slice must never set the dirty flag; callers who need to mutate the
// block must go through MutableData.
func (b *CachedBlock) Data() []byte {
	return b.data
}

// MutableData marks the block dirty and returns a slice over its backing
// buffer. Any write the caller makes through the returned slice is assumed
// to be a real mutation.
func (b *CachedBlock) MutableData() []byte {
	b.MarkDirty()
	return b.data
}

// IsDirty reports whether the block's in-memory contents differ from the
// device.
func (b *CachedBlock) IsDirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag. The cache calls this after a successful
// write-back.
func (b *CachedBlock) MarkClean() {
	b.dirty = false
}

// MarkDirty sets the dirty flag.
func (b *CachedBlock) MarkDirty() {
	b.dirty = true
}
