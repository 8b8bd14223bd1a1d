// Package blockcache provides a bounded, concurrency-safe cache that sits
// between a filesystem driver and a raw block device. It amortizes device
// I/O, serializes access to individual blocks, and guarantees write-back of
// dirty data before a block is dropped.
//
// All block numbers are zero-based 32-bit values.
package blockcache

// BlockDevice is the abstraction the cache sits on top of. It is the
// external collaborator contract: the cache never assumes anything about
// the device beyond these three operations.
//
// BlockSize must be constant for the lifetime of a BlockDevice. ReadBlock
// and WriteBlock operate on a single block identified by blockNo; the
// buffers passed to them are always exactly BlockSize() bytes long.
type BlockDevice interface {
	// BlockSize returns the size, in bytes, of a single block on this
	// device. It must not change once the device is in use by a cache.
	BlockSize() uint32

	// ReadBlock fills dst with the contents of block blockNo. dst is
	// guaranteed to be BlockSize() bytes long. On failure the contents of
	// dst are unspecified.
	ReadBlock(blockNo uint32, dst []byte) error

	// WriteBlock writes src to block blockNo. src is guaranteed to be
	// BlockSize() bytes long. A nil return means the write is durable to
	// whatever consistency level the device offers.
	WriteBlock(blockNo uint32, src []byte) error
}
