// Package testing holds test doubles used by the blockcache tests: an
// in-memory BlockDevice and a small helper for building randomized
// fixtures. It mirrors the role the teacher's own
// testing package played for its (non-LRU) block cache, adapted to the new
// BlockDevice contract.
package testing

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CreateRandomImage returns bytesPerBlock*totalBlocks bytes of random data,
// or fails the test and aborts.
func CreateRandomImage(bytesPerBlock, totalBlocks uint32, t *testing.T) []byte {
	backingData := make([]byte, bytesPerBlock*totalBlocks)
	_, err := rand.Read(backingData)
	require.NoErrorf(
		t,
		err,
		"failed to initialize %d blocks of size %d with random bytes",
		totalBlocks,
		bytesPerBlock,
	)
	return backingData
}

// MockBlockDevice is an in-memory stand-in for a real block device,
// implementing blockcache.BlockDevice. It wraps its backing storage in a
// bytesextra.ReadWriteSeeker the same way the teacher's own
// drivers/common/blockdevice.go wraps a stream, rather than indexing a raw
// []byte directly, so tests exercise the same Seek/Read/Write path a real
// driver would.
type MockBlockDevice struct {
	mu          sync.Mutex
	stream      io.ReadWriteSeeker
	blockSize   uint32
	totalBlocks uint32
	writable    bool
	failReads   bool
	failWrites  bool
}

// NewMockBlockDevice creates a device with the given geometry. If backing is
// nil, it's filled with random data. If writable is false, WriteBlock always
// fails.
func NewMockBlockDevice(blockSize, totalBlocks uint32, writable bool, backing []byte, t *testing.T) *MockBlockDevice {
	if backing == nil {
		backing = CreateRandomImage(blockSize, totalBlocks, t)
	}
	require.Equal(t, int(blockSize*totalBlocks), len(backing), "backing store is the wrong size")

	return &MockBlockDevice{
		stream:      bytesextra.NewReadWriteSeeker(backing),
		blockSize:   blockSize,
		totalBlocks: totalBlocks,
		writable:    writable,
	}
}

// BlockSize implements blockcache.BlockDevice.
func (d *MockBlockDevice) BlockSize() uint32 {
	return d.blockSize
}

// FailReads makes every subsequent ReadBlock call fail, for exercising
// blockcache.LoadError paths.
func (d *MockBlockDevice) FailReads(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failReads = fail
}

// FailWrites makes every subsequent WriteBlock call fail, for exercising
// blockcache.WriteError paths.
func (d *MockBlockDevice) FailWrites(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failWrites = fail
}

func (d *MockBlockDevice) checkBounds(blockNo uint32, bufLen int) error {
	if blockNo >= d.totalBlocks {
		return fmt.Errorf("block %d not in [0, %d)", blockNo, d.totalBlocks)
	}
	if bufLen != int(d.blockSize) {
		return fmt.Errorf("buffer is %d bytes, want exactly %d", bufLen, d.blockSize)
	}
	return nil
}

// ReadBlock implements blockcache.BlockDevice.
func (d *MockBlockDevice) ReadBlock(blockNo uint32, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failReads {
		return fmt.Errorf("mock device: simulated read failure on block %d", blockNo)
	}
	if err := d.checkBounds(blockNo, len(dst)); err != nil {
		return err
	}

	if _, err := d.stream.Seek(int64(blockNo)*int64(d.blockSize), io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, dst)
	return err
}

// WriteBlock implements blockcache.BlockDevice.
func (d *MockBlockDevice) WriteBlock(blockNo uint32, src []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.writable {
		return fmt.Errorf("mock device: read-only, refusing write to block %d", blockNo)
	}
	if d.failWrites {
		return fmt.Errorf("mock device: simulated write failure on block %d", blockNo)
	}
	if err := d.checkBounds(blockNo, len(src)); err != nil {
		return err
	}

	if _, err := d.stream.Seek(int64(blockNo)*int64(d.blockSize), io.SeekStart); err != nil {
		return err
	}
	_, err := d.stream.Write(src)
	return err
}

// ReadBlockDirect reads a block bypassing any cache, for tests to assert on
// what actually landed on the "device" after a write-back.
func (d *MockBlockDevice) ReadBlockDirect(blockNo uint32) ([]byte, error) {
	buf := make([]byte, d.blockSize)
	err := d.ReadBlock(blockNo, buf)
	return buf, err
}
