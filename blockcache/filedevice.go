package blockcache

import (
	"fmt"
	"io"
)

// FileDevice adapts an os.File (or any io.ReadWriteSeeker) into a
// BlockDevice, the same way the teacher's drivers/common.BlockDevice wraps
// a stream, but narrowed to the fixed three-method BlockDevice contract
// this cache sits on.
type FileDevice struct {
	stream      io.ReadWriteSeeker
	blockSize   uint32
	totalBlocks uint32
	startOffset int64
}

// NewFileDevice wraps stream as a BlockDevice with totalBlocks blocks of
// blockSize bytes each, starting startOffset bytes into the stream. Use a
// nonzero startOffset to skip a leading structure (e.g. a superblock or
// partition table) that isn't part of the addressable block range.
func NewFileDevice(stream io.ReadWriteSeeker, blockSize, totalBlocks uint32, startOffset int64) *FileDevice {
	return &FileDevice{
		stream:      stream,
		blockSize:   blockSize,
		totalBlocks: totalBlocks,
		startOffset: startOffset,
	}
}

// BlockSize implements BlockDevice.
func (d *FileDevice) BlockSize() uint32 {
	return d.blockSize
}

func (d *FileDevice) checkBounds(blockNo uint32, bufLen int) error {
	if blockNo >= d.totalBlocks {
		return fmt.Errorf("block %d not in [0, %d)", blockNo, d.totalBlocks)
	}
	if bufLen != int(d.blockSize) {
		return fmt.Errorf("buffer is %d bytes, want exactly %d", bufLen, d.blockSize)
	}
	return nil
}

func (d *FileDevice) seekToBlock(blockNo uint32) error {
	offset := d.startOffset + int64(blockNo)*int64(d.blockSize)
	_, err := d.stream.Seek(offset, io.SeekStart)
	return err
}

// ReadBlock implements BlockDevice.
func (d *FileDevice) ReadBlock(blockNo uint32, dst []byte) error {
	if err := d.checkBounds(blockNo, len(dst)); err != nil {
		return err
	}
	if err := d.seekToBlock(blockNo); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, dst)
	return err
}

// WriteBlock implements BlockDevice.
func (d *FileDevice) WriteBlock(blockNo uint32, src []byte) error {
	if err := d.checkBounds(blockNo, len(src)); err != nil {
		return err
	}
	if err := d.seekToBlock(blockNo); err != nil {
		return err
	}
	_, err := d.stream.Write(src)
	return err
}
