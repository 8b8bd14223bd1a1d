package ninep

import (
	"encoding/binary"
	"io"

	"github.com/noxer/bytewriter"
)

// MessageWriter serializes the 9P2000 primitive wire types, in order, into
// a fixed-size buffer allocated up front from the variant's computed wire
// size. It wraps a bytewriter.Writer the same way the teacher's on-disk
// structure builders (e.g. file_systems/unixv1/format.go) wrap a bounded
// slice instead of growing a buffer with repeated append.
type MessageWriter struct {
	w io.Writer
}

// NewMessageWriter allocates a buffer of exactly size bytes and returns a
// writer bounded to it, plus the buffer itself so the caller can return it
// once every field has been written.
func NewMessageWriter(size uint32) (*MessageWriter, []byte) {
	buf := make([]byte, size)
	return &MessageWriter{w: bytewriter.New(buf)}, buf
}

// WriteUint8 writes a single byte.
func (w *MessageWriter) WriteUint8(v uint8) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

// WriteUint16 writes a little-endian uint16.
func (w *MessageWriter) WriteUint16(v uint16) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

// WriteUint32 writes a little-endian uint32.
func (w *MessageWriter) WriteUint32(v uint32) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

// WriteUint64 writes a little-endian uint64.
func (w *MessageWriter) WriteUint64(v uint64) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

// WriteBytes writes raw bytes verbatim.
func (w *MessageWriter) WriteBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

// WriteString writes a 9P2000 string: a uint16 byte count followed by the
// string's bytes.
func (w *MessageWriter) WriteString(s string) error {
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

// WriteQid writes a 13-byte Qid: type[1] version[4] path[8].
func (w *MessageWriter) WriteQid(q Qid) error {
	if err := w.WriteUint8(q.Type); err != nil {
		return err
	}
	if err := w.WriteUint32(q.Version); err != nil {
		return err
	}
	return w.WriteUint64(q.Path)
}

// WriteQidList writes a uint16 count followed by each Qid.
func (w *MessageWriter) WriteQidList(qids []Qid) error {
	if err := w.WriteUint16(uint16(len(qids))); err != nil {
		return err
	}
	for _, q := range qids {
		if err := w.WriteQid(q); err != nil {
			return err
		}
	}
	return nil
}

// WriteStringList writes a uint16 count followed by each 9P2000 string.
func (w *MessageWriter) WriteStringList(names []string) error {
	if err := w.WriteUint16(uint16(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		if err := w.WriteString(name); err != nil {
			return err
		}
	}
	return nil
}

// WriteStat writes a `stat[n]` field: a uint16 byte count followed by the
// self-describing Stat blob.
func (w *MessageWriter) WriteStat(s Stat) error {
	blob := encodeStat(s)
	if err := w.WriteUint16(uint16(len(blob))); err != nil {
		return err
	}
	return w.WriteBytes(blob)
}
