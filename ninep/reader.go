package ninep

import (
	"bytes"
	"encoding/binary"
	"io"
)

// MessageReader is a small cursor over a message payload, handing out the
// 9P2000 primitive wire types in order. It's handed to each variant's
// deserializer already positioned just past the 7-byte header.
type MessageReader struct {
	r *bytes.Reader
}

// NewMessageReader wraps data (the payload bytes following the header) for
// sequential decoding.
func NewMessageReader(data []byte) *MessageReader {
	return &MessageReader{r: bytes.NewReader(data)}
}

// Remaining returns how many bytes are left unread. Deserializers that
// ignore trailing bytes by design should still check this against what
// they expect; the codec invariant that residual length equals size-7 is
// already enforced by Parse before a deserializer runs.
func (r *MessageReader) Remaining() int {
	return r.r.Len()
}

func wrapShortRead(err error) error {
	if err != nil {
		return InvalidDataLength
	}
	return nil
}

// ReadUint8 reads a single byte.
func (r *MessageReader) ReadUint8() (uint8, error) {
	var v uint8
	if err := binary.Read(r.r, binary.LittleEndian, &v); err != nil {
		return 0, wrapShortRead(err)
	}
	return v, nil
}

// ReadUint16 reads a little-endian uint16.
func (r *MessageReader) ReadUint16() (uint16, error) {
	var v uint16
	if err := binary.Read(r.r, binary.LittleEndian, &v); err != nil {
		return 0, wrapShortRead(err)
	}
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *MessageReader) ReadUint32() (uint32, error) {
	var v uint32
	if err := binary.Read(r.r, binary.LittleEndian, &v); err != nil {
		return 0, wrapShortRead(err)
	}
	return v, nil
}

// ReadUint64 reads a little-endian uint64.
func (r *MessageReader) ReadUint64() (uint64, error) {
	var v uint64
	if err := binary.Read(r.r, binary.LittleEndian, &v); err != nil {
		return 0, wrapShortRead(err)
	}
	return v, nil
}

// ReadBytes reads exactly n raw bytes.
func (r *MessageReader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, wrapShortRead(err)
	}
	return buf, nil
}

// ReadString reads a 9P2000 string: a uint16 byte count followed by that
// many bytes, interpreted as UTF-8.
func (r *MessageReader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadQid reads a 13-byte Qid: type[1] version[4] path[8].
func (r *MessageReader) ReadQid() (Qid, error) {
	typ, err := r.ReadUint8()
	if err != nil {
		return Qid{}, err
	}
	version, err := r.ReadUint32()
	if err != nil {
		return Qid{}, err
	}
	path, err := r.ReadUint64()
	if err != nil {
		return Qid{}, err
	}
	return Qid{Type: typ, Version: version, Path: path}, nil
}

// ReadQidList reads a uint16 count followed by that many Qids, the shape
// used by Rwalk.
func (r *MessageReader) ReadQidList() ([]Qid, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	qids := make([]Qid, n)
	for i := range qids {
		qids[i], err = r.ReadQid()
		if err != nil {
			return nil, err
		}
	}
	return qids, nil
}

// ReadStringList reads a uint16 count followed by that many 9P2000
// strings, the shape used by Twalk's wname array.
func (r *MessageReader) ReadStringList() ([]string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for i := range names {
		names[i], err = r.ReadString()
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

// ReadStat reads a `stat[n]` field: a uint16 byte count n, followed by n
// bytes holding a self-describing Stat record (whose own leading size
// field is redundant with n, per the 9P2000 wire format).
func (r *MessageReader) ReadStat() (Stat, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return Stat{}, err
	}
	blob, err := r.ReadBytes(int(n))
	if err != nil {
		return Stat{}, err
	}
	return decodeStat(blob)
}
