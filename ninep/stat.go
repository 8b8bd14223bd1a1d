package ninep

import (
	"encoding/binary"
	"fmt"

	"github.com/boljen/go-bitmap"
)

// Stat permission bits carried in Stat.Mode's top byte, mirroring the Qid
// type bits.
const (
	DMDir    uint32 = 0x80000000
	DMAppend uint32 = 0x40000000
	DMExcl   uint32 = 0x20000000
	DMTmp    uint32 = 0x04000000
)

// Stat is a directory entry / file metadata record, used by Rstat and
// Twstat. It mirrors the 9P2000 `stat` structure verbatim.
type Stat struct {
	Type   uint16
	Dev    uint32
	Qid    Qid
	Mode   uint32
	Atime  uint32
	Mtime  uint32
	Length uint64
	Name   string
	UID    string
	GID    string
	MUID   string
}

// modeBits exposes Stat.Mode as a bit.Bitmap the same way the teacher's own
// blockcache package exposes block presence as a bitmap, so the permission
// bits can be queried by name instead of with raw mask arithmetic.
func (s Stat) modeBits() bitmap.Bitmap {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, s.Mode)
	return bitmap.Bitmap(buf)
}

// modeBitIndex converts a DM* mask (which names exactly one bit) into the
// little-endian bit index go-bitmap expects.
func modeBitIndex(mask uint32) int {
	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) != 0 {
			return i
		}
	}
	panic(fmt.Sprintf("ninep: mask %#x names no bit", mask))
}

// IsDir reports whether this entry is a directory.
func (s Stat) IsDir() bool {
	return s.modeBits().Get(modeBitIndex(DMDir))
}

// IsAppendOnly reports whether this entry is append-only.
func (s Stat) IsAppendOnly() bool {
	return s.modeBits().Get(modeBitIndex(DMAppend))
}

// IsExclusive reports whether this entry may only be opened by one client
// at a time.
func (s Stat) IsExclusive() bool {
	return s.modeBits().Get(modeBitIndex(DMExcl))
}

// IsTemporary reports whether this entry should not be included in
// periodic backups.
func (s Stat) IsTemporary() bool {
	return s.modeBits().Get(modeBitIndex(DMTmp))
}

// fixedStatFields is the byte length of a Stat's fixed-width fields after
// its own leading size[2]: type[2] dev[4] qid[13] mode[4] atime[4]
// mtime[4] length[8].
const fixedStatFields = 2 + 4 + QidSize + 4 + 4 + 4 + 8

func statStringsLen(s Stat) int {
	return 2 + len(s.Name) + 2 + len(s.UID) + 2 + len(s.GID) + 2 + len(s.MUID)
}

// encodeStat produces the self-contained Stat blob: its own size[2] field
// (the length of everything that follows it) followed by the fixed fields
// and the four strings, in order.
func encodeStat(s Stat) []byte {
	bodyLen := fixedStatFields + statStringsLen(s)
	total := 2 + bodyLen

	w, buf := NewMessageWriter(uint32(total))
	_ = w.WriteUint16(uint16(bodyLen))
	_ = w.WriteUint16(s.Type)
	_ = w.WriteUint32(s.Dev)
	_ = w.WriteQid(s.Qid)
	_ = w.WriteUint32(s.Mode)
	_ = w.WriteUint32(s.Atime)
	_ = w.WriteUint32(s.Mtime)
	_ = w.WriteUint64(s.Length)
	_ = w.WriteString(s.Name)
	_ = w.WriteString(s.UID)
	_ = w.WriteString(s.GID)
	_ = w.WriteString(s.MUID)
	return buf
}

// decodeStat parses a Stat blob as produced by encodeStat. The leading
// size field is read but not otherwise validated against len(blob); a
// mismatch there is a protocol-level oddity some servers tolerate, and
// this implementation mirrors that leniency by trusting blob's own length.
func decodeStat(blob []byte) (Stat, error) {
	r := NewMessageReader(blob)

	if _, err := r.ReadUint16(); err != nil { // self size, unused
		return Stat{}, err
	}
	var s Stat
	var err error

	if s.Type, err = r.ReadUint16(); err != nil {
		return Stat{}, err
	}
	if s.Dev, err = r.ReadUint32(); err != nil {
		return Stat{}, err
	}
	if s.Qid, err = r.ReadQid(); err != nil {
		return Stat{}, err
	}
	if s.Mode, err = r.ReadUint32(); err != nil {
		return Stat{}, err
	}
	if s.Atime, err = r.ReadUint32(); err != nil {
		return Stat{}, err
	}
	if s.Mtime, err = r.ReadUint32(); err != nil {
		return Stat{}, err
	}
	if s.Length, err = r.ReadUint64(); err != nil {
		return Stat{}, err
	}
	if s.Name, err = r.ReadString(); err != nil {
		return Stat{}, err
	}
	if s.UID, err = r.ReadString(); err != nil {
		return Stat{}, err
	}
	if s.GID, err = r.ReadString(); err != nil {
		return Stat{}, err
	}
	if s.MUID, err = r.ReadString(); err != nil {
		return Stat{}, err
	}
	return s, nil
}
