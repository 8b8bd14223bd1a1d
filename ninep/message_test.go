package ninep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/kcore/ninep"
)

// A freshly negotiated session has no outstanding request yet, so Tversion
// conventionally carries NoTag. Serializing and re-parsing it must
// reproduce every field exactly.
func TestMessage__Tversion__RoundTripsWithNoTag(t *testing.T) {
	msg := ninep.Message{
		Type: ninep.TversionType,
		Tversion: &ninep.Tversion{
			Header:  ninep.MessageHeader{Tag: ninep.NoTag},
			Msize:   ninep.MaxMessageSize,
			Version: ninep.Version,
		},
	}

	wire, err := msg.Serialize()
	require.NoError(t, err)

	got, tag, err := ninep.Parse(wire)
	require.NoError(t, err)

	assert.Equal(t, ninep.NoTag, tag)
	require.NotNil(t, got.Tversion)
	assert.Equal(t, uint32(ninep.MaxMessageSize), got.Tversion.Msize)
	assert.Equal(t, ninep.Version, got.Tversion.Version)
	assert.Equal(t, ninep.TversionType, got.Type)
}

// Parse must reject a frame whose declared size exceeds MaxMessageSize,
// even if the buffer handed in is exactly that long.
func TestMessage__Parse__RejectsOversizeMessage(t *testing.T) {
	msg := ninep.Twrite{
		Header: ninep.MessageHeader{Tag: 1},
		Fid:    1,
		Offset: 0,
		Data:   make([]byte, ninep.MaxMessageSize),
	}
	wire, err := msg.Serialize()
	require.NoError(t, err)
	require.Greater(t, len(wire), ninep.MaxMessageSize)

	_, _, err = ninep.Parse(wire)
	assert.ErrorIs(t, err, ninep.MessageTooLarge)
}

// A frame whose body is shorter than its declared size is malformed and
// must be rejected rather than silently read past the buffer.
func TestMessage__Parse__RejectsTruncatedMessage(t *testing.T) {
	msg := ninep.Message{
		Type:    ninep.TclunkType,
		Tclunk:  &ninep.Tclunk{Header: ninep.MessageHeader{Tag: 5}, Fid: 42},
	}
	wire, err := msg.Serialize()
	require.NoError(t, err)

	_, _, err = ninep.Parse(wire[:len(wire)-1])
	assert.ErrorIs(t, err, ninep.InvalidDataLength)
}

// A buffer shorter than the header itself is rejected the same way.
func TestMessage__Parse__RejectsBufferShorterThanHeader(t *testing.T) {
	_, _, err := ninep.Parse([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ninep.InvalidDataLength)
}

// When a declared size both exceeds MaxMessageSize and mismatches the
// actual body length, InvalidDataLength takes priority: the length check
// runs before the size-bound check.
func TestMessage__Parse__LengthMismatchTakesPriorityOverOversize(t *testing.T) {
	// size = MaxMessageSize+1 (little-endian), type = TclunkType, tag = 0,
	// but the buffer itself is only HeaderSize bytes long.
	size := ninep.MaxMessageSize + 1
	buf := []byte{
		byte(size), byte(size >> 8), byte(size >> 16), byte(size >> 24),
		byte(ninep.TclunkType), 0, 0,
	}

	_, _, err := ninep.Parse(buf)
	assert.ErrorIs(t, err, ninep.InvalidDataLength)
	assert.NotErrorIs(t, err, ninep.MessageTooLarge)
}

// Terror's code is defined but it must never be accepted as a decoded
// message: receiving one on the wire is an error.
func TestMessage__Parse__RejectsTerror(t *testing.T) {
	// size=7 (little-endian), type=TerrorType(106), tag=0.
	buf := []byte{7, 0, 0, 0, byte(ninep.TerrorType), 0, 0}

	_, _, err := ninep.Parse(buf)
	var typeErr ninep.InvalidMessageTypeError
	assert.ErrorAs(t, err, &typeErr)
}

// A type byte outside the defined 100..127 range must be rejected too.
func TestMessage__Parse__RejectsUndefinedType(t *testing.T) {
	buf := []byte{7, 0, 0, 0, 255, 0, 0}
	_, _, err := ninep.Parse(buf)
	var typeErr ninep.InvalidMessageTypeError
	assert.ErrorAs(t, err, &typeErr)
}

// SetTag must update the tag of whichever variant is populated, leaving
// every other field untouched.
func TestMessage__SetTag__UpdatesEmbeddedHeader(t *testing.T) {
	msg := ninep.Message{
		Type: ninep.TreadType,
		Tread: &ninep.Tread{
			Header: ninep.MessageHeader{Tag: 1},
			Fid:    9,
			Offset: 128,
			Count:  64,
		},
	}

	msg.SetTag(77)
	assert.EqualValues(t, 77, msg.Tread.Header.Tag)
	assert.Equal(t, uint32(9), msg.Tread.Fid)
}

// ResponseType is defined only over T codes; an R code or Terror falls
// through to Rerror, matching what the reference implementation's default
// match arm does.
func TestMessageType__ResponseType__UndefinedCodesFallBackToRerror(t *testing.T) {
	assert.Equal(t, ninep.RversionType, ninep.TversionType.ResponseType())
	assert.Equal(t, ninep.RwstatType, ninep.TwstatType.ResponseType())
	assert.Equal(t, ninep.RerrorType, ninep.RversionType.ResponseType())
	assert.Equal(t, ninep.RerrorType, ninep.TerrorType.ResponseType())
}

func TestMessageType__IsRequest(t *testing.T) {
	assert.True(t, ninep.TattachType.IsRequest())
	assert.False(t, ninep.RattachType.IsRequest())
}

// Every transportable variant except Terror must round-trip through
// Serialize/Parse with its message type and tag intact.
func TestMessage__RoundTrip__AllVariants(t *testing.T) {
	qid := ninep.Qid{Type: ninep.QTFile, Version: 3, Path: 99}
	stat := ninep.Stat{
		Type: 0, Dev: 1, Qid: qid, Mode: ninep.DMDir, Atime: 10, Mtime: 20,
		Length: 0, Name: "dir", UID: "root", GID: "root", MUID: "root",
	}

	cases := []ninep.Message{
		{Type: ninep.TversionType, Tversion: &ninep.Tversion{Header: ninep.MessageHeader{Tag: ninep.NoTag}, Msize: 8192, Version: "9P2000"}},
		{Type: ninep.RversionType, Rversion: &ninep.Rversion{Header: ninep.MessageHeader{Tag: ninep.NoTag}, Msize: 8192, Version: "9P2000"}},
		{Type: ninep.TauthType, Tauth: &ninep.Tauth{Header: ninep.MessageHeader{Tag: 1}, Afid: 1, Uname: "u", Aname: "a"}},
		{Type: ninep.RauthType, Rauth: &ninep.Rauth{Header: ninep.MessageHeader{Tag: 1}, Aqid: qid}},
		{Type: ninep.TattachType, Tattach: &ninep.Tattach{Header: ninep.MessageHeader{Tag: 2}, Fid: 1, Afid: 0xFFFFFFFF, Uname: "u", Aname: "a"}},
		{Type: ninep.RattachType, Rattach: &ninep.Rattach{Header: ninep.MessageHeader{Tag: 2}, Qid: qid}},
		{Type: ninep.RerrorType, Rerror: &ninep.Rerror{Header: ninep.MessageHeader{Tag: 3}, Ename: "no such file"}},
		{Type: ninep.TflushType, Tflush: &ninep.Tflush{Header: ninep.MessageHeader{Tag: 4}, OldTag: 3}},
		{Type: ninep.RflushType, Rflush: &ninep.Rflush{Header: ninep.MessageHeader{Tag: 4}}},
		{Type: ninep.TwalkType, Twalk: &ninep.Twalk{Header: ninep.MessageHeader{Tag: 5}, Fid: 1, NewFid: 2, WNames: []string{"a", "b"}}},
		{Type: ninep.RwalkType, Rwalk: &ninep.Rwalk{Header: ninep.MessageHeader{Tag: 5}, WQids: []ninep.Qid{qid, qid}}},
		{Type: ninep.TopenType, Topen: &ninep.Topen{Header: ninep.MessageHeader{Tag: 6}, Fid: 1, Mode: 0}},
		{Type: ninep.RopenType, Ropen: &ninep.Ropen{Header: ninep.MessageHeader{Tag: 6}, Qid: qid, IOUnit: 512}},
		{Type: ninep.TcreateType, Tcreate: &ninep.Tcreate{Header: ninep.MessageHeader{Tag: 7}, Fid: 1, Name: "f", Perm: 0644, Mode: 1}},
		{Type: ninep.RcreateType, Rcreate: &ninep.Rcreate{Header: ninep.MessageHeader{Tag: 7}, Qid: qid, IOUnit: 512}},
		{Type: ninep.TreadType, Tread: &ninep.Tread{Header: ninep.MessageHeader{Tag: 8}, Fid: 1, Offset: 0, Count: 64}},
		{Type: ninep.RreadType, Rread: &ninep.Rread{Header: ninep.MessageHeader{Tag: 8}, Data: []byte("hello")}},
		{Type: ninep.TwriteType, Twrite: &ninep.Twrite{Header: ninep.MessageHeader{Tag: 9}, Fid: 1, Offset: 0, Data: []byte("world")}},
		{Type: ninep.RwriteType, Rwrite: &ninep.Rwrite{Header: ninep.MessageHeader{Tag: 9}, Count: 5}},
		{Type: ninep.TclunkType, Tclunk: &ninep.Tclunk{Header: ninep.MessageHeader{Tag: 10}, Fid: 1}},
		{Type: ninep.RclunkType, Rclunk: &ninep.Rclunk{Header: ninep.MessageHeader{Tag: 10}}},
		{Type: ninep.TremoveType, Tremove: &ninep.Tremove{Header: ninep.MessageHeader{Tag: 11}, Fid: 1}},
		{Type: ninep.RremoveType, Rremove: &ninep.Rremove{Header: ninep.MessageHeader{Tag: 11}}},
		{Type: ninep.TstatType, Tstat: &ninep.Tstat{Header: ninep.MessageHeader{Tag: 12}, Fid: 1}},
		{Type: ninep.RstatType, Rstat: &ninep.Rstat{Header: ninep.MessageHeader{Tag: 12}, Stat: stat}},
		{Type: ninep.TwstatType, Twstat: &ninep.Twstat{Header: ninep.MessageHeader{Tag: 13}, Fid: 1, Stat: stat}},
		{Type: ninep.RwstatType, Rwstat: &ninep.Rwstat{Header: ninep.MessageHeader{Tag: 13}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Type.String(), func(t *testing.T) {
			wire, err := tc.Serialize()
			require.NoError(t, err)

			got, tag, err := ninep.Parse(wire)
			require.NoError(t, err)
			assert.Equal(t, tc.Type, got.Type)

			wantTag, _ := tagOf(tc)
			assert.Equal(t, wantTag, tag)
		})
	}
}

func tagOf(msg ninep.Message) (uint16, bool) {
	switch msg.Type {
	case ninep.TversionType:
		return msg.Tversion.Header.Tag, true
	case ninep.RversionType:
		return msg.Rversion.Header.Tag, true
	case ninep.TauthType:
		return msg.Tauth.Header.Tag, true
	case ninep.RauthType:
		return msg.Rauth.Header.Tag, true
	case ninep.TattachType:
		return msg.Tattach.Header.Tag, true
	case ninep.RattachType:
		return msg.Rattach.Header.Tag, true
	case ninep.RerrorType:
		return msg.Rerror.Header.Tag, true
	case ninep.TflushType:
		return msg.Tflush.Header.Tag, true
	case ninep.RflushType:
		return msg.Rflush.Header.Tag, true
	case ninep.TwalkType:
		return msg.Twalk.Header.Tag, true
	case ninep.RwalkType:
		return msg.Rwalk.Header.Tag, true
	case ninep.TopenType:
		return msg.Topen.Header.Tag, true
	case ninep.RopenType:
		return msg.Ropen.Header.Tag, true
	case ninep.TcreateType:
		return msg.Tcreate.Header.Tag, true
	case ninep.RcreateType:
		return msg.Rcreate.Header.Tag, true
	case ninep.TreadType:
		return msg.Tread.Header.Tag, true
	case ninep.RreadType:
		return msg.Rread.Header.Tag, true
	case ninep.TwriteType:
		return msg.Twrite.Header.Tag, true
	case ninep.RwriteType:
		return msg.Rwrite.Header.Tag, true
	case ninep.TclunkType:
		return msg.Tclunk.Header.Tag, true
	case ninep.RclunkType:
		return msg.Rclunk.Header.Tag, true
	case ninep.TremoveType:
		return msg.Tremove.Header.Tag, true
	case ninep.RremoveType:
		return msg.Rremove.Header.Tag, true
	case ninep.TstatType:
		return msg.Tstat.Header.Tag, true
	case ninep.RstatType:
		return msg.Rstat.Header.Tag, true
	case ninep.TwstatType:
		return msg.Twstat.Header.Tag, true
	case ninep.RwstatType:
		return msg.Rwstat.Header.Tag, true
	default:
		return 0, false
	}
}
