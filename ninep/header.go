package ninep

// HeaderSize is the fixed on-wire size of a MessageHeader: size[4] type[1]
// tag[2].
const HeaderSize = 7

// MaxMessageSize is the largest frame, header included, that Parse will
// accept. Serialize does not check it and can produce larger frames.
const MaxMessageSize = 8192

// NoTag is the reserved tag used during version negotiation, before a
// client has any outstanding request to correlate.
const NoTag uint16 = 0xFFFF

// Version is the protocol version string negotiated by Tversion/Rversion.
const Version = "9P2000"

// MessageHeader is the 7-byte frame prefix common to every message: the
// total frame length (header included), the message type, and the tag
// correlating a request to its response.
type MessageHeader struct {
	Size uint32
	Type MessageType
	Tag  uint16
}

// decodeHeader reads a MessageHeader from the front of buf and returns it
// along with the remaining, unconsumed bytes. It fails with
// InvalidDataLength if buf is shorter than HeaderSize, or an
// InvalidMessageTypeError if the type byte isn't a defined MessageType.
func decodeHeader(buf []byte) (MessageHeader, []byte, error) {
	if len(buf) < HeaderSize {
		return MessageHeader{}, nil, InvalidDataLength
	}

	r := NewMessageReader(buf[:HeaderSize])
	size, err := r.ReadUint32()
	if err != nil {
		return MessageHeader{}, nil, InvalidDataLength
	}
	rawType, err := r.ReadUint8()
	if err != nil {
		return MessageHeader{}, nil, InvalidDataLength
	}
	tag, err := r.ReadUint16()
	if err != nil {
		return MessageHeader{}, nil, InvalidDataLength
	}

	msgType, ok := messageTypeFromByte(rawType)
	if !ok {
		return MessageHeader{}, nil, InvalidMessageTypeError{Raw: rawType}
	}

	return MessageHeader{Size: size, Type: msgType, Tag: tag}, buf[HeaderSize:], nil
}

// encodeHeader writes h's fields into the first HeaderSize bytes of w.
func encodeHeader(w *MessageWriter, h MessageHeader) error {
	if err := w.WriteUint32(h.Size); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(h.Type)); err != nil {
		return err
	}
	return w.WriteUint16(h.Tag)
}
