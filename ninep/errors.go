package ninep

import "fmt"

// ProtocolError is the codec's sentinel error type, following the same
// string-constant shape as blockcache.CacheError and the teacher's
// disko.DiskoError.
type ProtocolError string

// InvalidDataLength indicates a truncated header, or a body whose length
// doesn't match the header's declared size.
const InvalidDataLength = ProtocolError("9p: invalid data length")

// MessageTooLarge indicates a declared size greater than MaxMessageSize.
const MessageTooLarge = ProtocolError("9p: message exceeds maximum size")

func (e ProtocolError) Error() string {
	return string(e)
}

// InvalidMessageTypeError indicates a type byte outside the defined
// MessageType range (100..127 inclusive), or one that is structurally
// valid but rejected on the receive path (Terror).
type InvalidMessageTypeError struct {
	Raw uint8
}

func (e InvalidMessageTypeError) Error() string {
	return fmt.Sprintf("9p: invalid message type byte %d", e.Raw)
}
