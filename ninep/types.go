package ninep

// MessageType is a closed enumeration of the 28 defined 9P2000 message
// codes, 100 through 127 inclusive, alternating T (request, even) and R
// (response, odd).
//
// Each constant is named after its message with a Type suffix (e.g.
// TversionType) to keep it distinct from the payload struct of the same
// message (e.g. Tversion), which carries the typed fields for that
// message kind.
type MessageType uint8

const (
	TversionType MessageType = 100
	RversionType MessageType = 101
	TauthType    MessageType = 102
	RauthType    MessageType = 103
	TattachType  MessageType = 104
	RattachType  MessageType = 105
	TerrorType   MessageType = 106 // never appears on the wire
	RerrorType   MessageType = 107
	TflushType   MessageType = 108
	RflushType   MessageType = 109
	TwalkType    MessageType = 110
	RwalkType    MessageType = 111
	TopenType    MessageType = 112
	RopenType    MessageType = 113
	TcreateType  MessageType = 114
	RcreateType  MessageType = 115
	TreadType    MessageType = 116
	RreadType    MessageType = 117
	TwriteType   MessageType = 118
	RwriteType   MessageType = 119
	TclunkType   MessageType = 120
	RclunkType   MessageType = 121
	TremoveType  MessageType = 122
	RremoveType  MessageType = 123
	TstatType    MessageType = 124
	RstatType    MessageType = 125
	TwstatType   MessageType = 126
	RwstatType   MessageType = 127
)

// messageTypeFromByte validates a raw wire byte against the defined range
// and returns the corresponding MessageType.
func messageTypeFromByte(raw uint8) (MessageType, bool) {
	if raw < uint8(TversionType) || raw > uint8(RwstatType) {
		return 0, false
	}
	return MessageType(raw), true
}

// ResponseType maps a T message code to its paired R code. It is defined
// only over T codes; per the reference implementation this is derived
// from (the match arm for R-codes and Terror falls through to the default
// case), calling it with an R code or with Terror returns RerrorType
// rather than the code itself or a panic. Callers that already know they
// have an R code should not call this.
func (t MessageType) ResponseType() MessageType {
	switch t {
	case TversionType:
		return RversionType
	case TauthType:
		return RauthType
	case TattachType:
		return RattachType
	case TflushType:
		return RflushType
	case TwalkType:
		return RwalkType
	case TopenType:
		return RopenType
	case TcreateType:
		return RcreateType
	case TreadType:
		return RreadType
	case TwriteType:
		return RwriteType
	case TclunkType:
		return RclunkType
	case TremoveType:
		return RremoveType
	case TstatType:
		return RstatType
	case TwstatType:
		return RwstatType
	default:
		return RerrorType
	}
}

// IsRequest reports whether t is a T (request) code.
func (t MessageType) IsRequest() bool {
	return uint8(t)%2 == 0
}

func (t MessageType) String() string {
	switch t {
	case TversionType:
		return "Tversion"
	case RversionType:
		return "Rversion"
	case TauthType:
		return "Tauth"
	case RauthType:
		return "Rauth"
	case TattachType:
		return "Tattach"
	case RattachType:
		return "Rattach"
	case TerrorType:
		return "Terror"
	case RerrorType:
		return "Rerror"
	case TflushType:
		return "Tflush"
	case RflushType:
		return "Rflush"
	case TwalkType:
		return "Twalk"
	case RwalkType:
		return "Rwalk"
	case TopenType:
		return "Topen"
	case RopenType:
		return "Ropen"
	case TcreateType:
		return "Tcreate"
	case RcreateType:
		return "Rcreate"
	case TreadType:
		return "Tread"
	case RreadType:
		return "Rread"
	case TwriteType:
		return "Twrite"
	case RwriteType:
		return "Rwrite"
	case TclunkType:
		return "Tclunk"
	case RclunkType:
		return "Rclunk"
	case TremoveType:
		return "Tremove"
	case RremoveType:
		return "Rremove"
	case TstatType:
		return "Tstat"
	case RstatType:
		return "Rstat"
	case TwstatType:
		return "Twstat"
	case RwstatType:
		return "Rwstat"
	default:
		return "unknown"
	}
}
