package ninep

// Message is a tagged union over the 27 transportable 9P2000 message
// kinds (every defined T/R pair except Terror, which is never sent on the
// wire). Type selects which of the pointer fields below is populated;
// exactly one is non-nil for any valid Message.
type Message struct {
	Type MessageType

	Tversion *Tversion
	Rversion *Rversion
	Tauth    *Tauth
	Rauth    *Rauth
	Tattach  *Tattach
	Rattach  *Rattach
	Rerror   *Rerror
	Tflush   *Tflush
	Rflush   *Rflush
	Twalk    *Twalk
	Rwalk    *Rwalk
	Topen    *Topen
	Ropen    *Ropen
	Tcreate  *Tcreate
	Rcreate  *Rcreate
	Tread    *Tread
	Rread    *Rread
	Twrite   *Twrite
	Rwrite   *Rwrite
	Tclunk   *Tclunk
	Rclunk   *Rclunk
	Tremove  *Tremove
	Rremove  *Rremove
	Tstat    *Tstat
	Rstat    *Rstat
	Twstat   *Twstat
	Rwstat   *Rwstat
}

func fromTversion(m Tversion) Message { return Message{Type: TversionType, Tversion: &m} }
func fromRversion(m Rversion) Message { return Message{Type: RversionType, Rversion: &m} }
func fromTauth(m Tauth) Message       { return Message{Type: TauthType, Tauth: &m} }
func fromRauth(m Rauth) Message       { return Message{Type: RauthType, Rauth: &m} }
func fromTattach(m Tattach) Message   { return Message{Type: TattachType, Tattach: &m} }
func fromRattach(m Rattach) Message   { return Message{Type: RattachType, Rattach: &m} }
func fromRerror(m Rerror) Message     { return Message{Type: RerrorType, Rerror: &m} }
func fromTflush(m Tflush) Message     { return Message{Type: TflushType, Tflush: &m} }
func fromRflush(m Rflush) Message     { return Message{Type: RflushType, Rflush: &m} }
func fromTwalk(m Twalk) Message       { return Message{Type: TwalkType, Twalk: &m} }
func fromRwalk(m Rwalk) Message       { return Message{Type: RwalkType, Rwalk: &m} }
func fromTopen(m Topen) Message       { return Message{Type: TopenType, Topen: &m} }
func fromRopen(m Ropen) Message       { return Message{Type: RopenType, Ropen: &m} }
func fromTcreate(m Tcreate) Message   { return Message{Type: TcreateType, Tcreate: &m} }
func fromRcreate(m Rcreate) Message   { return Message{Type: RcreateType, Rcreate: &m} }
func fromTread(m Tread) Message       { return Message{Type: TreadType, Tread: &m} }
func fromRread(m Rread) Message       { return Message{Type: RreadType, Rread: &m} }
func fromTwrite(m Twrite) Message     { return Message{Type: TwriteType, Twrite: &m} }
func fromRwrite(m Rwrite) Message     { return Message{Type: RwriteType, Rwrite: &m} }
func fromTclunk(m Tclunk) Message     { return Message{Type: TclunkType, Tclunk: &m} }
func fromRclunk(m Rclunk) Message     { return Message{Type: RclunkType, Rclunk: &m} }
func fromTremove(m Tremove) Message   { return Message{Type: TremoveType, Tremove: &m} }
func fromRremove(m Rremove) Message   { return Message{Type: RremoveType, Rremove: &m} }
func fromTstat(m Tstat) Message       { return Message{Type: TstatType, Tstat: &m} }
func fromRstat(m Rstat) Message       { return Message{Type: RstatType, Rstat: &m} }
func fromTwstat(m Twstat) Message     { return Message{Type: TwstatType, Twstat: &m} }
func fromRwstat(m Rwstat) Message     { return Message{Type: RwstatType, Rwstat: &m} }

// dispatch decodes the payload bytes following a header into the matching
// Message variant. Terror is rejected: its code is defined but it has no
// wire use, so receiving one is a decoding error.
func dispatch(h MessageHeader, body []byte) (Message, error) {
	r := NewMessageReader(body)

	switch h.Type {
	case TversionType:
		m, err := deserializeTversion(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTversion(m), nil
	case RversionType:
		m, err := deserializeRversion(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRversion(m), nil
	case TauthType:
		m, err := deserializeTauth(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTauth(m), nil
	case RauthType:
		m, err := deserializeRauth(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRauth(m), nil
	case TattachType:
		m, err := deserializeTattach(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTattach(m), nil
	case RattachType:
		m, err := deserializeRattach(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRattach(m), nil
	case RerrorType:
		m, err := deserializeRerror(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRerror(m), nil
	case TflushType:
		m, err := deserializeTflush(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTflush(m), nil
	case RflushType:
		m, err := deserializeRflush(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRflush(m), nil
	case TwalkType:
		m, err := deserializeTwalk(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTwalk(m), nil
	case RwalkType:
		m, err := deserializeRwalk(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRwalk(m), nil
	case TopenType:
		m, err := deserializeTopen(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTopen(m), nil
	case RopenType:
		m, err := deserializeRopen(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRopen(m), nil
	case TcreateType:
		m, err := deserializeTcreate(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTcreate(m), nil
	case RcreateType:
		m, err := deserializeRcreate(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRcreate(m), nil
	case TreadType:
		m, err := deserializeTread(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTread(m), nil
	case RreadType:
		m, err := deserializeRread(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRread(m), nil
	case TwriteType:
		m, err := deserializeTwrite(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTwrite(m), nil
	case RwriteType:
		m, err := deserializeRwrite(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRwrite(m), nil
	case TclunkType:
		m, err := deserializeTclunk(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTclunk(m), nil
	case RclunkType:
		m, err := deserializeRclunk(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRclunk(m), nil
	case TremoveType:
		m, err := deserializeTremove(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTremove(m), nil
	case RremoveType:
		m, err := deserializeRremove(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRremove(m), nil
	case TstatType:
		m, err := deserializeTstat(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTstat(m), nil
	case RstatType:
		m, err := deserializeRstat(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRstat(m), nil
	case TwstatType:
		m, err := deserializeTwstat(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromTwstat(m), nil
	case RwstatType:
		m, err := deserializeRwstat(h, r)
		if err != nil {
			return Message{}, err
		}
		return fromRwstat(m), nil
	case TerrorType:
		// Terror is a defined code but never appears on the wire.
		return Message{}, InvalidMessageTypeError{Raw: uint8(TerrorType)}
	default:
		return Message{}, InvalidMessageTypeError{Raw: uint8(h.Type)}
	}
}

// Parse decodes a complete frame (header and body) into a Message and
// returns the tag from its header alongside it.
//
// Parse fails with InvalidDataLength if the buffer is shorter than the
// header or its length doesn't match the declared size, MessageTooLarge if
// the declared size exceeds MaxMessageSize, or an InvalidMessageTypeError
// if the type byte isn't defined (or is Terror).
func Parse(buf []byte) (Message, uint16, error) {
	header, body, err := decodeHeader(buf)
	if err != nil {
		return Message{}, 0, err
	}

	if int(header.Size) != len(body)+HeaderSize {
		return Message{}, 0, InvalidDataLength
	}
	if header.Size > MaxMessageSize {
		return Message{}, 0, MessageTooLarge
	}

	msg, err := dispatch(header, body)
	if err != nil {
		return Message{}, 0, err
	}
	return msg, header.Tag, nil
}

// Serialize encodes msg into its wire frame. The returned buffer's first
// HeaderSize bytes reproduce the header, and Size equals len(buffer).
func (msg Message) Serialize() ([]byte, error) {
	switch msg.Type {
	case TversionType:
		return msg.Tversion.Serialize()
	case RversionType:
		return msg.Rversion.Serialize()
	case TauthType:
		return msg.Tauth.Serialize()
	case RauthType:
		return msg.Rauth.Serialize()
	case TattachType:
		return msg.Tattach.Serialize()
	case RattachType:
		return msg.Rattach.Serialize()
	case RerrorType:
		return msg.Rerror.Serialize()
	case TflushType:
		return msg.Tflush.Serialize()
	case RflushType:
		return msg.Rflush.Serialize()
	case TwalkType:
		return msg.Twalk.Serialize()
	case RwalkType:
		return msg.Rwalk.Serialize()
	case TopenType:
		return msg.Topen.Serialize()
	case RopenType:
		return msg.Ropen.Serialize()
	case TcreateType:
		return msg.Tcreate.Serialize()
	case RcreateType:
		return msg.Rcreate.Serialize()
	case TreadType:
		return msg.Tread.Serialize()
	case RreadType:
		return msg.Rread.Serialize()
	case TwriteType:
		return msg.Twrite.Serialize()
	case RwriteType:
		return msg.Rwrite.Serialize()
	case TclunkType:
		return msg.Tclunk.Serialize()
	case RclunkType:
		return msg.Rclunk.Serialize()
	case TremoveType:
		return msg.Tremove.Serialize()
	case RremoveType:
		return msg.Rremove.Serialize()
	case TstatType:
		return msg.Tstat.Serialize()
	case RstatType:
		return msg.Rstat.Serialize()
	case TwstatType:
		return msg.Twstat.Serialize()
	case RwstatType:
		return msg.Rwstat.Serialize()
	default:
		return nil, InvalidMessageTypeError{Raw: uint8(msg.Type)}
	}
}

// SetTag updates the tag field of msg's embedded header in place. Clients
// use this to assign a fresh tag just before transmission.
func (msg *Message) SetTag(newTag uint16) {
	switch msg.Type {
	case TversionType:
		msg.Tversion.Header.Tag = newTag
	case RversionType:
		msg.Rversion.Header.Tag = newTag
	case TauthType:
		msg.Tauth.Header.Tag = newTag
	case RauthType:
		msg.Rauth.Header.Tag = newTag
	case TattachType:
		msg.Tattach.Header.Tag = newTag
	case RattachType:
		msg.Rattach.Header.Tag = newTag
	case RerrorType:
		msg.Rerror.Header.Tag = newTag
	case TflushType:
		msg.Tflush.Header.Tag = newTag
	case RflushType:
		msg.Rflush.Header.Tag = newTag
	case TwalkType:
		msg.Twalk.Header.Tag = newTag
	case RwalkType:
		msg.Rwalk.Header.Tag = newTag
	case TopenType:
		msg.Topen.Header.Tag = newTag
	case RopenType:
		msg.Ropen.Header.Tag = newTag
	case TcreateType:
		msg.Tcreate.Header.Tag = newTag
	case RcreateType:
		msg.Rcreate.Header.Tag = newTag
	case TreadType:
		msg.Tread.Header.Tag = newTag
	case RreadType:
		msg.Rread.Header.Tag = newTag
	case TwriteType:
		msg.Twrite.Header.Tag = newTag
	case RwriteType:
		msg.Rwrite.Header.Tag = newTag
	case TclunkType:
		msg.Tclunk.Header.Tag = newTag
	case RclunkType:
		msg.Rclunk.Header.Tag = newTag
	case TremoveType:
		msg.Tremove.Header.Tag = newTag
	case RremoveType:
		msg.Rremove.Header.Tag = newTag
	case TstatType:
		msg.Tstat.Header.Tag = newTag
	case RstatType:
		msg.Rstat.Header.Tag = newTag
	case TwstatType:
		msg.Twstat.Header.Tag = newTag
	case RwstatType:
		msg.Rwstat.Header.Tag = newTag
	}
}
