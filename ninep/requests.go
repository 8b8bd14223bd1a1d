package ninep

// Tversion negotiates the protocol version and maximum message size at the
// start of a session. Its tag is conventionally NoTag.
type Tversion struct {
	Header  MessageHeader
	Msize   uint32
	Version string
}

func deserializeTversion(h MessageHeader, r *MessageReader) (Tversion, error) {
	msize, err := r.ReadUint32()
	if err != nil {
		return Tversion{}, err
	}
	version, err := r.ReadString()
	if err != nil {
		return Tversion{}, err
	}
	return Tversion{Header: h, Msize: msize, Version: version}, nil
}

func (m Tversion) wireSize() uint32 {
	return HeaderSize + 4 + 2 + uint32(len(m.Version))
}

// Serialize encodes m into a wire frame.
func (m Tversion) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TversionType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Msize); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Version); err != nil {
		return nil, err
	}
	return buf, nil
}

// Tauth requests an authentication fid to be used with Tattach.
type Tauth struct {
	Header MessageHeader
	Afid   uint32
	Uname  string
	Aname  string
}

func deserializeTauth(h MessageHeader, r *MessageReader) (Tauth, error) {
	afid, err := r.ReadUint32()
	if err != nil {
		return Tauth{}, err
	}
	uname, err := r.ReadString()
	if err != nil {
		return Tauth{}, err
	}
	aname, err := r.ReadString()
	if err != nil {
		return Tauth{}, err
	}
	return Tauth{Header: h, Afid: afid, Uname: uname, Aname: aname}, nil
}

func (m Tauth) wireSize() uint32 {
	return HeaderSize + 4 + 2 + uint32(len(m.Uname)) + 2 + uint32(len(m.Aname))
}

// Serialize encodes m into a wire frame.
func (m Tauth) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TauthType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Afid); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Uname); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Aname); err != nil {
		return nil, err
	}
	return buf, nil
}

// Tattach establishes a connection to a file tree, optionally via a
// previously authenticated fid.
type Tattach struct {
	Header MessageHeader
	Fid    uint32
	Afid   uint32
	Uname  string
	Aname  string
}

func deserializeTattach(h MessageHeader, r *MessageReader) (Tattach, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tattach{}, err
	}
	afid, err := r.ReadUint32()
	if err != nil {
		return Tattach{}, err
	}
	uname, err := r.ReadString()
	if err != nil {
		return Tattach{}, err
	}
	aname, err := r.ReadString()
	if err != nil {
		return Tattach{}, err
	}
	return Tattach{Header: h, Fid: fid, Afid: afid, Uname: uname, Aname: aname}, nil
}

func (m Tattach) wireSize() uint32 {
	return HeaderSize + 4 + 4 + 2 + uint32(len(m.Uname)) + 2 + uint32(len(m.Aname))
}

// Serialize encodes m into a wire frame.
func (m Tattach) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TattachType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Afid); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Uname); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Aname); err != nil {
		return nil, err
	}
	return buf, nil
}

// Tflush cancels a previously sent, still-pending request identified by
// OldTag.
type Tflush struct {
	Header MessageHeader
	OldTag uint16
}

func deserializeTflush(h MessageHeader, r *MessageReader) (Tflush, error) {
	oldTag, err := r.ReadUint16()
	if err != nil {
		return Tflush{}, err
	}
	return Tflush{Header: h, OldTag: oldTag}, nil
}

func (m Tflush) wireSize() uint32 {
	return HeaderSize + 2
}

// Serialize encodes m into a wire frame.
func (m Tflush) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TflushType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint16(m.OldTag); err != nil {
		return nil, err
	}
	return buf, nil
}

// Twalk walks from Fid through WNames, binding the result to NewFid.
type Twalk struct {
	Header MessageHeader
	Fid    uint32
	NewFid uint32
	WNames []string
}

func deserializeTwalk(h MessageHeader, r *MessageReader) (Twalk, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Twalk{}, err
	}
	newFid, err := r.ReadUint32()
	if err != nil {
		return Twalk{}, err
	}
	names, err := r.ReadStringList()
	if err != nil {
		return Twalk{}, err
	}
	return Twalk{Header: h, Fid: fid, NewFid: newFid, WNames: names}, nil
}

func (m Twalk) wireSize() uint32 {
	size := HeaderSize + 4 + 4 + 2
	for _, name := range m.WNames {
		size += 2 + len(name)
	}
	return uint32(size)
}

// Serialize encodes m into a wire frame.
func (m Twalk) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TwalkType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.NewFid); err != nil {
		return nil, err
	}
	if err := w.WriteStringList(m.WNames); err != nil {
		return nil, err
	}
	return buf, nil
}

// Topen opens an existing file identified by Fid with the given Mode.
type Topen struct {
	Header MessageHeader
	Fid    uint32
	Mode   uint8
}

func deserializeTopen(h MessageHeader, r *MessageReader) (Topen, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Topen{}, err
	}
	mode, err := r.ReadUint8()
	if err != nil {
		return Topen{}, err
	}
	return Topen{Header: h, Fid: fid, Mode: mode}, nil
}

func (m Topen) wireSize() uint32 {
	return HeaderSize + 4 + 1
}

// Serialize encodes m into a wire frame.
func (m Topen) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TopenType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	return buf, w.WriteUint8(m.Mode)
}

// Tcreate creates a new file named Name under Fid and opens it with Mode.
type Tcreate struct {
	Header MessageHeader
	Fid    uint32
	Name   string
	Perm   uint32
	Mode   uint8
}

func deserializeTcreate(h MessageHeader, r *MessageReader) (Tcreate, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tcreate{}, err
	}
	name, err := r.ReadString()
	if err != nil {
		return Tcreate{}, err
	}
	perm, err := r.ReadUint32()
	if err != nil {
		return Tcreate{}, err
	}
	mode, err := r.ReadUint8()
	if err != nil {
		return Tcreate{}, err
	}
	return Tcreate{Header: h, Fid: fid, Name: name, Perm: perm, Mode: mode}, nil
}

func (m Tcreate) wireSize() uint32 {
	return HeaderSize + 4 + 2 + uint32(len(m.Name)) + 4 + 1
}

// Serialize encodes m into a wire frame.
func (m Tcreate) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TcreateType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Name); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Perm); err != nil {
		return nil, err
	}
	return buf, w.WriteUint8(m.Mode)
}

// Tread reads Count bytes starting at Offset from the file identified by
// Fid.
type Tread struct {
	Header MessageHeader
	Fid    uint32
	Offset uint64
	Count  uint32
}

func deserializeTread(h MessageHeader, r *MessageReader) (Tread, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tread{}, err
	}
	offset, err := r.ReadUint64()
	if err != nil {
		return Tread{}, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return Tread{}, err
	}
	return Tread{Header: h, Fid: fid, Offset: offset, Count: count}, nil
}

func (m Tread) wireSize() uint32 {
	return HeaderSize + 4 + 8 + 4
}

// Serialize encodes m into a wire frame.
func (m Tread) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TreadType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	if err := w.WriteUint64(m.Offset); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.Count)
}

// Twrite writes Data at Offset into the file identified by Fid.
type Twrite struct {
	Header MessageHeader
	Fid    uint32
	Offset uint64
	Data   []byte
}

func deserializeTwrite(h MessageHeader, r *MessageReader) (Twrite, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Twrite{}, err
	}
	offset, err := r.ReadUint64()
	if err != nil {
		return Twrite{}, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return Twrite{}, err
	}
	data, err := r.ReadBytes(int(count))
	if err != nil {
		return Twrite{}, err
	}
	return Twrite{Header: h, Fid: fid, Offset: offset, Data: data}, nil
}

func (m Twrite) wireSize() uint32 {
	return HeaderSize + 4 + 8 + 4 + uint32(len(m.Data))
}

// Serialize encodes m into a wire frame.
func (m Twrite) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TwriteType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	if err := w.WriteUint64(m.Offset); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(uint32(len(m.Data))); err != nil {
		return nil, err
	}
	return buf, w.WriteBytes(m.Data)
}

// Tclunk forgets about Fid, releasing any resources associated with it.
type Tclunk struct {
	Header MessageHeader
	Fid    uint32
}

func deserializeTclunk(h MessageHeader, r *MessageReader) (Tclunk, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tclunk{}, err
	}
	return Tclunk{Header: h, Fid: fid}, nil
}

func (m Tclunk) wireSize() uint32 {
	return HeaderSize + 4
}

// Serialize encodes m into a wire frame.
func (m Tclunk) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TclunkType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.Fid)
}

// Tremove clunks Fid and removes the file it identifies.
type Tremove struct {
	Header MessageHeader
	Fid    uint32
}

func deserializeTremove(h MessageHeader, r *MessageReader) (Tremove, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tremove{}, err
	}
	return Tremove{Header: h, Fid: fid}, nil
}

func (m Tremove) wireSize() uint32 {
	return HeaderSize + 4
}

// Serialize encodes m into a wire frame.
func (m Tremove) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TremoveType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.Fid)
}

// Tstat requests the Stat record for the file identified by Fid.
type Tstat struct {
	Header MessageHeader
	Fid    uint32
}

func deserializeTstat(h MessageHeader, r *MessageReader) (Tstat, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Tstat{}, err
	}
	return Tstat{Header: h, Fid: fid}, nil
}

func (m Tstat) wireSize() uint32 {
	return HeaderSize + 4
}

// Serialize encodes m into a wire frame.
func (m Tstat) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TstatType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.Fid)
}

// Twstat requests a change to the metadata of the file identified by Fid.
type Twstat struct {
	Header MessageHeader
	Fid    uint32
	Stat   Stat
}

func deserializeTwstat(h MessageHeader, r *MessageReader) (Twstat, error) {
	fid, err := r.ReadUint32()
	if err != nil {
		return Twstat{}, err
	}
	stat, err := r.ReadStat()
	if err != nil {
		return Twstat{}, err
	}
	return Twstat{Header: h, Fid: fid, Stat: stat}, nil
}

func (m Twstat) wireSize() uint32 {
	return HeaderSize + 4 + 2 + uint32(len(encodeStat(m.Stat)))
}

// Serialize encodes m into a wire frame.
func (m Twstat) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = TwstatType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Fid); err != nil {
		return nil, err
	}
	return buf, w.WriteStat(m.Stat)
}
