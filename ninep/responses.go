package ninep

// Rversion is the server's reply to Tversion, confirming the negotiated
// msize and version string (or proposing "unknown" if it can't support the
// client's request).
type Rversion struct {
	Header  MessageHeader
	Msize   uint32
	Version string
}

func deserializeRversion(h MessageHeader, r *MessageReader) (Rversion, error) {
	msize, err := r.ReadUint32()
	if err != nil {
		return Rversion{}, err
	}
	version, err := r.ReadString()
	if err != nil {
		return Rversion{}, err
	}
	return Rversion{Header: h, Msize: msize, Version: version}, nil
}

func (m Rversion) wireSize() uint32 {
	return HeaderSize + 4 + 2 + uint32(len(m.Version))
}

// Serialize encodes m into a wire frame.
func (m Rversion) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RversionType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(m.Msize); err != nil {
		return nil, err
	}
	return buf, w.WriteString(m.Version)
}

// Rauth returns the Qid of the authentication file created in response to
// Tauth.
type Rauth struct {
	Header MessageHeader
	Aqid   Qid
}

func deserializeRauth(h MessageHeader, r *MessageReader) (Rauth, error) {
	qid, err := r.ReadQid()
	if err != nil {
		return Rauth{}, err
	}
	return Rauth{Header: h, Aqid: qid}, nil
}

func (m Rauth) wireSize() uint32 {
	return HeaderSize + QidSize
}

// Serialize encodes m into a wire frame.
func (m Rauth) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RauthType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteQid(m.Aqid)
}

// Rattach returns the Qid of the root of the file tree just attached.
type Rattach struct {
	Header MessageHeader
	Qid    Qid
}

func deserializeRattach(h MessageHeader, r *MessageReader) (Rattach, error) {
	qid, err := r.ReadQid()
	if err != nil {
		return Rattach{}, err
	}
	return Rattach{Header: h, Qid: qid}, nil
}

func (m Rattach) wireSize() uint32 {
	return HeaderSize + QidSize
}

// Serialize encodes m into a wire frame.
func (m Rattach) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RattachType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteQid(m.Qid)
}

// Rerror reports that a request failed, carrying a human-readable message.
// It is the only message type with no corresponding T variant: any code
// whose request failed is answered with Rerror rather than its normal
// paired response.
type Rerror struct {
	Header MessageHeader
	Ename  string
}

func deserializeRerror(h MessageHeader, r *MessageReader) (Rerror, error) {
	ename, err := r.ReadString()
	if err != nil {
		return Rerror{}, err
	}
	return Rerror{Header: h, Ename: ename}, nil
}

func (m Rerror) wireSize() uint32 {
	return HeaderSize + 2 + uint32(len(m.Ename))
}

// Serialize encodes m into a wire frame.
func (m Rerror) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RerrorType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteString(m.Ename)
}

// Rflush confirms that a Tflush request has completed.
type Rflush struct {
	Header MessageHeader
}

func deserializeRflush(h MessageHeader, _ *MessageReader) (Rflush, error) {
	return Rflush{Header: h}, nil
}

func (m Rflush) wireSize() uint32 {
	return HeaderSize
}

// Serialize encodes m into a wire frame.
func (m Rflush) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RflushType
	w, buf := NewMessageWriter(m.Header.Size)
	return buf, encodeHeader(w, m.Header)
}

// Rwalk returns one Qid per path element successfully walked.
type Rwalk struct {
	Header MessageHeader
	WQids  []Qid
}

func deserializeRwalk(h MessageHeader, r *MessageReader) (Rwalk, error) {
	qids, err := r.ReadQidList()
	if err != nil {
		return Rwalk{}, err
	}
	return Rwalk{Header: h, WQids: qids}, nil
}

func (m Rwalk) wireSize() uint32 {
	return HeaderSize + 2 + uint32(len(m.WQids))*QidSize
}

// Serialize encodes m into a wire frame.
func (m Rwalk) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RwalkType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteQidList(m.WQids)
}

// Ropen confirms that Topen succeeded, returning the file's Qid and the
// server's preferred I/O unit size.
type Ropen struct {
	Header MessageHeader
	Qid    Qid
	IOUnit uint32
}

func deserializeRopen(h MessageHeader, r *MessageReader) (Ropen, error) {
	qid, err := r.ReadQid()
	if err != nil {
		return Ropen{}, err
	}
	iounit, err := r.ReadUint32()
	if err != nil {
		return Ropen{}, err
	}
	return Ropen{Header: h, Qid: qid, IOUnit: iounit}, nil
}

func (m Ropen) wireSize() uint32 {
	return HeaderSize + QidSize + 4
}

// Serialize encodes m into a wire frame.
func (m Ropen) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RopenType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteQid(m.Qid); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.IOUnit)
}

// Rcreate confirms that Tcreate succeeded, returning the new file's Qid and
// the server's preferred I/O unit size.
type Rcreate struct {
	Header MessageHeader
	Qid    Qid
	IOUnit uint32
}

func deserializeRcreate(h MessageHeader, r *MessageReader) (Rcreate, error) {
	qid, err := r.ReadQid()
	if err != nil {
		return Rcreate{}, err
	}
	iounit, err := r.ReadUint32()
	if err != nil {
		return Rcreate{}, err
	}
	return Rcreate{Header: h, Qid: qid, IOUnit: iounit}, nil
}

func (m Rcreate) wireSize() uint32 {
	return HeaderSize + QidSize + 4
}

// Serialize encodes m into a wire frame.
func (m Rcreate) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RcreateType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteQid(m.Qid); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.IOUnit)
}

// Rread returns the bytes read by a Tread request.
type Rread struct {
	Header MessageHeader
	Data   []byte
}

func deserializeRread(h MessageHeader, r *MessageReader) (Rread, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return Rread{}, err
	}
	data, err := r.ReadBytes(int(count))
	if err != nil {
		return Rread{}, err
	}
	return Rread{Header: h, Data: data}, nil
}

func (m Rread) wireSize() uint32 {
	return HeaderSize + 4 + uint32(len(m.Data))
}

// Serialize encodes m into a wire frame.
func (m Rread) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RreadType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	if err := w.WriteUint32(uint32(len(m.Data))); err != nil {
		return nil, err
	}
	return buf, w.WriteBytes(m.Data)
}

// Rwrite confirms how many bytes a Twrite request actually wrote.
type Rwrite struct {
	Header MessageHeader
	Count  uint32
}

func deserializeRwrite(h MessageHeader, r *MessageReader) (Rwrite, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return Rwrite{}, err
	}
	return Rwrite{Header: h, Count: count}, nil
}

func (m Rwrite) wireSize() uint32 {
	return HeaderSize + 4
}

// Serialize encodes m into a wire frame.
func (m Rwrite) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RwriteType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteUint32(m.Count)
}

// Rclunk confirms that Tclunk succeeded.
type Rclunk struct {
	Header MessageHeader
}

func deserializeRclunk(h MessageHeader, _ *MessageReader) (Rclunk, error) {
	return Rclunk{Header: h}, nil
}

func (m Rclunk) wireSize() uint32 {
	return HeaderSize
}

// Serialize encodes m into a wire frame.
func (m Rclunk) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RclunkType
	w, buf := NewMessageWriter(m.Header.Size)
	return buf, encodeHeader(w, m.Header)
}

// Rremove confirms that Tremove succeeded.
type Rremove struct {
	Header MessageHeader
}

func deserializeRremove(h MessageHeader, _ *MessageReader) (Rremove, error) {
	return Rremove{Header: h}, nil
}

func (m Rremove) wireSize() uint32 {
	return HeaderSize
}

// Serialize encodes m into a wire frame.
func (m Rremove) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RremoveType
	w, buf := NewMessageWriter(m.Header.Size)
	return buf, encodeHeader(w, m.Header)
}

// Rstat returns the Stat record requested by Tstat.
type Rstat struct {
	Header MessageHeader
	Stat   Stat
}

func deserializeRstat(h MessageHeader, r *MessageReader) (Rstat, error) {
	stat, err := r.ReadStat()
	if err != nil {
		return Rstat{}, err
	}
	return Rstat{Header: h, Stat: stat}, nil
}

func (m Rstat) wireSize() uint32 {
	return HeaderSize + 2 + uint32(len(encodeStat(m.Stat)))
}

// Serialize encodes m into a wire frame.
func (m Rstat) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RstatType
	w, buf := NewMessageWriter(m.Header.Size)
	if err := encodeHeader(w, m.Header); err != nil {
		return nil, err
	}
	return buf, w.WriteStat(m.Stat)
}

// Rwstat confirms that Twstat succeeded.
type Rwstat struct {
	Header MessageHeader
}

func deserializeRwstat(h MessageHeader, _ *MessageReader) (Rwstat, error) {
	return Rwstat{Header: h}, nil
}

func (m Rwstat) wireSize() uint32 {
	return HeaderSize
}

// Serialize encodes m into a wire frame.
func (m Rwstat) Serialize() ([]byte, error) {
	m.Header.Size = m.wireSize()
	m.Header.Type = RwstatType
	w, buf := NewMessageWriter(m.Header.Size)
	return buf, encodeHeader(w, m.Header)
}
