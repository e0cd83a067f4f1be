package protocol

// HelloMessage is sent once when a live session is established. RootID is
// the node ID of the session's mount point; RootHTML is the serialized
// markup the client should adopt as its starting tree.
type HelloMessage struct {
	SessionID uint64
	RootID    uint32
	RootHTML  string
}

// EncodeHello encodes a HelloMessage as a Hello frame payload.
func EncodeHello(hm *HelloMessage) []byte {
	e := NewEncoder()
	e.WriteUint64(hm.SessionID)
	e.WriteUint32(hm.RootID)
	e.WriteString(hm.RootHTML)
	return e.Bytes()
}

// DecodeHello decodes a Hello frame payload.
func DecodeHello(data []byte) (*HelloMessage, error) {
	d := NewDecoder(data)

	hm := &HelloMessage{}
	var err error
	if hm.SessionID, err = d.ReadUint64(); err != nil {
		return nil, err
	}
	rootID, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	hm.RootID = rootID
	if hm.RootHTML, err = d.ReadString(); err != nil {
		return nil, err
	}
	return hm, nil
}

// ErrorCode identifies the type of error reported over the wire.
type ErrorCode uint16

const (
	ErrUnknown     ErrorCode = 0x0000 // Unknown error
	ErrServerError ErrorCode = 0x0001 // Internal server error
	ErrBadFrame    ErrorCode = 0x0002 // Malformed frame from peer
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrUnknown:
		return "Unknown"
	case ErrServerError:
		return "ServerError"
	case ErrBadFrame:
		return "BadFrame"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
}

// EncodeError encodes an ErrorMessage as an Error frame payload.
func EncodeError(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	return e.Bytes()
}

// DecodeError decodes an Error frame payload.
func DecodeError(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)

	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg}, nil
}
