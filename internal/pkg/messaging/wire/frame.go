// Package wire defines the JSON frame protocol spoken over realtime
// connections. Inbound frames are a tagged union discriminated by "type" and
// validated before any field is read; outbound frames are built through the
// constructors in outbound.go so every code path emits the same shapes.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound frame type tags.
const (
	TypeAuthenticate = "authenticate"
	TypeMessage      = "message"
)

// Outbound frame type tags.
const (
	TypeMessageSent     = "message_sent"
	TypeNewMessage      = "new_message"
	TypeNewNotification = "new_notification"
	TypeBadgeCounts     = "badge_counts_update"
	TypeError           = "error"
)

// Frame errors. ErrMalformed covers bad JSON and failed field validation;
// ErrUnknownType covers a well-formed frame with an unrecognized tag. Both are
// protocol errors: the connection stays open and the client may retry.
var (
	ErrMalformed   = errors.New("wire: malformed frame")
	ErrUnknownType = errors.New("wire: unknown frame type")
)

// ErrBadAuthenticate marks a frame that was recognizably an authenticate
// attempt but failed validation. The handshake treats these as non-fatal:
// logged, ignored, connection stays Unauthenticated so the client may retry.
var ErrBadAuthenticate = fmt.Errorf("%w: invalid authenticate frame", ErrMalformed)

// Inbound is implemented by every decoded client frame.
type Inbound interface {
	inbound()
}

// Authenticate binds the connection to a user identity.
type Authenticate struct {
	UserID int64
}

func (Authenticate) inbound() {}

// SendMessage asks the server to persist and deliver a direct message.
type SendMessage struct {
	RecipientID int64
	Content     string
}

func (SendMessage) inbound() {}

// raw is the superset shape every inbound frame is first decoded into.
// Pointer fields distinguish "absent" from zero values during validation.
type raw struct {
	Type        string  `json:"type"`
	UserID      *int64  `json:"userId"`
	RecipientID *int64  `json:"recipientId"`
	Content     *string `json:"content"`
}

// DecodeInbound parses and validates one client frame. It never returns a
// partially valid frame: either the result is fully populated or the error
// identifies why the payload was rejected.
func DecodeInbound(data []byte) (Inbound, error) {
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch r.Type {
	case TypeAuthenticate:
		if r.UserID == nil || *r.UserID <= 0 {
			return nil, fmt.Errorf("%w: authenticate requires a positive userId", ErrBadAuthenticate)
		}
		return Authenticate{UserID: *r.UserID}, nil

	case TypeMessage:
		if r.RecipientID == nil || *r.RecipientID <= 0 {
			return nil, fmt.Errorf("%w: message requires a positive recipientId", ErrMalformed)
		}
		if r.Content == nil || *r.Content == "" {
			return nil, fmt.Errorf("%w: message requires content", ErrMalformed)
		}
		return SendMessage{RecipientID: *r.RecipientID, Content: *r.Content}, nil

	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, r.Type)
	}
}
