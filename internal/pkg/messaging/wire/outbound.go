package wire

import (
	"encoding/json"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

type messageSentFrame struct {
	Type    string            `json:"type"`
	Message messaging.Message `json:"message"`
}

type newMessageFrame struct {
	Type    string            `json:"type"`
	Message messaging.Message `json:"message"`
	Sender  messaging.User    `json:"sender"`
}

type notificationFrame struct {
	Type         string                 `json:"type"`
	Notification messaging.Notification `json:"notification"`
}

type badgeCountsFrame struct {
	Type   string                `json:"type"`
	Counts messaging.BadgeCounts `json:"counts"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageSent is the ack pushed back to the sender once its message is durable.
func MessageSent(m messaging.Message) ([]byte, error) {
	return json.Marshal(messageSentFrame{Type: TypeMessageSent, Message: m})
}

// NewMessage is the push delivered to the recipient's live connections.
func NewMessage(m messaging.Message, sender messaging.User) ([]byte, error) {
	return json.Marshal(newMessageFrame{Type: TypeNewMessage, Message: m, Sender: sender})
}

// NewNotification is the push delivered when a notification row is created.
func NewNotification(n messaging.Notification) ([]byte, error) {
	return json.Marshal(notificationFrame{Type: TypeNewNotification, Notification: n})
}

// BadgeCounts carries the recomputed per-category unread totals.
func BadgeCounts(counts messaging.BadgeCounts) ([]byte, error) {
	return json.Marshal(badgeCountsFrame{Type: TypeBadgeCounts, Counts: counts})
}

// Error is the protocol-error reply. The connection stays open.
func Error(message string) []byte {
	payload, err := json.Marshal(errorFrame{Type: TypeError, Message: message})
	if err != nil {
		// The frame contains only strings; marshal cannot fail in practice.
		return []byte(`{"type":"error","message":"internal error"}`)
	}
	return payload
}
