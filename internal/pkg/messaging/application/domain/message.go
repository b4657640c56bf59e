package messaging

import (
	"strings"
	"time"
)

// Message is a log entry in a conversation. Rows are append-only except for
// the read flag, which only ever transitions false -> true.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversationId"`
	SenderID       int64     `db:"sender_id" json:"senderId"`
	Content        string    `db:"content" json:"content"`
	Read           bool      `db:"read" json:"read"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	AttachmentURL  *string   `db:"attachment_url" json:"attachmentUrl,omitempty"`
}

// NewMessage validates and normalizes a message prior to persistence.
// A message with neither body nor attachment is rejected.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID <= 0 || m.SenderID <= 0 {
		return nil, ErrNotFound
	}

	m.Content = strings.TrimSpace(m.Content)
	if m.Content == "" && m.AttachmentURL == nil {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return &m, nil
}
