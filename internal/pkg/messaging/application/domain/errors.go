package messaging

import "errors"

// Domain-level errors for messaging behaviors
var (
	ErrConversationExists = errors.New("messaging: conversation already exists for this pair")
	ErrSelfConversation   = errors.New("messaging: a conversation requires two distinct participants")
	ErrNotFound           = errors.New("messaging: entity not found")
	ErrEmptyMessage       = errors.New("messaging: empty message body")
	ErrNotParticipant     = errors.New("messaging: user is not a participant in the conversation")
)
