package repository

import (
	"context"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

// MessageRepository defines persistence operations for conversation messages.
// Implementations must treat the read flag as one-way: rows transition
// false -> true and never back.
type MessageRepository interface {
	// Save persists a new message and returns it with the store-assigned id.
	Save(ctx context.Context, m messaging.Message) (messaging.Message, error)

	// ListByConversation returns messages ordered newest first.
	ListByConversation(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error)

	// MarkConversationRead flips every unread message addressed to userID in
	// the conversation to read and returns how many rows changed. Calling it
	// again is a no-op returning 0.
	MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error)

	// UnreadCount returns the number of unread messages addressed to userID
	// across all of their conversations, derived from stored read flags.
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
