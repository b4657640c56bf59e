package repository

import (
	"context"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

// ConversationRepository defines persistence operations for two-party
// conversations. The store enforces uniqueness on the normalized pair
// (user_a < user_b); Create surfaces a duplicate as
// messaging.ErrConversationExists so the resolver can re-read instead of
// failing.
type ConversationRepository interface {
	// Find returns the conversation for the normalized pair, or
	// messaging.ErrNotFound.
	Find(ctx context.Context, userA, userB int64) (messaging.Conversation, error)

	// Create inserts a conversation for the normalized pair. A concurrent
	// insert for the same pair yields messaging.ErrConversationExists.
	Create(ctx context.Context, userA, userB int64) (messaging.Conversation, error)

	// Get returns a conversation by id, or messaging.ErrNotFound.
	Get(ctx context.Context, id int64) (messaging.Conversation, error)

	// ListForUser returns all conversations the user participates in,
	// most recently active first.
	ListForUser(ctx context.Context, userID int64) ([]messaging.Conversation, error)
}
