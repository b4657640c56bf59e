package repository

import (
	"context"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	// Save persists a new notification and returns it with the store-assigned id.
	Save(ctx context.Context, n messaging.Notification) (messaging.Notification, error)

	// ListForRecipient returns the recipient's notifications newest first.
	ListForRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]messaging.Notification, error)

	// MarkRead flips one notification to read. It is a no-op on an already
	// read row and returns messaging.ErrNotFound if the row does not exist
	// or belongs to another recipient.
	MarkRead(ctx context.Context, id, recipientID int64) error

	// Delete removes one notification on explicit user action. Returns
	// messaging.ErrNotFound if the row does not exist or belongs to another
	// recipient.
	Delete(ctx context.Context, id, recipientID int64) error

	// UnreadCountsByCategory returns the recipient's unread totals grouped by
	// badge category, derived from stored read flags at query time.
	UnreadCountsByCategory(ctx context.Context, recipientID int64) (messaging.BadgeCounts, error)
}
