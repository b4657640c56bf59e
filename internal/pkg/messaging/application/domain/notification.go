package messaging

import (
	"strings"
	"time"
)

// NotificationType identifies what marketplace event produced a notification.
type NotificationType string

const (
	NotificationTypeMessage           NotificationType = "message"
	NotificationTypeApplicationStatus NotificationType = "application_status"
	NotificationTypeNewApplication    NotificationType = "new_application"
	NotificationTypeFeedback          NotificationType = "feedback"
	NotificationTypeSystem            NotificationType = "system"
)

// NotificationPriority orders notifications in the client UI.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is a per-recipient event row. Created on persist, mutated only
// by mark-read, deleted only on explicit user action.
type Notification struct {
	ID          int64                `db:"id" json:"id"`
	RecipientID int64                `db:"recipient_id" json:"recipientId"`
	Type        NotificationType     `db:"type" json:"type"`
	Title       string               `db:"title" json:"title"`
	Message     string               `db:"message" json:"message"`
	Priority    NotificationPriority `db:"priority" json:"priority"`
	RelatedID   *int64               `db:"related_id" json:"relatedId,omitempty"`
	Read        bool                 `db:"read" json:"read"`
	CreatedAt   time.Time            `db:"created_at" json:"createdAt"`
}

// Category maps a notification type onto a badge category.
func (t NotificationType) Category() string {
	switch t {
	case NotificationTypeMessage:
		return BadgeCategoryMessages
	case NotificationTypeApplicationStatus, NotificationTypeNewApplication:
		return BadgeCategoryApplications
	default:
		return BadgeCategoryNotifications
	}
}

// NewNotification validates and normalizes a notification prior to persistence.
func NewNotification(n Notification) (*Notification, error) {
	if n.RecipientID <= 0 {
		return nil, ErrNotFound
	}

	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)
	if n.Title == "" && n.Message == "" {
		return nil, ErrEmptyMessage
	}

	if n.Type == "" {
		n.Type = NotificationTypeSystem
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return &n, nil
}
