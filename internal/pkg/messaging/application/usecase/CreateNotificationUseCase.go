package usecase

import (
	"context"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// CreateNotificationInput is produced by marketplace subsystems (application
// status changes, new applications, feedback) after their own persistence
// commits.
type CreateNotificationInput struct {
	RecipientID int64
	Type        messaging.NotificationType
	Title       string
	Message     string
	Priority    messaging.NotificationPriority
	RelatedID   *int64
}

// CreateNotificationUseCase validates and persists a notification row.
type CreateNotificationUseCase struct {
	Notifications repository.NotificationRepository
}

func NewCreateNotificationUseCase(notifications repository.NotificationRepository) *CreateNotificationUseCase {
	return &CreateNotificationUseCase{Notifications: notifications}
}

func (uc *CreateNotificationUseCase) Execute(ctx context.Context, in CreateNotificationInput) (*messaging.Notification, error) {
	n, err := messaging.NewNotification(messaging.Notification{
		RecipientID: in.RecipientID,
		Type:        in.Type,
		Title:       in.Title,
		Message:     in.Message,
		Priority:    in.Priority,
		RelatedID:   in.RelatedID,
	})
	if err != nil {
		return nil, err
	}

	saved, err := uc.Notifications.Save(ctx, *n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &saved, nil
}
