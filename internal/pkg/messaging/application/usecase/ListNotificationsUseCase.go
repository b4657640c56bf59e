package usecase

import (
	"context"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// ListNotificationsInput pages through the acting user's notifications.
type ListNotificationsInput struct {
	UserID int64
	Limit  int
	Offset int
}

// ListNotificationsUseCase returns the user's notifications newest first.
type ListNotificationsUseCase struct {
	Notifications repository.NotificationRepository
}

func NewListNotificationsUseCase(notifications repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Notifications: notifications}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]messaging.Notification, error) {
	if in.UserID <= 0 {
		return nil, fmt.Errorf("user id is required")
	}
	items, err := uc.Notifications.ListForRecipient(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return items, nil
}
