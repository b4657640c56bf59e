package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// DeleteNotificationInput identifies one notification of the acting user.
type DeleteNotificationInput struct {
	NotificationID int64
	UserID         int64
}

// DeleteNotificationUseCase removes a notification on explicit user action;
// nothing in the system deletes notifications implicitly.
type DeleteNotificationUseCase struct {
	Notifications repository.NotificationRepository
}

func NewDeleteNotificationUseCase(notifications repository.NotificationRepository) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{Notifications: notifications}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, in DeleteNotificationInput) error {
	if in.NotificationID <= 0 || in.UserID <= 0 {
		return fmt.Errorf("notification id and user id are required")
	}
	err := uc.Notifications.Delete(ctx, in.NotificationID, in.UserID)
	if errors.Is(err, messaging.ErrNotFound) {
		return messaging.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
