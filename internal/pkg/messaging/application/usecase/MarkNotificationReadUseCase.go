package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// MarkNotificationReadInput identifies one notification of the acting user.
type MarkNotificationReadInput struct {
	NotificationID int64
	UserID         int64
}

// MarkNotificationReadUseCase flips a single notification to read. The
// recipient scoping in the repository doubles as the authorization check:
// another user's notification id simply does not match.
type MarkNotificationReadUseCase struct {
	Notifications repository.NotificationRepository
}

func NewMarkNotificationReadUseCase(notifications repository.NotificationRepository) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Notifications: notifications}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, in MarkNotificationReadInput) error {
	if in.NotificationID <= 0 || in.UserID <= 0 {
		return fmt.Errorf("notification id and user id are required")
	}
	err := uc.Notifications.MarkRead(ctx, in.NotificationID, in.UserID)
	if errors.Is(err, messaging.ErrNotFound) {
		return messaging.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
