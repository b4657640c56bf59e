package task

import (
	"context"
	"encoding/json"
	"time"

	qport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/queue/port"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// DeliverNotificationTaskType is the queue task name marketplace subsystems
// enqueue after their own commit (application status change, new application,
// feedback) to hand the notification to the realtime layer.
const DeliverNotificationTaskType = "notification:deliver"

// DeliverNotificationPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type DeliverNotificationPayload struct {
	RecipientID int64  `json:"recipientId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	RelatedID   *int64 `json:"relatedId"`
}

// EnqueueDeliverNotification hands a notification to the queue. Producers
// call this after their own transaction commits; the task is deduplicated for
// a short window so a retried caller does not double-notify.
func EnqueueDeliverNotification(ctx context.Context, client qport.Client, p DeliverNotificationPayload) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return client.Enqueue(ctx, qport.Task{Type: DeliverNotificationTaskType, Payload: payload}, qport.EnqueueOption{
		Queue:     "notifications",
		MaxRetry:  5,
		UniqueTTL: time.Minute,
	})
}

// RegisterDeliverNotificationTask binds the task handler to the provided
// server: persist the notification row, then fan out and refresh the badge.
// The push half is best-effort; only persistence failures trigger a retry.
func RegisterDeliverNotificationTask(
	srv qport.Server,
	createNotification *usecase.CreateNotificationUseCase,
	broadcaster *push.Broadcaster,
	badges *push.BadgeAggregator,
) {
	srv.Register(DeliverNotificationTaskType, func(ctx context.Context, t qport.Task) error {
		var p DeliverNotificationPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		n, err := createNotification.Execute(ctx, usecase.CreateNotificationInput{
			RecipientID: p.RecipientID,
			Type:        messaging.NotificationType(p.Type),
			Title:       p.Title,
			Message:     p.Message,
			Priority:    messaging.NotificationPriority(p.Priority),
			RelatedID:   p.RelatedID,
		})
		if err != nil {
			return err
		}

		broadcaster.DeliverNotification(n.RecipientID, *n)
		badges.RecomputeAndPush(ctx, n.RecipientID)
		return nil
	})
}
