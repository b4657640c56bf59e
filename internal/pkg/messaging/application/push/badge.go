package push

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/wire"
)

// BadgeAggregator recomputes a user's per-category unread counts from the
// store and pushes them to the user's live connections. Counts are read at
// query time, never maintained incrementally, so a missed push can never
// cause drift; pushing identical counts twice is harmless.
type BadgeAggregator struct {
	messages      repository.MessageRepository
	notifications repository.NotificationRepository
	registry      *realtime.Registry
	broadcaster   *Broadcaster
	log           *zap.Logger
}

func NewBadgeAggregator(
	messages repository.MessageRepository,
	notifications repository.NotificationRepository,
	registry *realtime.Registry,
	broadcaster *Broadcaster,
	log *zap.Logger,
) *BadgeAggregator {
	return &BadgeAggregator{
		messages:      messages,
		notifications: notifications,
		registry:      registry,
		broadcaster:   broadcaster,
		log:           log,
	}
}

// Counts returns the per-category unread totals for the user as stored right
// now.
func (a *BadgeAggregator) Counts(ctx context.Context, userID int64) (messaging.BadgeCounts, error) {
	counts, err := a.notifications.UnreadCountsByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("badge: notification counts for %d: %w", userID, err)
	}
	if counts == nil {
		counts = messaging.BadgeCounts{}
	}

	unreadMessages, err := a.messages.UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("badge: message count for %d: %w", userID, err)
	}
	counts[messaging.BadgeCategoryMessages] = unreadMessages

	return counts, nil
}

// RecomputeAndPush queries current counts and, if the user is online, pushes
// a badge_counts_update frame. Every code path that creates a message or
// notification or mutates read state calls this afterward. Offline users are
// skipped without querying; their next poll reads the same stored truth.
func (a *BadgeAggregator) RecomputeAndPush(ctx context.Context, userID int64) {
	if !a.registry.Online(userID) {
		return
	}

	counts, err := a.Counts(ctx, userID)
	if err != nil {
		// Best-effort: the data is durable, only the badge push is lost.
		a.log.Warn("badge recompute failed", zap.Int64("userId", userID), zap.Error(err))
		return
	}

	payload, err := wire.BadgeCounts(counts)
	if err != nil {
		a.log.Error("encode badge frame", zap.Int64("userId", userID), zap.Error(err))
		return
	}
	a.broadcaster.Deliver(userID, payload)
}
