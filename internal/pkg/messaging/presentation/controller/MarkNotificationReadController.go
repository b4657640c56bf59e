package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// MarkNotificationReadController flips one notification to read and pushes
// the acting user's refreshed badge counts (one controller per endpoint).
type MarkNotificationReadController struct {
	UC     *usecase.MarkNotificationReadUseCase
	Badges *push.BadgeAggregator
}

func NewMarkNotificationReadController(uc *usecase.MarkNotificationReadUseCase, badges *push.BadgeAggregator) *MarkNotificationReadController {
	return &MarkNotificationReadController{UC: uc, Badges: badges}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		notificationID, ok := pathID(c, "notificationId")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.MarkNotificationReadInput{
			NotificationID: notificationID,
			UserID:         userID,
		})
		if err != nil {
			writeUseCaseError(c, err)
			return
		}

		h.Badges.RecomputeAndPush(ctx, userID)

		c.Status(http.StatusNoContent)
	}
}
