package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// DeleteNotificationController removes one notification on explicit user
// action (one controller per endpoint). Deleting an unread notification
// changes the badge totals, so counts are recomputed afterward.
type DeleteNotificationController struct {
	UC     *usecase.DeleteNotificationUseCase
	Badges *push.BadgeAggregator
}

func NewDeleteNotificationController(uc *usecase.DeleteNotificationUseCase, badges *push.BadgeAggregator) *DeleteNotificationController {
	return &DeleteNotificationController{UC: uc, Badges: badges}
}

func (h *DeleteNotificationController) Handle() gin.HandlerFunc {
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

		err := h.UC.Execute(ctx, usecase.DeleteNotificationInput{
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
