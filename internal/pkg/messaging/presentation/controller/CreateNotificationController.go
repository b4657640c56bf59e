package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// CreateNotificationController is the internal entry point other marketplace
// subsystems (application status changes, new applications, feedback) call
// after their own persistence commits: persist the notification, fan it out,
// refresh the recipient's badge (one controller per endpoint).
type CreateNotificationController struct {
	UC          *usecase.CreateNotificationUseCase
	Broadcaster *push.Broadcaster
	Badges      *push.BadgeAggregator
}

func NewCreateNotificationController(uc *usecase.CreateNotificationUseCase, broadcaster *push.Broadcaster, badges *push.BadgeAggregator) *CreateNotificationController {
	return &CreateNotificationController{UC: uc, Broadcaster: broadcaster, Badges: badges}
}

type createNotificationRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	RelatedID   *int64 `json:"related_id"`
}

func (h *CreateNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.UC.Execute(ctx, usecase.CreateNotificationInput{
			RecipientID: req.RecipientID,
			Type:        messaging.NotificationType(req.Type),
			Title:       req.Title,
			Message:     req.Message,
			Priority:    messaging.NotificationPriority(req.Priority),
			RelatedID:   req.RelatedID,
		})
		if err != nil {
			writeUseCaseError(c, err)
			return
		}

		// Row is durable; push is best-effort from here on.
		h.Broadcaster.DeliverNotification(n.RecipientID, *n)
		h.Badges.RecomputeAndPush(ctx, n.RecipientID)

		c.JSON(http.StatusCreated, n)
	}
}
