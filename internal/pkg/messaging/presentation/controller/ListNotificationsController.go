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

// ListNotificationsController returns the acting user's notifications plus
// their current badge counts, so the offline poll path reads the same truth
// the push path delivers (one controller per endpoint).
type ListNotificationsController struct {
	UC     *usecase.ListNotificationsUseCase
	Badges *push.BadgeAggregator
}

func NewListNotificationsController(uc *usecase.ListNotificationsUseCase, badges *push.BadgeAggregator) *ListNotificationsController {
	return &ListNotificationsController{UC: uc, Badges: badges}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		limit, offset := pagination(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		items, err := h.UC.Execute(ctx, usecase.ListNotificationsInput{
			UserID: userID,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			writeUseCaseError(c, err)
			return
		}
		if items == nil {
			items = []messaging.Notification{}
		}

		counts, err := h.Badges.Counts(ctx, userID)
		if err != nil {
			writeUseCaseError(c, usecase.ErrPersistence)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": items,
			"counts":        counts,
			"limit":         limit,
			"offset":        offset,
		})
	}
}
