package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// MarkConversationReadController marks every unread message addressed to the
// acting user in a conversation as read, then pushes their refreshed badge
// counts (one controller per endpoint).
type MarkConversationReadController struct {
	UC     *usecase.MarkConversationReadUseCase
	Badges *push.BadgeAggregator
}

func NewMarkConversationReadController(uc *usecase.MarkConversationReadUseCase, badges *push.BadgeAggregator) *MarkConversationReadController {
	return &MarkConversationReadController{UC: uc, Badges: badges}
}

func (h *MarkConversationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		conversationID, ok := pathID(c, "conversationId")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		changed, err := h.UC.Execute(ctx, usecase.MarkConversationReadInput{
			ConversationID: conversationID,
			UserID:         userID,
		})
		if err != nil {
			writeUseCaseError(c, err)
			return
		}

		// Read state changed (or idempotently stayed): resync the badge.
		h.Badges.RecomputeAndPush(ctx, userID)

		c.JSON(http.StatusOK, gin.H{"marked_read": changed})
	}
}
