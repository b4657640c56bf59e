package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// GetMessagesController handles fetching a page of conversation messages
// (one controller per endpoint).
type GetMessagesController struct {
	UC *usecase.GetMessagesUseCase
}

func NewGetMessagesController(uc *usecase.GetMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{UC: uc}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		conversationID, ok := pathID(c, "conversationId")
		if !ok {
			return
		}
		limit, offset := pagination(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetMessagesInput{
			ConversationID: conversationID,
			UserID:         userID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			writeUseCaseError(c, err)
			return
		}
		if msgs == nil {
			msgs = []messaging.Message{}
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": msgs,
			"limit":    limit,
			"offset":   offset,
			"count":    len(msgs),
		})
	}
}

// writeUseCaseError maps use case errors onto HTTP statuses uniformly across
// the message/notification endpoints.
func writeUseCaseError(c *gin.Context, err error) {
	var denied usecase.ErrDenied
	switch {
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{"error": denied.Reason})
	case errors.Is(err, messaging.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
