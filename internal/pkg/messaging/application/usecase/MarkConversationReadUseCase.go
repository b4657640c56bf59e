package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/authz"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// MarkConversationReadInput identifies which conversation the user finished
// reading.
type MarkConversationReadInput struct {
	ConversationID int64
	UserID         int64
}

// MarkConversationReadUseCase flips all unread messages addressed to the user
// in one conversation. Idempotent: a second call changes nothing and is not
// an error.
type MarkConversationReadUseCase struct {
	Messages      repository.MessageRepository
	Conversations repository.ConversationRepository
	Authorizer    *authz.Authorizer
}

func NewMarkConversationReadUseCase(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	authorizer *authz.Authorizer,
) *MarkConversationReadUseCase {
	return &MarkConversationReadUseCase{Messages: messages, Conversations: conversations, Authorizer: authorizer}
}

// Execute returns the number of rows flipped (0 on repeat calls).
func (uc *MarkConversationReadUseCase) Execute(ctx context.Context, in MarkConversationReadInput) (int64, error) {
	if in.ConversationID <= 0 || in.UserID <= 0 {
		return 0, fmt.Errorf("conversation id and user id are required")
	}

	conv, err := uc.Conversations.Get(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			return 0, messaging.ErrNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if decision := uc.Authorizer.CanAccessConversation(conv, in.UserID); !decision.Allowed {
		return 0, ErrDenied{Reason: decision.Reason}
	}

	changed, err := uc.Messages.MarkConversationRead(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return changed, nil
}
