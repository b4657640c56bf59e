package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/authz"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// GetMessagesInput carries parameters to page through a conversation.
type GetMessagesInput struct {
	ConversationID int64
	UserID         int64
	Limit          int
	Offset         int
}

// GetMessagesUseCase fetches a page of a conversation the user participates in.
type GetMessagesUseCase struct {
	Messages      repository.MessageRepository
	Conversations repository.ConversationRepository
	Authorizer    *authz.Authorizer
}

func NewGetMessagesUseCase(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	authorizer *authz.Authorizer,
) *GetMessagesUseCase {
	return &GetMessagesUseCase{Messages: messages, Conversations: conversations, Authorizer: authorizer}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]messaging.Message, error) {
	if in.ConversationID <= 0 || in.UserID <= 0 {
		return nil, fmt.Errorf("conversation id and user id are required")
	}

	conv, err := uc.Conversations.Get(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			return nil, messaging.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if decision := uc.Authorizer.CanAccessConversation(conv, in.UserID); !decision.Allowed {
		return nil, ErrDenied{Reason: decision.Reason}
	}

	msgs, err := uc.Messages.ListByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
