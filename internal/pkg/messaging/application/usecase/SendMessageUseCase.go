package usecase

import (
	"context"
	"fmt"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/authz"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
	userport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

// SendMessageInput carries the data needed to send a direct message.
type SendMessageInput struct {
	SenderID      int64
	RecipientID   int64
	Content       string
	AttachmentURL *string
}

// SendMessageResult is everything the caller needs to ack the sender and fan
// out to the recipient.
type SendMessageResult struct {
	Message      messaging.Message
	Conversation messaging.Conversation
	Sender       messaging.User
}

// ErrDenied wraps an authorization denial so transport layers can map it to
// their own rejection shape.
type ErrDenied struct {
	Reason string
}

func (e ErrDenied) Error() string { return "messaging: denied: " + e.Reason }

// SendMessageUseCase authorizes, resolves the conversation for the pair, and
// persists the message. Persistence failures surface as ErrPersistence: the
// sender must always see either a durable ack or an explicit failure.
type SendMessageUseCase struct {
	Messages   repository.MessageRepository
	Users      userport.UserRepository
	Resolver   *ResolveConversationUseCase
	Authorizer *authz.Authorizer
}

func NewSendMessageUseCase(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	users userport.UserRepository,
	authorizer *authz.Authorizer,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		Messages:   messages,
		Users:      users,
		Resolver:   NewResolveConversationUseCase(conversations),
		Authorizer: authorizer,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	decision, err := uc.Authorizer.CanMessage(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !decision.Allowed {
		return nil, ErrDenied{Reason: decision.Reason}
	}

	conv, err := uc.Resolver.Execute(ctx, ResolveConversationInput{UserA: in.SenderID, UserB: in.RecipientID})
	if err != nil {
		return nil, err
	}

	msg, err := messaging.NewMessage(messaging.Message{
		ConversationID: conv.ID,
		SenderID:       in.SenderID,
		Content:        in.Content,
		AttachmentURL:  in.AttachmentURL,
	})
	if err != nil {
		return nil, err
	}

	saved, err := uc.Messages.Save(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sender, err := uc.Users.Get(ctx, in.SenderID)
	if err != nil {
		// The message is durable; a missing sender profile only degrades the
		// push payload, so fall back to the bare id.
		sender = messaging.User{ID: in.SenderID}
	}

	return &SendMessageResult{Message: saved, Conversation: conv, Sender: sender}, nil
}
