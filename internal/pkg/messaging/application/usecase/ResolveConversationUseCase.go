package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// ResolveConversationInput is an unordered participant pair; (A,B) and (B,A)
// resolve to the same conversation.
type ResolveConversationInput struct {
	UserA int64
	UserB int64
}

// ResolveConversationUseCase is the idempotent find-or-create for the
// conversation of a user pair. Concurrent resolution for the same pair never
// produces duplicates: the store enforces a uniqueness constraint on the
// normalized pair, and a lost insert race is recovered by re-reading the row
// the winner created.
type ResolveConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewResolveConversationUseCase(repo repository.ConversationRepository) *ResolveConversationUseCase {
	return &ResolveConversationUseCase{Repo: repo}
}

func (uc *ResolveConversationUseCase) Execute(ctx context.Context, in ResolveConversationInput) (messaging.Conversation, error) {
	if in.UserA <= 0 || in.UserB <= 0 {
		return messaging.Conversation{}, fmt.Errorf("both participant ids are required")
	}
	if in.UserA == in.UserB {
		return messaging.Conversation{}, messaging.ErrSelfConversation
	}

	userA, userB := messaging.NormalizePair(in.UserA, in.UserB)

	conv, err := uc.Repo.Find(ctx, userA, userB)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, messaging.ErrNotFound) {
		return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	conv, err = uc.Repo.Create(ctx, userA, userB)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, messaging.ErrConversationExists) {
		return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Lost the insert race; the row exists now.
	conv, err = uc.Repo.Find(ctx, userA, userB)
	if err != nil {
		return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
