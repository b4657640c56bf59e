// Package authz is the single decision point for privileged messaging
// operations. Handlers never inline role or membership checks; they ask here
// and act on the typed decision.
package authz

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	userport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

// Decision is the outcome of an authorization check. Reason is set only when
// the operation is denied and is safe to echo back to the requesting client.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision.
var Allow = Decision{Allowed: true}

// Deny builds a negative decision with a client-safe reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorizer evaluates messaging operations against the acting identity.
type Authorizer struct {
	users userport.UserRepository
}

func NewAuthorizer(users userport.UserRepository) *Authorizer {
	return &Authorizer{users: users}
}

// CanMessage decides whether sender may open or continue a direct
// conversation with recipient. Senders cannot message themselves, and the
// recipient must be a real account.
func (a *Authorizer) CanMessage(ctx context.Context, senderID, recipientID int64) (Decision, error) {
	if senderID <= 0 {
		return Deny("not authenticated"), nil
	}
	if recipientID == senderID {
		return Deny("cannot message yourself"), nil
	}
	if _, err := a.users.Get(ctx, recipientID); err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			return Deny("recipient does not exist"), nil
		}
		return Decision{}, fmt.Errorf("authz: lookup recipient %d: %w", recipientID, err)
	}
	return Allow, nil
}

// CanAccessConversation decides whether userID may read or mark read the
// given conversation.
func (a *Authorizer) CanAccessConversation(conv messaging.Conversation, userID int64) Decision {
	if !conv.HasParticipant(userID) {
		return Deny("not a participant in this conversation")
	}
	return Allow
}
