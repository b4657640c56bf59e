package repository

import (
	"context"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

// UserRepository exposes the read-only slice of account data the realtime
// layer needs. Account lifecycle (signup, OAuth, profile edits) is owned by
// another subsystem.
type UserRepository interface {
	// Get returns the user by id, or messaging.ErrNotFound.
	Get(ctx context.Context, id int64) (messaging.User, error)
}
