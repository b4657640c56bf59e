package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Get(ctx context.Context, id int64) (messaging.User, error) {
	if r == nil || r.pool == nil {
		return messaging.User{}, errors.New("PgUserRepository: nil pool")
	}
	var u messaging.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, role, avatar_url
		FROM account.user
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.User{}, messaging.ErrNotFound
	}
	return u, err
}
