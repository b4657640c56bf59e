package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

// uniqueViolation is the SQLSTATE raised when the (user_a, user_b) unique
// constraint rejects a duplicate pair.
const uniqueViolation = "23505"

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

var _ repository.ConversationRepository = (*PgConversationRepository)(nil)

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

func (r *PgConversationRepository) Find(ctx context.Context, userA, userB int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}
	userA, userB = messaging.NormalizePair(userA, userB)
	var c messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_a, user_b, created_at, last_message_at
		FROM messaging.conversation
		WHERE user_a = $1 AND user_b = $2
	`, userA, userB).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, messaging.ErrNotFound
	}
	return c, err
}

func (r *PgConversationRepository) Create(ctx context.Context, userA, userB int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}
	userA, userB = messaging.NormalizePair(userA, userB)
	c := messaging.Conversation{UserA: userA, UserB: userB, CreatedAt: time.Now().UTC()}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messaging.conversation (user_a, user_b, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userA, userB, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return messaging.Conversation{}, messaging.ErrConversationExists
		}
		return messaging.Conversation{}, err
	}
	return c, nil
}

func (r *PgConversationRepository) Get(ctx context.Context, id int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}
	var c messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_a, user_b, created_at, last_message_at
		FROM messaging.conversation
		WHERE id = $1
	`, id).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, messaging.ErrNotFound
	}
	return c, err
}

func (r *PgConversationRepository) ListForUser(ctx context.Context, userID int64) ([]messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_a, user_b, created_at, last_message_at
		FROM messaging.conversation
		WHERE user_a = $1 OR user_b = $1
		ORDER BY COALESCE(last_message_at, created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []messaging.Conversation
	for rows.Next() {
		var c messaging.Conversation
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}
