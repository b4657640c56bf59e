package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

var _ repository.MessageRepository = (*PgMessageRepository)(nil)

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Save(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	if r == nil || r.pool == nil {
		return messaging.Message{}, errors.New("PgMessageRepository: nil pool")
	}
	// The conversation's last_message_at moves forward in the same statement
	// so listing order never lags a committed message.
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO messaging.message (conversation_id, sender_id, content, read, created_at, attachment_url)
			VALUES ($1, $2, $3, FALSE, $4, $5)
			RETURNING id, conversation_id, created_at
		), bumped AS (
			UPDATE messaging.conversation c
			SET last_message_at = inserted.created_at
			FROM inserted
			WHERE c.id = inserted.conversation_id
		)
		SELECT id FROM inserted
	`, m.ConversationID, m.SenderID, m.Content, m.CreatedAt, m.AttachmentURL).Scan(&m.ID)
	if err != nil {
		return messaging.Message{}, err
	}
	m.Read = false
	return m, nil
}

func (r *PgMessageRepository) ListByConversation(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, read, created_at, attachment_url
		FROM messaging.message
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt, &m.AttachmentURL); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgMessageRepository) MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	// Only messages addressed to the reader flip; the sender's own rows keep
	// their state. Re-running matches zero rows, which keeps the call idempotent.
	ct, err := r.pool.Exec(ctx, `
		UPDATE messaging.message
		SET read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = FALSE
	`, conversationID, userID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgMessageRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessageRepository: nil pool")
	}
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messaging.message m
		JOIN messaging.conversation c ON c.id = m.conversation_id
		WHERE (c.user_a = $1 OR c.user_b = $1)
		  AND m.sender_id <> $1
		  AND m.read = FALSE
	`, userID).Scan(&count)
	return count, err
}
