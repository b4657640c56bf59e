package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Save(ctx context.Context, n messaging.Notification) (messaging.Notification, error) {
	if r == nil || r.pool == nil {
		return messaging.Notification{}, errors.New("PgNotificationRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messaging.notification (recipient_id, type, title, message, priority, related_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING id
	`, n.RecipientID, n.Type, n.Title, n.Message, n.Priority, n.RelatedID, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return messaging.Notification{}, err
	}
	n.Read = false
	return n, nil
}

func (r *PgNotificationRepository) ListForRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]messaging.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, recipient_id, type, title, message, priority, related_id, read, created_at
		FROM messaging.notification
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []messaging.Notification
	for rows.Next() {
		var n messaging.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.Priority, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	// Matching on read state is deliberately omitted so re-marking an already
	// read row succeeds as a no-op rather than reporting not-found.
	ct, err := r.pool.Exec(ctx, `
		UPDATE messaging.notification
		SET read = TRUE
		WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return messaging.ErrNotFound
	}
	return nil
}

func (r *PgNotificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM messaging.notification
		WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return messaging.ErrNotFound
	}
	return nil
}

func (r *PgNotificationRepository) UnreadCountsByCategory(ctx context.Context, recipientID int64) (messaging.BadgeCounts, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT type, COUNT(*)
		FROM messaging.notification
		WHERE recipient_id = $1 AND read = FALSE
		GROUP BY type
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := messaging.BadgeCounts{}
	for rows.Next() {
		var (
			typ messaging.NotificationType
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ.Category()] += n
	}
	return counts, rows.Err()
}
