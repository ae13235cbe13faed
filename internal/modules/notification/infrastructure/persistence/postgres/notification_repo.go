package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
)

type PgNotificationRepository struct {
	db *sqlx.DB
}

func NewPgNotificationRepository(db *sqlx.DB) *PgNotificationRepository {
	return &PgNotificationRepository{db: db}
}

// Create appends n. A missing id or timestamp is filled in and the status
// defaults to unread.
func (r *PgNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Status == "" {
		n.Status = domain.StatusUnread
	}

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, body, status, created_at, data)
		VALUES (:id, :recipient_id, :sender_id, :type, :title, :body, :status, :created_at, :data)
	`
	_, err := r.db.NamedExecContext(ctx, query, n)
	return err
}

func (r *PgNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, sender_id, type, title, body, status, created_at, data
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND status = 'unread'
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
