package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/verification/domain"
)

type PgVerificationRepository struct {
	db *sqlx.DB
}

func NewPgVerificationRepository(db *sqlx.DB) *PgVerificationRepository {
	return &PgVerificationRepository{db: db}
}

// Create mirrors a new record. A redelivered event leaves the stored row alone.
func (r *PgVerificationRepository) Create(ctx context.Context, v domain.Verification) error {
	query := `
		INSERT INTO phone_verifications (id, phone_number, verification_code, is_verified)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.PhoneNumber, v.VerificationCode, v.IsVerified)
	return err
}

func (r *PgVerificationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	query := `
		INSERT INTO phone_verifications (id, phone_number, verification_code, sms_sent, sms_sent_at)
		VALUES ($1, '', '', TRUE, $2)
		ON CONFLICT (id) DO UPDATE SET sms_sent = TRUE, sms_sent_at = EXCLUDED.sms_sent_at
	`
	_, err := r.db.ExecContext(ctx, query, id, at)
	return err
}

func (r *PgVerificationRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) error {
	query := `
		INSERT INTO phone_verifications (id, phone_number, verification_code, sms_error, sms_error_at)
		VALUES ($1, '', '', $2, $3)
		ON CONFLICT (id) DO UPDATE SET sms_error = EXCLUDED.sms_error, sms_error_at = EXCLUDED.sms_error_at
	`
	_, err := r.db.ExecContext(ctx, query, id, reason, at)
	return err
}
