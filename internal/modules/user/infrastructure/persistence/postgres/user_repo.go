package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/saransh1220/circle-notify/internal/modules/user/domain"
)

// settingsObject reads the stored settings of col, treating SQL NULL and any
// JSON value other than an object as empty.
func settingsObject(col string) string {
	return fmt.Sprintf(`CASE WHEN jsonb_typeof(%[1]s) = 'object' THEN %[1]s ELSE '{}'::jsonb END`, col)
}

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository returns a users repository backed by JSONB document columns.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

type userRow struct {
	ID                   string             `db:"id"`
	DisplayName          string             `db:"display_name"`
	Profile              types.JSONText     `db:"profile"`
	NotificationSettings types.NullJSONText `db:"notification_settings"`
	FCMTokens            types.JSONText     `db:"fcm_tokens"`
	FriendRequests       types.JSONText     `db:"friend_requests"`
	CreatedAt            time.Time          `db:"created_at"`
}

func (r userRow) toDomain() (*domain.User, error) {
	u := &domain.User{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		CreatedAt:   r.CreatedAt,
	}
	if err := r.Profile.Unmarshal(&u.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if r.NotificationSettings.Valid {
		var prefs domain.Preferences
		if err := r.NotificationSettings.Unmarshal(&prefs); err != nil {
			return nil, fmt.Errorf("decode notification settings: %w", err)
		}
		u.NotificationSettings = &prefs
	}
	if err := r.FCMTokens.Unmarshal(&u.FCMTokens); err != nil {
		return nil, fmt.Errorf("decode fcm tokens: %w", err)
	}
	if err := r.FriendRequests.Unmarshal(&u.FriendRequests); err != nil {
		return nil, fmt.Errorf("decode friend requests: %w", err)
	}
	return u, nil
}

// GetByID implements domain.UserFinder
func (r *PgUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	query := `
		SELECT id, display_name, profile, notification_settings, fcm_tokens, friend_requests, created_at
		FROM users
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// Upsert implements domain.UserRepository
func (r *PgUserRepository) Upsert(ctx context.Context, snap domain.Snapshot) error {
	u := snap.User
	profile, err := json.Marshal(u.Profile)
	if err != nil {
		return err
	}
	tokens := u.FCMTokens
	if tokens == nil {
		tokens = map[string]domain.PushToken{}
	}
	fcm, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	requests, err := json.Marshal(u.FriendRequests)
	if err != nil {
		return err
	}
	var settings any
	if snap.Settings != nil {
		b, err := json.Marshal(snap.Settings)
		if err != nil {
			return err
		}
		settings = string(b)
	}

	query := `
		INSERT INTO users (id, display_name, profile, notification_settings, fcm_tokens, friend_requests)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5::jsonb, $6::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			profile = EXCLUDED.profile,
			fcm_tokens = EXCLUDED.fcm_tokens,
			friend_requests = EXCLUDED.friend_requests,
			notification_settings = CASE
				WHEN EXCLUDED.notification_settings IS NULL THEN users.notification_settings
				ELSE ` + settingsObject("users.notification_settings") + ` || EXCLUDED.notification_settings
			END
	`
	_, err = r.db.ExecContext(ctx, query, u.ID, u.DisplayName, string(profile), settings, string(fcm), string(requests))
	return err
}

// MergeNotificationSettings implements domain.UserRepository.
// The jsonb concatenation keeps stored keys because the right operand wins.
func (r *PgUserRepository) MergeNotificationSettings(ctx context.Context, id string, prefs domain.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET notification_settings = $2::jsonb || ` + settingsObject("notification_settings") + `
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, string(payload))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ApplyNotificationSettingsToAll implements domain.UserRepository
func (r *PgUserRepository) ApplyNotificationSettingsToAll(ctx context.Context, prefs domain.Preferences) (int64, error) {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		UPDATE users
		SET notification_settings = ` + settingsObject("notification_settings") + ` || $1::jsonb
	`
	res, err := tx.ExecContext(ctx, query, string(payload))
	if err != nil {
		return 0, fmt.Errorf("update notification settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit notification settings: %w", err)
	}
	return n, nil
}
