package domain

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserFinder is the read side used by the notification pipeline.
type UserFinder interface {
	// GetByID returns ErrUserNotFound when no document exists.
	GetByID(ctx context.Context, id string) (*User, error)
}

type UserRepository interface {
	UserFinder

	// Upsert mirrors a document into the store. Identity, profile, tokens and
	// friend requests are replaced. Settings keys on the snapshot overwrite
	// stored keys of the same name; other stored keys are kept.
	Upsert(ctx context.Context, s Snapshot) error

	// MergeNotificationSettings writes prefs into the user's settings object.
	// Keys already stored win over prefs; other user fields are untouched.
	MergeNotificationSettings(ctx context.Context, id string, prefs Preferences) error

	// ApplyNotificationSettingsToAll overwrites the seven flags on every user
	// in a single transaction and returns the number of documents updated.
	ApplyNotificationSettingsToAll(ctx context.Context, prefs Preferences) (int64, error)
}
