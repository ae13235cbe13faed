package application

import (
	"context"
	"errors"
	"testing"

	"github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userRepoStub struct {
	getByIDFn    func(context.Context, string) (*domain.User, error)
	upsertFn     func(context.Context, domain.Snapshot) error
	mergeFn      func(context.Context, string, domain.Preferences) error
	applyToAllFn func(context.Context, domain.Preferences) (int64, error)
}

func (s userRepoStub) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s userRepoStub) Upsert(ctx context.Context, snap domain.Snapshot) error {
	return s.upsertFn(ctx, snap)
}

func (s userRepoStub) MergeNotificationSettings(ctx context.Context, id string, prefs domain.Preferences) error {
	return s.mergeFn(ctx, id, prefs)
}

func (s userRepoStub) ApplyNotificationSettingsToAll(ctx context.Context, prefs domain.Preferences) (int64, error) {
	return s.applyToAllFn(ctx, prefs)
}

func TestSettingsService_Sync(t *testing.T) {
	var got domain.Snapshot
	svc := NewSettingsService(userRepoStub{
		upsertFn: func(_ context.Context, snap domain.Snapshot) error {
			got = snap
			return nil
		},
	}, zap.NewNop())

	snap := domain.Snapshot{User: domain.User{ID: "u1", DisplayName: "ana"}, Settings: map[string]bool{"likeNotifications": false}}
	require.NoError(t, svc.Sync(context.Background(), snap))
	assert.Equal(t, snap, got)

	failing := NewSettingsService(userRepoStub{
		upsertFn: func(context.Context, domain.Snapshot) error { return errors.New("disk full") },
	}, zap.NewNop())
	err := failing.Sync(context.Background(), snap)
	assert.ErrorContains(t, err, "mirror user u1")
	assert.ErrorContains(t, err, "disk full")
}

func TestSettingsService_EnsureDefaults(t *testing.T) {
	var gotID string
	var gotPrefs domain.Preferences
	svc := NewSettingsService(userRepoStub{
		mergeFn: func(_ context.Context, id string, prefs domain.Preferences) error {
			gotID, gotPrefs = id, prefs
			return nil
		},
	}, zap.NewNop())

	require.NoError(t, svc.EnsureDefaults(context.Background(), "u1"))
	assert.Equal(t, "u1", gotID)
	assert.Equal(t, domain.DefaultPreferences(), gotPrefs)
}

func TestSettingsService_EnsureDefaults_Error(t *testing.T) {
	svc := NewSettingsService(userRepoStub{
		mergeFn: func(context.Context, string, domain.Preferences) error { return domain.ErrUserNotFound },
	}, zap.NewNop())

	err := svc.EnsureDefaults(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestSettingsService_ResetAll(t *testing.T) {
	svc := NewSettingsService(userRepoStub{
		applyToAllFn: func(_ context.Context, prefs domain.Preferences) (int64, error) {
			assert.Equal(t, domain.DefaultPreferences(), prefs)
			return 42, nil
		},
	}, zap.NewNop())

	n, err := svc.ResetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	failing := NewSettingsService(userRepoStub{
		applyToAllFn: func(context.Context, domain.Preferences) (int64, error) { return 0, errors.New("commit failed") },
	}, zap.NewNop())
	_, err = failing.ResetAll(context.Background())
	assert.EqualError(t, err, "commit failed")
}
