package application

import (
	"context"
	"fmt"

	"github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"go.uber.org/zap"
)

// SettingsService maintains users' notification preference objects.
type SettingsService struct {
	repo   domain.UserRepository
	logger *zap.Logger
}

func NewSettingsService(repo domain.UserRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Sync mirrors a users document into the store.
func (s *SettingsService) Sync(ctx context.Context, snap domain.Snapshot) error {
	if err := s.repo.Upsert(ctx, snap); err != nil {
		return fmt.Errorf("mirror user %s: %w", snap.User.ID, err)
	}
	return nil
}

// EnsureDefaults gives a newly created user every preference flag enabled.
// Flags the client already wrote are kept.
func (s *SettingsService) EnsureDefaults(ctx context.Context, userID string) error {
	if err := s.repo.MergeNotificationSettings(ctx, userID, domain.DefaultPreferences()); err != nil {
		return fmt.Errorf("set default notification settings for %s: %w", userID, err)
	}
	s.logger.Info("default notification settings applied", zap.String("user_id", userID))
	return nil
}

// ResetAll enables every preference flag for every user in one transaction.
func (s *SettingsService) ResetAll(ctx context.Context) (int64, error) {
	n, err := s.repo.ApplyNotificationSettingsToAll(ctx, domain.DefaultPreferences())
	if err != nil {
		return 0, err
	}
	s.logger.Info("notification settings reset for all users", zap.Int64("updated", n))
	return n, nil
}
