package application

import (
	"context"

	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
)

// QueryService serves the read side of the notification center.
type QueryService struct {
	repo domain.NotificationRepository
}

func NewQueryService(repo domain.NotificationRepository) *QueryService {
	return &QueryService{repo: repo}
}

func (s *QueryService) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error) {
	items, err := s.repo.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return items, nil
}

func (s *QueryService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}
