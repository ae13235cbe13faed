package domain

import (
	"context"
	"errors"
)

var (
	ErrPushRejected      = errors.New("push rejected by gateway")
	ErrUnsupportedEvent  = errors.New("unsupported event")
	ErrNotificationStore = errors.New("notification store failure")
)

// NotificationRepository is append-only from the pipeline's point of view.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}
