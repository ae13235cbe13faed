package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RealtimeNotifier pushes freshly stored notifications to connected clients.
type RealtimeNotifier interface {
	SendToUser(userID string, payload any)
}

// Pipeline turns domain events into stored notifications and push deliveries.
// Every call is independent; the pipeline holds no per-event state.
type Pipeline struct {
	users     userdomain.UserFinder
	repo      domain.NotificationRepository
	push      domain.PushSender
	notifier  RealtimeNotifier
	reports   domain.ReportSink
	channelID string
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Pipeline)

func WithRealtime(n RealtimeNotifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

func WithReportSink(s domain.ReportSink) Option {
	return func(p *Pipeline) { p.reports = s }
}

// WithChannelID sets the Android notification channel used for pushes.
func WithChannelID(id string) Option {
	return func(p *Pipeline) {
		if id != "" {
			p.channelID = id
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(users userdomain.UserFinder, repo domain.NotificationRepository, push domain.PushSender, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		users:     users,
		repo:      repo,
		push:      push,
		channelID: "default",
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// candidate is a notification that still has to pass the preference gate.
type candidate struct {
	kind        domain.EventKind
	typ         domain.NotificationType
	recipientID string
	actorID     string
	category    userdomain.Category
	build       func(actor *userdomain.User) *domain.Notification
}

// Handle processes one event. Ineligible and self-directed events return nil.
// Push failures are reported through the fan-out report, never as an error.
func (p *Pipeline) Handle(ctx context.Context, ev domain.Event) error {
	switch e := ev.(type) {
	case domain.FriendRequestReceived:
		return p.deliver(ctx, candidate{
			kind:        e.Kind(),
			typ:         domain.TypeFriendRequest,
			recipientID: e.ToUserID,
			actorID:     e.FromUserID,
			category:    userdomain.CategoryNewFriends,
			build: func(actor *userdomain.User) *domain.Notification {
				return BuildFriendRequest(e, actor)
			},
		})

	case domain.MessageSent:
		if e.SenderID == e.ReceiverID {
			p.skip(domain.TypeMessage, "self", e.ReceiverID)
			return nil
		}
		return p.deliver(ctx, candidate{
			kind:        e.Kind(),
			typ:         domain.TypeMessage,
			recipientID: e.ReceiverID,
			actorID:     e.SenderID,
			category:    userdomain.CategoryMessages,
			build: func(actor *userdomain.User) *domain.Notification {
				return BuildMessage(e, actor)
			},
		})

	case domain.ActivityInvite:
		var errs error
		for _, participantID := range e.Participants {
			if participantID == e.CreatedBy {
				p.skip(domain.TypeActivity, "self", participantID)
				continue
			}
			err := p.deliver(ctx, candidate{
				kind:        e.Kind(),
				typ:         domain.TypeActivity,
				recipientID: participantID,
				actorID:     e.CreatedBy,
				category:    userdomain.CategoryActivityUpdates,
				build: func(actor *userdomain.User) *domain.Notification {
					return BuildActivityInvite(e, participantID, actor)
				},
			})
			errs = multierr.Append(errs, err)
		}
		return errs

	case domain.LikeAdded:
		if e.UserID == e.OwnerID {
			p.skip(domain.TypeLike, "self", e.OwnerID)
			return nil
		}
		return p.deliver(ctx, candidate{
			kind:        e.Kind(),
			typ:         domain.TypeLike,
			recipientID: e.OwnerID,
			actorID:     e.UserID,
			category:    userdomain.CategoryLikes,
			build: func(actor *userdomain.User) *domain.Notification {
				return BuildLike(e, actor)
			},
		})

	case domain.CommentAdded:
		if e.UserID == e.OwnerID {
			p.skip(domain.TypeComment, "self", e.OwnerID)
			return nil
		}
		return p.deliver(ctx, candidate{
			kind:        e.Kind(),
			typ:         domain.TypeComment,
			recipientID: e.OwnerID,
			actorID:     e.UserID,
			category:    userdomain.CategoryComments,
			build: func(actor *userdomain.User) *domain.Notification {
				return BuildComment(e, actor)
			},
		})

	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedEvent, ev.Kind())
	}
}

func (p *Pipeline) skip(t domain.NotificationType, reason, recipientID string) {
	metrics.NotificationsSkipped.WithLabelValues(string(t), reason).Inc()
	p.logger.Debug("notification skipped",
		zap.String("type", string(t)),
		zap.String("reason", reason),
		zap.String("recipient_id", recipientID),
	)
}

func (p *Pipeline) deliver(ctx context.Context, c candidate) error {
	owner, err := p.users.GetByID(ctx, c.recipientID)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		p.skip(c.typ, "missing", c.recipientID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load recipient %s: %w", c.recipientID, err)
	}

	if !IsEligible(owner, c.category) {
		p.skip(c.typ, "ineligible", c.recipientID)
		return nil
	}

	actor, err := p.users.GetByID(ctx, c.actorID)
	if err != nil {
		if !errors.Is(err, userdomain.ErrUserNotFound) {
			p.logger.Warn("actor lookup failed, using placeholder name",
				zap.String("actor_id", c.actorID), zap.Error(err))
		}
		actor = nil
	}

	n := c.build(actor)
	n.ID = uuid.New()
	n.CreatedAt = p.now()

	if err := p.repo.Create(ctx, n); err != nil {
		p.logger.Error("failed to store notification",
			zap.String("type", string(n.Type)),
			zap.String("recipient_id", n.RecipientID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", domain.ErrNotificationStore, err)
	}
	metrics.NotificationsPersisted.WithLabelValues(string(n.Type)).Inc()

	if p.notifier != nil {
		p.notifier.SendToUser(n.RecipientID, n)
	}

	report := p.fanout(ctx, c.kind, n, userdomain.ResolveTokens(owner.FCMTokens))
	if p.reports != nil {
		if err := p.reports.Store(ctx, report); err != nil {
			p.logger.Warn("failed to archive fan-out report",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}
	return nil
}
