package application

import (
	"context"
	"fmt"

	notifdomain "github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
	verifdomain "github.com/saransh1220/circle-notify/internal/modules/verification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type NotificationPipeline interface {
	Handle(ctx context.Context, ev notifdomain.Event) error
}

// UserSync keeps the user store in step with users documents.
type UserSync interface {
	Sync(ctx context.Context, snap userdomain.Snapshot) error
	EnsureDefaults(ctx context.Context, userID string) error
}

type VerificationWatcher interface {
	OnCreated(ctx context.Context, v verifdomain.Verification) error
}

type routeFunc func(ctx context.Context, ev domain.ChangeEvent) error

// Router dispatches change events through a fixed table keyed by
// (collection, change).
type Router struct {
	pipeline NotificationPipeline
	settings UserSync
	watcher  VerificationWatcher
	logger   *zap.Logger
	routes   map[domain.Trigger]routeFunc
}

func NewRouter(pipeline NotificationPipeline, settings UserSync, watcher VerificationWatcher, logger *zap.Logger) *Router {
	r := &Router{
		pipeline: pipeline,
		settings: settings,
		watcher:  watcher,
		logger:   logger,
	}
	r.routes = map[domain.Trigger]routeFunc{
		{Collection: domain.CollectionMessages, Change: domain.ChangeCreated}:           r.onMessageCreated,
		{Collection: domain.CollectionActivities, Change: domain.ChangeCreated}:         r.onActivityCreated,
		{Collection: domain.CollectionLikes, Change: domain.ChangeCreated}:              r.onLikeCreated,
		{Collection: domain.CollectionComments, Change: domain.ChangeCreated}:           r.onCommentCreated,
		{Collection: domain.CollectionUsers, Change: domain.ChangeCreated}:              r.onUserCreated,
		{Collection: domain.CollectionUsers, Change: domain.ChangeUpdated}:              r.onUserUpdated,
		{Collection: domain.CollectionPhoneVerifications, Change: domain.ChangeCreated}: r.onVerificationCreated,
	}
	return r
}

// Routed reports whether t has a handler.
func (r *Router) Routed(t domain.Trigger) bool {
	_, ok := r.routes[t]
	return ok
}

// Dispatch validates ev and runs its route. Unrouted triggers return
// ErrUnrouted and are counted as ignored.
func (r *Router) Dispatch(ctx context.Context, ev domain.ChangeEvent) error {
	collection, change := ev.Trigger.Collection, string(ev.Trigger.Change)

	if err := ev.Validate(); err != nil {
		metrics.TriggerEvents.WithLabelValues(collection, change, "invalid").Inc()
		return err
	}

	route, ok := r.routes[ev.Trigger]
	if !ok {
		metrics.TriggerEvents.WithLabelValues(collection, change, "ignored").Inc()
		r.logger.Debug("ignoring unrouted trigger", zap.Stringer("trigger", ev.Trigger), zap.String("document_id", ev.DocumentID))
		return fmt.Errorf("%w: %s", domain.ErrUnrouted, ev.Trigger)
	}

	if err := route(ctx, ev); err != nil {
		metrics.TriggerEvents.WithLabelValues(collection, change, "failed").Inc()
		r.logger.Error("trigger handler failed",
			zap.Stringer("trigger", ev.Trigger),
			zap.String("document_id", ev.DocumentID),
			zap.String("event_id", ev.EventID),
			zap.Error(err),
		)
		return err
	}

	metrics.TriggerEvents.WithLabelValues(collection, change, "handled").Inc()
	return nil
}

func (r *Router) onMessageCreated(ctx context.Context, ev domain.ChangeEvent) error {
	var doc messageDoc
	if err := decodeDocument(ev.After, &doc); err != nil {
		return err
	}
	return r.pipeline.Handle(ctx, notifdomain.MessageSent{
		MessageID:  ev.DocumentID,
		SenderID:   doc.SenderID,
		ReceiverID: doc.ReceiverID,
		ChatID:     doc.ChatID,
		Text:       doc.Text,
		MediaType:  notifdomain.MediaType(mediaType(doc.MediaType)),
	})
}

func (r *Router) onActivityCreated(ctx context.Context, ev domain.ChangeEvent) error {
	var doc activityDoc
	if err := decodeDocument(ev.After, &doc); err != nil {
		return err
	}
	return r.pipeline.Handle(ctx, notifdomain.ActivityInvite{
		ActivityID:   ev.DocumentID,
		CreatedBy:    doc.CreatedBy,
		Participants: doc.Participants,
		Title:        doc.Title,
	})
}

func (r *Router) onLikeCreated(ctx context.Context, ev domain.ChangeEvent) error {
	var doc likeDoc
	if err := decodeDocument(ev.After, &doc); err != nil {
		return err
	}
	return r.pipeline.Handle(ctx, notifdomain.LikeAdded{
		LikeID:  ev.DocumentID,
		UserID:  doc.UserID,
		OwnerID: doc.OwnerID,
		PostID:  doc.PostID,
	})
}

func (r *Router) onCommentCreated(ctx context.Context, ev domain.ChangeEvent) error {
	var doc commentDoc
	if err := decodeDocument(ev.After, &doc); err != nil {
		return err
	}
	return r.pipeline.Handle(ctx, notifdomain.CommentAdded{
		CommentID: ev.DocumentID,
		UserID:    doc.UserID,
		OwnerID:   doc.OwnerID,
		PostID:    doc.PostID,
		Text:      doc.Text,
	})
}

// syncUser mirrors the event's document so later lookups see it.
func (r *Router) syncUser(ctx context.Context, ev domain.ChangeEvent) (*userdomain.User, error) {
	var u userdomain.User
	if err := decodeDocument(ev.After, &u); err != nil {
		return nil, err
	}
	u.ID = ev.DocumentID
	if err := r.settings.Sync(ctx, userdomain.Snapshot{User: u, Settings: documentSettings(ev.After)}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Router) onUserCreated(ctx context.Context, ev domain.ChangeEvent) error {
	if _, err := r.syncUser(ctx, ev); err != nil {
		return err
	}
	return r.settings.EnsureDefaults(ctx, ev.DocumentID)
}

// onUserUpdated emits one friend request event per id newly present in
// friendRequests.received. Each request is delivered independently.
func (r *Router) onUserUpdated(ctx context.Context, ev domain.ChangeEvent) error {
	var before userdomain.User
	if ev.Before != nil {
		if err := decodeDocument(ev.Before, &before); err != nil {
			return err
		}
	}
	after, err := r.syncUser(ctx, ev)
	if err != nil {
		return err
	}

	var errs error
	for _, from := range userdomain.NewFriendRequests(before.FriendRequests.Received, after.FriendRequests.Received) {
		err := r.pipeline.Handle(ctx, notifdomain.FriendRequestReceived{
			FromUserID: from,
			ToUserID:   ev.DocumentID,
		})
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (r *Router) onVerificationCreated(ctx context.Context, ev domain.ChangeEvent) error {
	var v verifdomain.Verification
	if err := decodeDocument(ev.After, &v); err != nil {
		return err
	}
	v.ID = ev.DocumentID
	return r.watcher.OnCreated(ctx, v)
}
