// Package stream consumes document-change events from a Redis stream through
// a consumer group. Every entry is acknowledged once processed, including
// entries that fail to decode.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

const (
	readCount  = 16
	claimCount = 32
	retryDelay = time.Second
)

type dispatcher interface {
	Dispatch(ctx context.Context, ev domain.ChangeEvent) error
}

type Consumer struct {
	rdb      *redis.Client
	router   dispatcher
	stream   string
	group    string
	consumer string
	block    time.Duration
	minIdle  time.Duration
	logger   *zap.Logger
}

func NewConsumer(rdb *redis.Client, router dispatcher, cfg config.TriggersConfig, logger *zap.Logger) *Consumer {
	return &Consumer{
		rdb:      rdb,
		router:   router,
		stream:   cfg.Stream,
		group:    cfg.Group,
		consumer: cfg.Consumer,
		block:    cfg.BlockTimeout,
		minIdle:  cfg.ReclaimIdle,
		logger:   logger,
	}
}

// EnsureGroup creates the stream and consumer group when missing.
func (c *Consumer) EnsureGroup(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s on %s: %w", c.group, c.stream, err)
	}
	return nil
}

// Run reads new entries until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.EnsureGroup(ctx); err != nil {
		return err
	}
	c.logger.Info("stream consumer started",
		zap.String("stream", c.stream),
		zap.String("group", c.group),
		zap.String("consumer", c.consumer),
	)

	for {
		_, err := c.Poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.logger.Warn("stream read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
		}
	}
}

// Poll performs one blocking read and processes what it returns.
func (c *Consumer) Poll(ctx context.Context) (int, error) {
	streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    readCount,
		Block:    c.block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for _, s := range streams {
		for _, msg := range s.Messages {
			c.process(ctx, msg)
			n++
		}
	}
	return n, nil
}

// Reclaim takes over entries left pending by any consumer for longer than
// the idle threshold and processes them again.
func (c *Consumer) Reclaim(ctx context.Context) (int, error) {
	start, n := "0-0", 0
	for {
		msgs, next, err := c.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.stream,
			Group:    c.group,
			Consumer: c.consumer,
			MinIdle:  c.minIdle,
			Start:    start,
			Count:    claimCount,
		}).Result()
		if err != nil {
			return n, fmt.Errorf("reclaim pending entries: %w", err)
		}
		for _, msg := range msgs {
			c.process(ctx, msg)
			n++
		}
		if next == "0-0" || next == "" || len(msgs) == 0 {
			return n, nil
		}
		start = next
	}
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	log := c.logger.With(zap.String("entry_id", msg.ID))

	ev, err := parseMessage(msg)
	if err != nil {
		log.Warn("dropping undecodable stream entry", zap.Error(err))
	} else if err := c.router.Dispatch(ctx, ev); err != nil && !errors.Is(err, domain.ErrUnrouted) {
		log.Warn("stream entry handled with errors", zap.Stringer("trigger", ev.Trigger), zap.Error(err))
	}

	if err := c.rdb.XAck(ctx, c.stream, c.group, msg.ID).Err(); err != nil {
		log.Error("failed to ack stream entry", zap.Error(err))
	}
}

// parseMessage reads the fields collection, change, doc_id, event_id,
// before and after. The document fields hold plain JSON objects.
func parseMessage(msg redis.XMessage) (domain.ChangeEvent, error) {
	field := func(k string) string {
		v, _ := msg.Values[k].(string)
		return v
	}

	change, err := domain.ParseChange(field("change"))
	if err != nil {
		return domain.ChangeEvent{}, err
	}

	ev := domain.ChangeEvent{
		EventID:    field("event_id"),
		Trigger:    domain.Trigger{Collection: field("collection"), Change: change},
		DocumentID: field("doc_id"),
	}
	if ev.EventID == "" {
		ev.EventID = msg.ID
	}
	if ev.After, err = parseDocument(field("after")); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("after: %w", err)
	}
	if ev.Before, err = parseDocument(field("before")); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("before: %w", err)
	}
	return ev, ev.Validate()
}

func parseDocument(raw string) (map[string]any, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	return doc, nil
}
