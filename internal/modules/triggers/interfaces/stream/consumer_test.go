package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dispatcherStub struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
}

func (d *dispatcherStub) Dispatch(_ context.Context, ev domain.ChangeEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	return d.err
}

func newTestConsumer(t *testing.T, router dispatcher) (*Consumer, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewConsumer(rdb, router, config.TriggersConfig{
		Stream:       "doc-events",
		Group:        "notification-pipeline",
		Consumer:     "worker-1",
		BlockTimeout: 10 * time.Millisecond,
		ReclaimIdle:  0,
	}, zap.NewNop())
	require.NoError(t, c.EnsureGroup(context.Background()))
	return c, rdb
}

func addEntry(t *testing.T, rdb *redis.Client, values map[string]any) string {
	t.Helper()
	id, err := rdb.XAdd(context.Background(), &redis.XAddArgs{Stream: "doc-events", Values: values}).Result()
	require.NoError(t, err)
	return id
}

func jsonDoc(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func pending(t *testing.T, rdb *redis.Client) int64 {
	t.Helper()
	p, err := rdb.XPending(context.Background(), "doc-events", "notification-pipeline").Result()
	require.NoError(t, err)
	return p.Count
}

func TestConsumer_EnsureGroupIsIdempotent(t *testing.T) {
	c, _ := newTestConsumer(t, &dispatcherStub{})
	assert.NoError(t, c.EnsureGroup(context.Background()))
}

func TestConsumer_PollDispatchesAndAcks(t *testing.T) {
	router := &dispatcherStub{}
	c, rdb := newTestConsumer(t, router)

	addEntry(t, rdb, map[string]any{
		"collection": "likes",
		"change":     "created",
		"doc_id":     "like-1",
		"event_id":   "evt-1",
		"after":      jsonDoc(t, map[string]any{"userId": "bob", "ownerId": "alice", "postId": "p1"}),
	})

	n, err := c.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, router.events, 1)
	ev := router.events[0]
	assert.Equal(t, "evt-1", ev.EventID)
	assert.Equal(t, domain.Trigger{Collection: "likes", Change: domain.ChangeCreated}, ev.Trigger)
	assert.Equal(t, "like-1", ev.DocumentID)
	assert.Equal(t, "alice", ev.After["ownerId"])
	assert.Nil(t, ev.Before)
	assert.Zero(t, pending(t, rdb))
}

func TestConsumer_PollEmptyStream(t *testing.T) {
	c, _ := newTestConsumer(t, &dispatcherStub{})
	n, err := c.Poll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConsumer_AcksPoisonAndFailedEntries(t *testing.T) {
	router := &dispatcherStub{err: errors.New("store down")}
	c, rdb := newTestConsumer(t, router)

	addEntry(t, rdb, map[string]any{"collection": "likes", "change": "deleted", "doc_id": "x", "after": "{}"})
	addEntry(t, rdb, map[string]any{"collection": "likes", "change": "created", "doc_id": "x", "after": "{not json"})
	addEntry(t, rdb, map[string]any{"collection": "likes", "change": "created", "doc_id": "y", "after": `{"userId":"a"}`})

	n, err := c.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, router.events, 1)
	assert.Zero(t, pending(t, rdb))
}

func TestConsumer_EventIDFallsBackToEntryID(t *testing.T) {
	router := &dispatcherStub{}
	c, rdb := newTestConsumer(t, router)

	id := addEntry(t, rdb, map[string]any{
		"collection": "users",
		"change":     "updated",
		"doc_id":     "u1",
		"before":     `{"friendRequests":{"received":["A"]}}`,
		"after":      `{"friendRequests":{"received":["A","B"]}}`,
	})

	_, err := c.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, router.events, 1)
	assert.Equal(t, id, router.events[0].EventID)
	assert.NotNil(t, router.events[0].Before)
}

func TestConsumer_ReclaimProcessesStalePending(t *testing.T) {
	router := &dispatcherStub{}
	c, rdb := newTestConsumer(t, router)
	ctx := context.Background()

	addEntry(t, rdb, map[string]any{"collection": "likes", "change": "created", "doc_id": "l1", "after": `{"userId":"a"}`})

	// Another consumer reads the entry and dies before acking.
	_, err := rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    "notification-pipeline",
		Consumer: "worker-2",
		Streams:  []string{"doc-events", ">"},
		Count:    1,
	}).Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, pending(t, rdb))

	n, err := c.Reclaim(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, router.events, 1)
	assert.Equal(t, "l1", router.events[0].DocumentID)
	assert.Zero(t, pending(t, rdb))
}

func TestConsumer_RunStopsOnCancel(t *testing.T) {
	router := &dispatcherStub{}
	c, rdb := newTestConsumer(t, router)
	addEntry(t, rdb, map[string]any{"collection": "likes", "change": "created", "doc_id": "l1", "after": `{}`})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		router.mu.Lock()
		defer router.mu.Unlock()
		return len(router.events) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

type reclaimStub struct {
	calls int
	err   error
}

func (r *reclaimStub) Reclaim(context.Context) (int, error) {
	r.calls++
	return 2, r.err
}

func TestReclaimer_StartAndRunOnce(t *testing.T) {
	stub := &reclaimStub{}
	r := NewReclaimer(stub, zap.NewNop(), WithSchedule("@every 1h"))
	require.NoError(t, r.Start())
	defer r.Stop()

	r.RunOnce()
	assert.Equal(t, 1, stub.calls)

	stub.err = errors.New("redis down")
	r.RunOnce()
	assert.Equal(t, 2, stub.calls)
}

func TestReclaimer_InvalidSchedule(t *testing.T) {
	r := NewReclaimer(&reclaimStub{}, zap.NewNop(), WithSchedule("not a spec"))
	assert.Error(t, r.Start())
}
