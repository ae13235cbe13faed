package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TriggerEvents counts routed document changes by outcome (handled|failed|ignored|invalid).
	TriggerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circle_trigger_events_total",
			Help: "Total number of document-change events received by the pipeline",
		},
		[]string{"collection", "change", "result"},
	)

	// NotificationsPersisted counts notification records written, by type.
	NotificationsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circle_notifications_persisted_total",
			Help: "Total number of notification records persisted",
		},
		[]string{"type"},
	)

	// NotificationsSkipped counts events dropped before persistence, by reason
	// (self|ineligible|missing).
	NotificationsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circle_notifications_skipped_total",
			Help: "Total number of notification candidates dropped before persistence",
		},
		[]string{"type", "reason"},
	)

	// PushAttempts counts push deliveries by result (sent|failed|skipped).
	PushAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circle_push_attempts_total",
			Help: "Total number of push delivery attempts",
		},
		[]string{"result"},
	)

	// SMSSends counts verification SMS sends by source (watcher|callable) and result (sent|failed).
	SMSSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circle_sms_sends_total",
			Help: "Total number of verification SMS send attempts",
		},
		[]string{"source", "result"},
	)

	// PushLatency measures the push gateway round trip.
	PushLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "circle_push_latency_seconds",
			Help:    "Push gateway request latency",
			Buckets: prometheus.DefBuckets,
		},
	)
)
