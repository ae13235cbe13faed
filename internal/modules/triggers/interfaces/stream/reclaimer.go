package stream

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultReclaimSpec = "@every 1m"

type reclaimFunc interface {
	Reclaim(ctx context.Context) (int, error)
}

// Reclaimer periodically re-processes entries that a crashed or stalled
// consumer left pending.
type Reclaimer struct {
	consumer reclaimFunc
	cron     *cron.Cron
	spec     string
	log      *zap.Logger
}

// ReclaimerOption customises the Reclaimer.
type ReclaimerOption func(*Reclaimer)

// WithCron injects a preconfigured cron instance.
func WithCron(c *cron.Cron) ReclaimerOption {
	return func(r *Reclaimer) {
		if c != nil {
			r.cron = c
		}
	}
}

// WithSchedule overrides the cron schedule.
func WithSchedule(spec string) ReclaimerOption {
	return func(r *Reclaimer) {
		if spec != "" {
			r.spec = spec
		}
	}
}

func NewReclaimer(consumer reclaimFunc, log *zap.Logger, opts ...ReclaimerOption) *Reclaimer {
	r := &Reclaimer{
		consumer: consumer,
		spec:     defaultReclaimSpec,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cron == nil {
		r.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return r
}

// Start registers the reclaim job and launches the scheduler.
func (r *Reclaimer) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.RunOnce); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// RunOnce performs a single reclaim pass.
func (r *Reclaimer) RunOnce() {
	n, err := r.consumer.Reclaim(context.Background())
	if err != nil {
		r.log.Warn("stream reclaim failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.log.Info("reclaimed pending stream entries", zap.Int("count", n))
	}
}

// Stop halts the scheduler, waiting for a running pass to complete.
func (r *Reclaimer) Stop() context.Context {
	return r.cron.Stop()
}
