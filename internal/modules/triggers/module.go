package triggers

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/application"
	triggers_http "github.com/saransh1220/circle-notify/internal/modules/triggers/interfaces/http"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/interfaces/stream"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

type Module struct {
	cfg       config.TriggersConfig
	router    *application.Router
	handler   *triggers_http.TriggerHandler
	consumer  *stream.Consumer
	reclaimer *stream.Reclaimer
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewModule wires the routing table to both transports. A nil Redis client
// disables the stream consumer.
func NewModule(
	rdb *redis.Client,
	pipeline application.NotificationPipeline,
	settings application.UserSync,
	watcher application.VerificationWatcher,
	cfg config.TriggersConfig,
	logger *zap.Logger,
) *Module {
	router := application.NewRouter(pipeline, settings, watcher, logger)
	m := &Module{
		cfg:     cfg,
		router:  router,
		handler: triggers_http.NewTriggerHandler(router, logger),
		logger:  logger,
	}
	if rdb != nil && cfg.StreamEnabled {
		m.consumer = stream.NewConsumer(rdb, router, cfg, logger)
		if cfg.ReclaimEnabled {
			m.reclaimer = stream.NewReclaimer(m.consumer, logger, stream.WithSchedule(cfg.ReclaimSpec))
		}
	}
	return m
}

func (m *Module) HTTPHandler() *triggers_http.TriggerHandler {
	return m.handler
}

func (m *Module) Router() *application.Router {
	return m.router
}

// Start launches the stream consumer and reclaim schedule when configured.
func (m *Module) Start(ctx context.Context) error {
	if m.consumer == nil {
		return nil
	}
	if err := m.consumer.EnsureGroup(ctx); err != nil {
		return err
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.consumer.Run(ctx); err != nil {
			m.logger.Error("stream consumer stopped", zap.Error(err))
		}
	}()

	if m.reclaimer != nil {
		if err := m.reclaimer.Start(); err != nil {
			m.cancel()
			m.wg.Wait()
			return err
		}
	}
	return nil
}

// Stop cancels the consumer and waits for in-flight work.
func (m *Module) Stop() {
	if m.reclaimer != nil {
		<-m.reclaimer.Stop().Done()
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
