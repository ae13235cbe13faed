package notification

import (
	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/notification/application"
	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/saransh1220/circle-notify/internal/modules/notification/infrastructure/push"
	"github.com/saransh1220/circle-notify/internal/modules/notification/infrastructure/websocket"
	notification_http "github.com/saransh1220/circle-notify/internal/modules/notification/interfaces/http"
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

type Module struct {
	pipeline *application.Pipeline
	handler  *notification_http.NotificationHandler
	hub      *websocket.Hub
}

// NewModule wires the pipeline against Postgres and the Expo gateway. reports
// may be nil when fan-out archiving is disabled.
func NewModule(db *sqlx.DB, users userdomain.UserFinder, pushCfg config.PushConfig, reports domain.ReportSink, logger *zap.Logger) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	hub := websocket.NewHub(logger)
	go hub.Run()

	opts := []application.Option{
		application.WithRealtime(hub),
		application.WithChannelID(pushCfg.ChannelID),
	}
	if reports != nil {
		opts = append(opts, application.WithReportSink(reports))
	}
	pipeline := application.NewPipeline(users, repo, push.NewExpoClient(pushCfg, logger), logger, opts...)

	return &Module{
		pipeline: pipeline,
		handler:  notification_http.NewNotificationHandler(application.NewQueryService(repo), hub, logger),
		hub:      hub,
	}
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}

func (m *Module) Pipeline() *application.Pipeline {
	return m.pipeline
}

// Shutdown disconnects realtime clients.
func (m *Module) Shutdown() {
	m.hub.Stop()
}
