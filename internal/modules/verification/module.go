package verification

import (
	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/verification/application"
	"github.com/saransh1220/circle-notify/internal/modules/verification/infrastructure/persistence/postgres"
	"github.com/saransh1220/circle-notify/internal/modules/verification/infrastructure/sms"
	verification_http "github.com/saransh1220/circle-notify/internal/modules/verification/interfaces/http"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

type Module struct {
	watcher *application.Watcher
	handler *verification_http.VerificationHandler
}

func NewModule(db *sqlx.DB, smsCfg config.SMSConfig, logger *zap.Logger) *Module {
	gateway := sms.NewGateway(smsCfg, logger)
	repo := postgres.NewPgVerificationRepository(db)

	return &Module{
		watcher: application.NewWatcher(gateway, repo, logger),
		handler: verification_http.NewVerificationHandler(application.NewCallableService(gateway, logger)),
	}
}

func (m *Module) HTTPHandler() *verification_http.VerificationHandler {
	return m.handler
}

func (m *Module) Watcher() *application.Watcher {
	return m.watcher
}
