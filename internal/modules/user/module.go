package user

import (
	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/user/application"
	"github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"github.com/saransh1220/circle-notify/internal/modules/user/infrastructure/persistence/postgres"
	user_http "github.com/saransh1220/circle-notify/internal/modules/user/interfaces/http"
	"go.uber.org/zap"
)

type Module struct {
	repo     *postgres.PgUserRepository
	settings *application.SettingsService
	handler  *user_http.SettingsHandler
}

func NewModule(db *sqlx.DB, logger *zap.Logger) *Module {
	repo := postgres.NewUserRepository(db)
	settings := application.NewSettingsService(repo, logger)

	return &Module{
		repo:     repo,
		settings: settings,
		handler:  user_http.NewSettingsHandler(settings, logger),
	}
}

func (m *Module) HTTPHandler() *user_http.SettingsHandler {
	return m.handler
}

func (m *Module) Settings() *application.SettingsService {
	return m.settings
}

// Finder exposes user lookups to other modules.
func (m *Module) Finder() domain.UserFinder {
	return m.repo
}
