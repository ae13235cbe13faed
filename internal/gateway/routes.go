package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/circle-notify/internal/gateway/middleware"
	notification_http "github.com/saransh1220/circle-notify/internal/modules/notification/interfaces/http"
	triggers_http "github.com/saransh1220/circle-notify/internal/modules/triggers/interfaces/http"
	user_http "github.com/saransh1220/circle-notify/internal/modules/user/interfaces/http"
	verification_http "github.com/saransh1220/circle-notify/internal/modules/verification/interfaces/http"
	"github.com/saransh1220/circle-notify/internal/shared/utils"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleWare
	EventarcAuth        *middleware.EventarcAuth
	TriggerHandler      *triggers_http.TriggerHandler
	VerificationHandler *verification_http.VerificationHandler
	SettingsHandler     *user_http.SettingsHandler
	NotificationHandler *notification_http.NotificationHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	r := NewRouter()
	auth := config.AuthMiddleware.RequireAuth
	admin := middleware.RequireRole(utils.RoleAdmin)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Document-change triggers
	r.HandleFunc("POST /triggers/{collection}/{change}", config.TriggerHandler.Receive, config.EventarcAuth.Verify)

	// Callables
	r.HandleFunc("POST /callable/sendVerificationSMS", config.VerificationHandler.SendVerificationSMS)
	r.HandleFunc("POST /callable/updateAllUsersNotificationSettings", config.SettingsHandler.UpdateAllUsersNotificationSettings, auth, admin)

	// Notification center
	r.HandleFunc("GET /notifications", config.NotificationHandler.ListNotifications, auth)
	r.HandleFunc("GET /notifications/unread-count", config.NotificationHandler.UnreadCount, auth)
	r.HandleFunc("GET /ws", config.NotificationHandler.Subscribe, auth)

	return r.Mux()
}
