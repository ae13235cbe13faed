package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saransh1220/circle-notify/internal/shared/utils"
	apperrors "github.com/saransh1220/circle-notify/pkg/errors"
	"go.uber.org/zap"
)

type settingsResetter interface {
	ResetAll(ctx context.Context) (int64, error)
}

type SettingsHandler struct {
	service settingsResetter
	logger  *zap.Logger
}

func NewSettingsHandler(service settingsResetter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

type settingsResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateAllUsersNotificationSettings serves the updateAllUsersNotificationSettings callable.
func (h *SettingsHandler) UpdateAllUsersNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var ignored map[string]any
	if err := utils.DecodeCallable(r, &ignored); err != nil {
		utils.WriteCallableError(w, err)
		return
	}

	n, err := h.service.ResetAll(r.Context())
	if err != nil {
		h.logger.Error("bulk notification settings update failed", zap.Error(err))
		utils.WriteCallableError(w, apperrors.Internal(err, "Failed to update notification settings"))
		return
	}

	utils.WriteCallableResult(w, settingsResult{
		Success: true,
		Message: fmt.Sprintf("Updated notification settings for %d users", n),
	})
}
