package http

import (
	"net/http"
	"strconv"

	"github.com/saransh1220/circle-notify/internal/gateway/middleware"
	"github.com/saransh1220/circle-notify/internal/modules/notification/application"
	"github.com/saransh1220/circle-notify/internal/modules/notification/infrastructure/websocket"
	"github.com/saransh1220/circle-notify/internal/shared/utils"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type NotificationHandler struct {
	service *application.QueryService
	hub     *websocket.Hub
	logger  *zap.Logger
}

func NewNotificationHandler(service *application.QueryService, hub *websocket.Hub, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub, logger: logger}
}

// Subscribe upgrades to a websocket that receives the caller's new notifications.
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	websocket.ServeWs(h.hub, w, r, userID)
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	limit := defaultPageSize
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = min(v, maxPageSize)
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	notifications, err := h.service.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("list notifications failed", zap.String("user_id", userID), zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch notifications", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"data":   notifications,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		h.logger.Error("unread count failed", zap.String("user_id", userID), zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "failed to get unread count", nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}
