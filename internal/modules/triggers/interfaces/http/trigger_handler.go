package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
	"github.com/saransh1220/circle-notify/internal/modules/triggers/infrastructure/firestore"
	"github.com/saransh1220/circle-notify/internal/shared/utils"
	"go.uber.org/zap"
)

const maxEnvelopeBytes = 1 << 20

type dispatcher interface {
	Dispatch(ctx context.Context, ev domain.ChangeEvent) error
}

type TriggerHandler struct {
	router dispatcher
	logger *zap.Logger
}

func NewTriggerHandler(router dispatcher, logger *zap.Logger) *TriggerHandler {
	return &TriggerHandler{router: router, logger: logger}
}

type receipt struct {
	EventID string `json:"eventId,omitempty"`
	Trigger string `json:"trigger"`
	Status  string `json:"status"`
}

// Receive accepts one document-change envelope for POST /triggers/{collection}/{change}.
// Only malformed envelopes are rejected; handler failures are terminal for the
// event and are acknowledged so the transport does not redeliver.
func (h *TriggerHandler) Receive(w http.ResponseWriter, r *http.Request) {
	change, err := domain.ParseChange(r.PathValue("change"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid change type", err)
		return
	}
	trigger := domain.Trigger{Collection: r.PathValue("collection"), Change: change}

	env, err := firestore.Decode(http.MaxBytesReader(w, r.Body, maxEnvelopeBytes))
	if err != nil {
		h.reject(w, r, err)
		return
	}

	ev, err := env.ChangeEvent(trigger, r.Header.Get("ce-id"))
	if err != nil {
		h.reject(w, r, err)
		return
	}

	status := "handled"
	switch err := h.router.Dispatch(r.Context(), ev); {
	case err == nil:
	case errors.Is(err, domain.ErrUnrouted):
		status = "ignored"
	case errors.Is(err, domain.ErrMalformedEvent):
		h.reject(w, r, err)
		return
	default:
		status = "failed"
	}

	utils.WriteJSON(w, http.StatusOK, receipt{EventID: ev.EventID, Trigger: trigger.String(), Status: status})
}

func (h *TriggerHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("rejecting malformed trigger payload", zap.String("path", r.URL.Path), zap.Error(err))
	utils.WriteError(w, http.StatusBadRequest, "Invalid event payload", err)
}
