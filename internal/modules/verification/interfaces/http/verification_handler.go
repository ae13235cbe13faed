package http

import (
	"context"
	"net/http"

	"github.com/saransh1220/circle-notify/internal/modules/verification/application"
	"github.com/saransh1220/circle-notify/internal/shared/utils"
)

type smsSender interface {
	SendVerificationSMS(ctx context.Context, req application.SendSMSRequest) (*application.SendSMSResult, error)
}

type VerificationHandler struct {
	service smsSender
}

func NewVerificationHandler(service smsSender) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// SendVerificationSMS serves the sendVerificationSMS callable.
func (h *VerificationHandler) SendVerificationSMS(w http.ResponseWriter, r *http.Request) {
	var req application.SendSMSRequest
	if err := utils.DecodeCallable(r, &req); err != nil {
		utils.WriteCallableError(w, err)
		return
	}

	res, err := h.service.SendVerificationSMS(r.Context(), req)
	if err != nil {
		utils.WriteCallableError(w, err)
		return
	}
	utils.WriteCallableResult(w, res)
}
