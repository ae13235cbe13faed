package application

import (
	"context"

	"github.com/saransh1220/circle-notify/internal/modules/verification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	apperrors "github.com/saransh1220/circle-notify/pkg/errors"
	"github.com/saransh1220/circle-notify/pkg/validator"
	"go.uber.org/zap"
)

type SendSMSRequest struct {
	PhoneNumber      string `json:"phoneNumber" validate:"required"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type SendSMSResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CallableService backs the sendVerificationSMS callable. It sends directly
// and does not touch any verification record.
type CallableService struct {
	sms    domain.SMSSender
	logger *zap.Logger
}

func NewCallableService(sms domain.SMSSender, logger *zap.Logger) *CallableService {
	return &CallableService{sms: sms, logger: logger}
}

func (s *CallableService) SendVerificationSMS(ctx context.Context, req SendSMSRequest) (*SendSMSResult, error) {
	if err := validator.Struct(req); err != nil {
		return nil, apperrors.InvalidArgument("Phone number and verification code are required").WithInternal(err)
	}

	if err := s.sms.Send(ctx, req.PhoneNumber, domain.Message(req.VerificationCode)); err != nil {
		metrics.SMSSends.WithLabelValues("callable", "failed").Inc()
		s.logger.Error("callable sms failed", zap.Error(err))
		return nil, apperrors.Internal(err, "Failed to send SMS")
	}

	metrics.SMSSends.WithLabelValues("callable", "sent").Inc()
	return &SendSMSResult{Success: true, Message: "SMS sent successfully"}, nil
}
