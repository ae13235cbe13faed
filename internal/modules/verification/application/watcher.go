package application

import (
	"context"
	"fmt"
	"time"

	"github.com/saransh1220/circle-notify/internal/modules/verification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/metrics"
	"go.uber.org/zap"
)

// Watcher sends the code of each newly created verification record and
// records the outcome on it.
type Watcher struct {
	sms    domain.SMSSender
	repo   domain.VerificationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewWatcher(sms domain.SMSSender, repo domain.VerificationRepository, logger *zap.Logger) *Watcher {
	return &Watcher{sms: sms, repo: repo, logger: logger, now: time.Now}
}

// OnCreated stores the record and makes one send attempt. A gateway failure
// is written back as smsError and is not returned; store failures are.
func (w *Watcher) OnCreated(ctx context.Context, v domain.Verification) error {
	if err := w.repo.Create(ctx, v); err != nil {
		return fmt.Errorf("store verification %s: %w", v.ID, err)
	}
	if !v.ShouldSend() {
		w.logger.Debug("verification skipped",
			zap.String("verification_id", v.ID),
			zap.Bool("is_verified", v.IsVerified),
		)
		return nil
	}

	sendErr := w.sms.Send(ctx, v.PhoneNumber, domain.Message(v.VerificationCode))
	at := w.now()

	if sendErr != nil {
		metrics.SMSSends.WithLabelValues("watcher", "failed").Inc()
		w.logger.Warn("verification sms failed", zap.String("verification_id", v.ID), zap.Error(sendErr))
		if err := w.repo.MarkFailed(ctx, v.ID, sendErr.Error(), at); err != nil {
			return fmt.Errorf("record sms failure on %s: %w", v.ID, err)
		}
		return nil
	}

	metrics.SMSSends.WithLabelValues("watcher", "sent").Inc()
	if err := w.repo.MarkSent(ctx, v.ID, at); err != nil {
		return fmt.Errorf("record sms success on %s: %w", v.ID, err)
	}
	w.logger.Info("verification sms sent", zap.String("verification_id", v.ID))
	return nil
}
