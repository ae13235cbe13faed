package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/circle-notify/internal/modules/archive/domain"
	notifdomain "github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"go.uber.org/zap"
)

const reportPrefix = "fanout-reports"

// ReportArchive writes each completed fan-out report as one JSON object.
type ReportArchive struct {
	store  domain.ObjectStore
	now    func() time.Time
	newID  func() uuid.UUID
	logger *zap.Logger
}

func NewReportArchive(store domain.ObjectStore, logger *zap.Logger) *ReportArchive {
	return &ReportArchive{
		store:  store,
		now:    time.Now,
		newID:  uuid.New,
		logger: logger,
	}
}

// ReportKey returns fanout-reports/YYYY/MM/DD/<id>.json for the UTC date of at.
func ReportKey(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s.json", reportPrefix, at.UTC().Format("2006/01/02"), id)
}

func (a *ReportArchive) Store(ctx context.Context, report *notifdomain.FanoutReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode fan-out report: %w", err)
	}

	at := report.FinishedAt
	if at.IsZero() {
		at = a.now()
	}
	key := ReportKey(at, a.newID())

	loc, err := a.store.Put(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return fmt.Errorf("archive fan-out report %s: %w", key, err)
	}
	a.logger.Debug("fan-out report archived",
		zap.String("location", loc),
		zap.String("notification_id", report.NotificationID.String()),
	)
	return nil
}
