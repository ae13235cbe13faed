package archive

import (
	"context"
	"fmt"

	"github.com/saransh1220/circle-notify/internal/modules/archive/application"
	"github.com/saransh1220/circle-notify/internal/modules/archive/domain"
	"github.com/saransh1220/circle-notify/internal/modules/archive/infrastructure/local"
	"github.com/saransh1220/circle-notify/internal/modules/archive/infrastructure/s3"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

// Module represents the fan-out report archive
type Module struct {
	reports *application.ReportArchive
	store   domain.ObjectStore
}

// NewModule selects S3 or local storage from cfg.
func NewModule(ctx context.Context, cfg config.ArchiveConfig, logger *zap.Logger) (*Module, error) {
	var store domain.ObjectStore
	var err error

	if cfg.UseS3 {
		store, err = s3.NewS3Store(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	} else {
		store, err = local.NewLocalStore(cfg.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local archive: %w", err)
		}
	}

	return &Module{
		reports: application.NewReportArchive(store, logger),
		store:   store,
	}, nil
}

// Reports returns the report sink for the notification pipeline
func (m *Module) Reports() *application.ReportArchive {
	return m.reports
}
