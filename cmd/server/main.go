package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/circle-notify/internal/gateway"
	"github.com/saransh1220/circle-notify/internal/gateway/middleware"
	"github.com/saransh1220/circle-notify/internal/modules/archive"
	"github.com/saransh1220/circle-notify/internal/modules/notification"
	notifdomain "github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/modules/triggers"
	"github.com/saransh1220/circle-notify/internal/modules/user"
	"github.com/saransh1220/circle-notify/internal/modules/verification"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/database"
	"github.com/saransh1220/circle-notify/pkg/logger"
	"github.com/saransh1220/circle-notify/pkg/migration"
	"go.uber.org/zap"
)

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg := config.Load()

	if err := logger.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	handled, err := runMigrationCommand(flags, cfg.Database.URL(), cfg.Server.MigrationsPath, logger.WithModule("migration"))
	if err != nil {
		logger.Error("migration command failed", zap.Error(err))
		os.Exit(1)
	}
	if handled {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

// migrateFlags selects a one-off schema command instead of serving.
type migrateFlags struct {
	down  bool
	force int
}

func parseFlags(args []string) (migrateFlags, error) {
	var f migrateFlags
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.BoolVar(&f.down, "migrate-down", false, "roll back the last migration and exit")
	fs.IntVar(&f.force, "migrate-force", -1, "force the schema version (repairs a dirty state) and exit")
	if err := fs.Parse(args); err != nil {
		return migrateFlags{}, err
	}
	if f.down && f.force >= 0 {
		return migrateFlags{}, errors.New("-migrate-down and -migrate-force are exclusive")
	}
	return f, nil
}

// runMigrationCommand reports whether a schema command ran.
func runMigrationCommand(f migrateFlags, dbURL, path string, log *zap.Logger) (bool, error) {
	if !f.down && f.force < 0 {
		return false, nil
	}
	runner := migration.NewRunner(&migration.Config{
		MigrationsPath: path,
		DatabaseURL:    dbURL,
		Logger:         log,
	})
	if f.down {
		return true, runner.Down()
	}
	return true, runner.Force(f.force)
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Server.AutoMigrate {
		if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Server.MigrationsPath, logger.WithModule("migration")); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected", zap.String("host", cfg.Database.Host))

	var rdb *redis.Client
	if cfg.Triggers.StreamEnabled {
		if rdb, err = database.NewRedis(cfg.Redis); err != nil {
			return err
		}
		defer rdb.Close()
	}

	reports, err := newReportSink(ctx, cfg.Archive)
	if err != nil {
		return err
	}

	userModule := user.NewModule(db, logger.WithModule("user"))
	notificationModule := notification.NewModule(db, userModule.Finder(), cfg.Push, reports, logger.WithModule("notification"))
	defer notificationModule.Shutdown()
	verificationModule := verification.NewModule(db, cfg.SMS, logger.WithModule("verification"))

	triggersModule := triggers.NewModule(
		rdb,
		notificationModule.Pipeline(),
		userModule.Settings(),
		verificationModule.Watcher(),
		cfg.Triggers,
		logger.WithModule("triggers"),
	)
	if err := triggersModule.Start(ctx); err != nil {
		return fmt.Errorf("start trigger consumer: %w", err)
	}
	defer triggersModule.Stop()

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware(cfg.JWT.Secret),
		EventarcAuth:        middleware.NewEventarcAuth(cfg.Triggers.Audience, logger.WithModule("eventarc")),
		TriggerHandler:      triggersModule.HTTPHandler(),
		VerificationHandler: verificationModule.HTTPHandler(),
		SettingsHandler:     userModule.HTTPHandler(),
		NotificationHandler: notificationModule.HTTPHandler(),
	})
	handler := middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)

	return gateway.NewServer(cfg.Server.Port, handler, logger.WithModule("gateway")).Run(ctx)
}

// newReportSink returns nil when archiving is disabled, so the pipeline
// skips report delivery entirely.
func newReportSink(ctx context.Context, cfg config.ArchiveConfig) (notifdomain.ReportSink, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	m, err := archive.NewModule(ctx, cfg, logger.WithModule("archive"))
	if err != nil {
		return nil, err
	}
	return m.Reports(), nil
}
