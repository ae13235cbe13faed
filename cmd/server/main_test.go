package main

import (
	"context"
	"testing"

	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewReportSink_Disabled(t *testing.T) {
	sink, err := newReportSink(context.Background(), config.ArchiveConfig{})
	require.NoError(t, err)
	assert.Nil(t, sink)
}

func TestNewReportSink_Local(t *testing.T) {
	sink, err := newReportSink(context.Background(), config.ArchiveConfig{Enabled: true, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, sink)
}

func TestNewReportSink_InvalidS3(t *testing.T) {
	_, err := newReportSink(context.Background(), config.ArchiveConfig{Enabled: true, UseS3: true})
	assert.Error(t, err)
}

func TestRun_FailsWithoutDatabase(t *testing.T) {
	cfg := config.Config{
		Database: database.PostgresConfig{
			Host:    "127.0.0.1",
			Port:    "1",
			User:    "u",
			DBName:  "d",
			SSLMode: "disable",
		},
	}
	err := run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, migrateFlags{force: -1}, f)

	f, err = parseFlags([]string{"-migrate-down"})
	require.NoError(t, err)
	assert.True(t, f.down)

	f, err = parseFlags([]string{"-migrate-force=3"})
	require.NoError(t, err)
	assert.Equal(t, 3, f.force)

	_, err = parseFlags([]string{"-migrate-down", "-migrate-force=1"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-migrate-force=x"})
	assert.Error(t, err)
}

func TestRunMigrationCommand(t *testing.T) {
	handled, err := runMigrationCommand(migrateFlags{force: -1}, "bad://url", "migrations", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, handled)

	handled, err = runMigrationCommand(migrateFlags{down: true, force: -1}, "bad://url", "migrations", zap.NewNop())
	assert.True(t, handled)
	assert.ErrorContains(t, err, "failed to initialize migrate")

	handled, err = runMigrationCommand(migrateFlags{force: 1}, "bad://url", "migrations", zap.NewNop())
	assert.True(t, handled)
	assert.ErrorContains(t, err, "failed to initialize migrate")
}
