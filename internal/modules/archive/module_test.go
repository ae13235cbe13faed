package archive

import (
	"context"
	"testing"

	"github.com/saransh1220/circle-notify/internal/modules/archive/infrastructure/local"
	"github.com/saransh1220/circle-notify/internal/modules/archive/infrastructure/s3"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewModule_Local(t *testing.T) {
	m, err := NewModule(context.Background(), config.ArchiveConfig{LocalPath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, m.Reports())
	assert.IsType(t, &local.LocalStore{}, m.store)
}

func TestNewModule_S3(t *testing.T) {
	m, err := NewModule(context.Background(), config.ArchiveConfig{
		UseS3:        true,
		S3BucketName: "reports",
		S3Region:     "us-east-1",
		S3Endpoint:   "localhost:9000",
		S3AccessKey:  "x",
		S3SecretKey:  "y",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &s3.S3Store{}, m.store)

	_, err = NewModule(context.Background(), config.ArchiveConfig{UseS3: true}, zap.NewNop())
	assert.Error(t, err)
}
