package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/circle-notify/internal/modules/notification"
	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noUsers struct{}

func (noUsers) GetByID(context.Context, string) (*userdomain.User, error) {
	return nil, userdomain.ErrUserNotFound
}

func TestNewModule(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := sqlx.NewDb(sqlDB, "sqlmock")
	m := notification.NewModule(db, noUsers{}, config.PushConfig{Endpoint: "http://127.0.0.1:0", ChannelID: "default", Timeout: time.Second}, nil, zap.NewNop())
	defer m.Shutdown()

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPHandler())
	require.NotNil(t, m.Pipeline())

	// recipient lookup misses, so nothing touches the database
	require.NoError(t, m.Pipeline().Handle(context.Background(), domain.LikeAdded{UserID: "a", OwnerID: "b", PostID: "p"}))
}
