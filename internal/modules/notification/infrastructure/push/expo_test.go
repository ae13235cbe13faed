package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saransh1220/circle-notify/internal/modules/notification/domain"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(url, token string) *ExpoClient {
	return NewExpoClient(config.PushConfig{Endpoint: url, AccessToken: token, Timeout: 2 * time.Second}, zap.NewNop())
}

func TestExpoClient_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer expo-secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"XXXX-ticket"}}`))
	}))
	defer srv.Close()

	ticket, err := newClient(srv.URL, "expo-secret").Send(context.Background(), domain.PushMessage{
		To:        "ExponentPushToken[abc]",
		Title:     "New Like",
		Body:      "Dana liked your post",
		Data:      domain.Data{"screen": "Profile"},
		Sound:     "default",
		Priority:  "high",
		ChannelID: "default",
	})
	require.NoError(t, err)
	assert.Equal(t, "XXXX-ticket", ticket.ID)

	assert.Equal(t, map[string]any{
		"to":        "ExponentPushToken[abc]",
		"title":     "New Like",
		"body":      "Dana liked your post",
		"data":      map[string]any{"screen": "Profile"},
		"sound":     "default",
		"priority":  "high",
		"channelId": "default",
	}, got)
}

func TestExpoClient_Send_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"ticket error", http.StatusOK, `{"data":{"status":"error","message":"not registered","details":{"error":"DeviceNotRegistered"}}}`, "DeviceNotRegistered: not registered"},
		{"request error", http.StatusOK, `{"errors":[{"code":"PUSH_TOO_MANY_EXPERIENCE_IDS","message":"mixed projects"}]}`, "PUSH_TOO_MANY_EXPERIENCE_IDS"},
		{"server error", http.StatusBadGateway, `upstream down`, "status 502"},
		{"garbage", http.StatusOK, `not json`, "decode push response"},
		{"empty", http.StatusOK, `{}`, "empty ticket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newClient(srv.URL, "").Send(context.Background(), domain.PushMessage{To: "ExponentPushToken[abc]"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			if tt.name != "garbage" {
				assert.ErrorIs(t, err, domain.ErrPushRejected)
			}
		})
	}
}

func TestExpoClient_Send_NoAuthHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"status":"ok","id":"t"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, "").Send(context.Background(), domain.PushMessage{To: "ExponentPushToken[abc]"})
	require.NoError(t, err)
}

func TestExpoClient_Send_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newClient(url, "").Send(context.Background(), domain.PushMessage{To: "ExponentPushToken[abc]"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push http error")
}
