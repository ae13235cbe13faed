package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type resetterStub struct {
	n   int64
	err error
}

func (s resetterStub) ResetAll(context.Context) (int64, error) { return s.n, s.err }

func TestSettingsHandler_UpdateAllUsersNotificationSettings(t *testing.T) {
	h := NewSettingsHandler(resetterStub{n: 3}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/callable/updateAllUsersNotificationSettings", strings.NewReader(`{"data":null}`))
	rec := httptest.NewRecorder()
	h.UpdateAllUsersNotificationSettings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":{"success":true,"message":"Updated notification settings for 3 users"}}`, rec.Body.String())
}

func TestSettingsHandler_BatchFailure(t *testing.T) {
	h := NewSettingsHandler(resetterStub{err: errors.New("connection reset")}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/callable/updateAllUsersNotificationSettings", nil)
	rec := httptest.NewRecorder()
	h.UpdateAllUsersNotificationSettings(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"status":"INTERNAL","message":"Failed to update notification settings"}}`, rec.Body.String())
}

func TestSettingsHandler_MalformedBody(t *testing.T) {
	h := NewSettingsHandler(resetterStub{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/callable/updateAllUsersNotificationSettings", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.UpdateAllUsersNotificationSettings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ARGUMENT")
}
