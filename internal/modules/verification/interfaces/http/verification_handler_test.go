package http_test

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saransh1220/circle-notify/internal/modules/verification/application"
	verificationhttp "github.com/saransh1220/circle-notify/internal/modules/verification/interfaces/http"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type smsStub struct {
	err   error
	calls int
}

func (s *smsStub) Send(context.Context, string, string) error {
	s.calls++
	return s.err
}

func call(h *verificationhttp.VerificationHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, "/callable/sendVerificationSMS", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SendVerificationSMS(rec, req)
	return rec
}

func TestVerificationHandler_SendVerificationSMS(t *testing.T) {
	sms := &smsStub{}
	h := verificationhttp.NewVerificationHandler(application.NewCallableService(sms, zap.NewNop()))

	rec := call(h, `{"data":{"phoneNumber":"+15550100","verificationCode":"4821"}}`)
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":{"success":true,"message":"SMS sent successfully"}}`, rec.Body.String())
	assert.Equal(t, 1, sms.calls)
}

func TestVerificationHandler_InvalidArgument(t *testing.T) {
	sms := &smsStub{}
	h := verificationhttp.NewVerificationHandler(application.NewCallableService(sms, zap.NewNop()))

	for _, body := range []string{
		`{"data":{"phoneNumber":"+15550100"}}`,
		`{"data":{}}`,
		``,
		`{"data":"nope"}`,
	} {
		rec := call(h, body)
		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"status":"INVALID_ARGUMENT"`, body)
	}
	assert.Zero(t, sms.calls)
}

func TestVerificationHandler_ProviderFailure(t *testing.T) {
	h := verificationhttp.NewVerificationHandler(application.NewCallableService(&smsStub{err: errors.New("503")}, zap.NewNop()))

	rec := call(h, `{"data":{"phoneNumber":"+15550100","verificationCode":"4821"}}`)
	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"status":"INTERNAL","message":"Failed to send SMS"}}`, rec.Body.String())
}
