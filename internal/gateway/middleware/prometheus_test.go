package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /triggers/{collection}/{change}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := PrometheusMiddleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "POST /triggers/{collection}/{change}", "200"))
	for _, path := range []string{"/triggers/likes/created", "/triggers/comments/created"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "POST /triggers/{collection}/{change}", "200"))
	assert.Equal(t, 2.0, after-before)
}

func TestPrometheusMiddleware_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, code, rec.Code)
	}
}
