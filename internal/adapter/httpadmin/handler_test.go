package httpadmin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/payoutcompliance-backend/internal/metrics"
)

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name         string
		checks       map[string]CheckFunc
		expectedCode int
		expectedBody healthResponse
	}{
		{
			name:         "No checks",
			expectedCode: http.StatusOK,
			expectedBody: healthResponse{Status: "ok"},
		},
		{
			name: "All checks pass",
			checks: map[string]CheckFunc{
				"postgres": func(ctx context.Context) error { return nil },
				"redis":    func(ctx context.Context) error { return nil },
			},
			expectedCode: http.StatusOK,
			expectedBody: healthResponse{Status: "ok", Checks: map[string]string{"postgres": "ok", "redis": "ok"}},
		},
		{
			name: "Failing check",
			checks: map[string]CheckFunc{
				"postgres": func(ctx context.Context) error { return nil },
				"redis":    func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: healthResponse{
				Status: "unavailable",
				Checks: map[string]string{"postgres": "ok", "redis": "dial tcp: connection refused"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := New(prometheus.NewRegistry(), tt.checks, nil).Router()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncValidation("currency")

	router := New(reg, nil, nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rule="currency"`)
}

func TestUnknownRoute(t *testing.T) {
	router := New(prometheus.NewRegistry(), nil, nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
