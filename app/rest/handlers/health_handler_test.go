package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) HealthCheck(context.Context) error { return s.err }

func performHealthRequest(t *testing.T, handlerFunc echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handlerFunc(e.NewContext(req, rec)))
	return rec
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	h := NewHealthHandler(slog.Default(), nil)

	rec := performHealthRequest(t, h.HealthCheck, "/v1/health")

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "provisioning-service", response.Service)
}

func TestHealthHandler_LivenessCheck(t *testing.T) {
	h := NewHealthHandler(slog.Default(), nil)

	rec := performHealthRequest(t, h.LivenessCheck, "/v1/live")

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "alive", response.Status)
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		h := NewHealthHandler(slog.Default(), map[string]HealthChecker{
			"database": &stubChecker{},
			"kratos":   &stubChecker{},
		})

		rec := performHealthRequest(t, h.ReadinessCheck, "/v1/ready")

		assert.Equal(t, http.StatusOK, rec.Code)

		var response ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "ready", response.Status)
		assert.Equal(t, "healthy", response.Checks["database"].Status)
		assert.Equal(t, "healthy", response.Checks["kratos"].Status)
	})

	t.Run("one dependency down returns 503", func(t *testing.T) {
		h := NewHealthHandler(slog.Default(), map[string]HealthChecker{
			"database": &stubChecker{},
			"kratos":   &stubChecker{err: errors.New("connection refused")},
		})

		rec := performHealthRequest(t, h.ReadinessCheck, "/v1/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var response ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response.Status)
		assert.Equal(t, "unhealthy", response.Checks["kratos"].Status)
		assert.Contains(t, response.Checks["kratos"].Message, "connection refused")
	})
}
