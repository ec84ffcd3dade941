package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct {
	mod time.Time
	ok  bool
}

func (s stubCache) LastModified(context.Context) (time.Time, bool) { return s.mod, s.ok }

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func serveHealth(t *testing.T, h *HealthHandler, method, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var response HealthResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	}
	return rr, response
}

func TestHealthCheck(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	handler := NewHealthHandler("test-service", "1.0.0", stubCache{mod: now.Add(-90 * time.Second), ok: true}, kvstore.NewMemory())
	handler.now = func() time.Time { return now }

	rr, response := serveHealth(t, handler, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "test-service", response.Service)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Equal(t, "up", response.Store)
	require.NotNil(t, response.Cache)
	assert.Equal(t, "present", response.Cache.State)
	assert.Equal(t, int64(90), response.Cache.AgeSeconds)
}

func TestHealthCheck_DegradedDependencies(t *testing.T) {
	handler := NewHealthHandler("test-service", "1.0.0", stubCache{}, downStore{})

	rr, response := serveHealth(t, handler, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "down", response.Store)
	require.NotNil(t, response.Cache)
	assert.Equal(t, "empty", response.Cache.State)
	assert.Nil(t, response.Cache.LastModified)
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	rr, response := serveHealth(t, NewHealthHandler("svc", "dev", nil, nil), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "disabled", response.Store)
	assert.Nil(t, response.Cache)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr, _ := serveHealth(t, NewHealthHandler("svc", "dev", nil, nil), http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
