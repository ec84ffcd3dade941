package http

import (
	"context"
	"net/http"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/service"
	"github.com/gin-gonic/gin"
)

// CacheInspector reports when the project cache was last written
type CacheInspector interface {
	LastModified(ctx context.Context) (time.Time, bool)
}

// Pinger is satisfied by the key/value store
type Pinger interface {
	Ping(ctx context.Context) error
}

type CacheStatus struct {
	State        string     `json:"state"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	AgeSeconds   int64      `json:"age_seconds,omitempty"`
}

type SyncStatus struct {
	service.Metrics
	AvgRemoteLatencyMs float64 `json:"avg_remote_latency_ms"`
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Service   string       `json:"service"`
	Version   string       `json:"version"`
	Store     string       `json:"store,omitempty"`
	Cache     *CacheStatus `json:"cache,omitempty"`
	Sync      SyncStatus   `json:"sync"`
}

type HealthHandler struct {
	serviceName string
	version     string
	cache       CacheInspector
	store       Pinger
	now         func() time.Time
}

func NewHealthHandler(serviceName, version string, cache CacheInspector, store Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		cache:       cache,
		store:       store,
		now:         time.Now,
	}
}

// HealthCheck always answers 200 while the process serves; a down store or
// an empty cache is reported, since reads fall back to a resync.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	now := h.now()

	storeStatus := "disabled"
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			storeStatus = "down"
		} else {
			storeStatus = "up"
		}
	}

	var cache *CacheStatus
	if h.cache != nil {
		cache = &CacheStatus{State: "empty"}
		if mod, ok := h.cache.LastModified(c.Request.Context()); ok {
			mod = mod.UTC()
			cache.State = "present"
			cache.LastModified = &mod
			cache.AgeSeconds = int64(now.Sub(mod).Seconds())
		}
	}

	metrics := service.GetMetrics()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Store:     storeStatus,
		Cache:     cache,
		Sync: SyncStatus{
			Metrics:            metrics,
			AvgRemoteLatencyMs: metrics.AverageRemoteLatency(),
		},
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
