package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks sync pipeline counters
type Metrics struct {
	SyncRuns           int64 `json:"sync_runs"`
	ProjectFailures    int64 `json:"project_failures"`
	RemoteCalls        int64 `json:"remote_calls"`
	RemoteErrors       int64 `json:"remote_errors"`
	RemoteLatencyNs    int64 `json:"-"`
	CacheWrites        int64 `json:"cache_writes"`
	CacheWriteFailures int64 `json:"cache_write_failures"`
	WebhookTriggers    int64 `json:"webhook_triggers"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		SyncRuns:           atomic.LoadInt64(&globalMetrics.SyncRuns),
		ProjectFailures:    atomic.LoadInt64(&globalMetrics.ProjectFailures),
		RemoteCalls:        atomic.LoadInt64(&globalMetrics.RemoteCalls),
		RemoteErrors:       atomic.LoadInt64(&globalMetrics.RemoteErrors),
		RemoteLatencyNs:    atomic.LoadInt64(&globalMetrics.RemoteLatencyNs),
		CacheWrites:        atomic.LoadInt64(&globalMetrics.CacheWrites),
		CacheWriteFailures: atomic.LoadInt64(&globalMetrics.CacheWriteFailures),
		WebhookTriggers:    atomic.LoadInt64(&globalMetrics.WebhookTriggers),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.SyncRuns, 0)
	atomic.StoreInt64(&globalMetrics.ProjectFailures, 0)
	atomic.StoreInt64(&globalMetrics.RemoteCalls, 0)
	atomic.StoreInt64(&globalMetrics.RemoteErrors, 0)
	atomic.StoreInt64(&globalMetrics.RemoteLatencyNs, 0)
	atomic.StoreInt64(&globalMetrics.CacheWrites, 0)
	atomic.StoreInt64(&globalMetrics.CacheWriteFailures, 0)
	atomic.StoreInt64(&globalMetrics.WebhookTriggers, 0)
}

// RecordRemoteCall records one media host request; it matches the search client's OnCall hook
func RecordRemoteCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.RemoteCalls, 1)
	atomic.AddInt64(&globalMetrics.RemoteLatencyNs, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.RemoteErrors, 1)
	}
}

// RecordWebhookTrigger records a webhook that scheduled a resync
func RecordWebhookTrigger() {
	atomic.AddInt64(&globalMetrics.WebhookTriggers, 1)
}

func recordSyncRun() {
	atomic.AddInt64(&globalMetrics.SyncRuns, 1)
}

func recordProjectFailure() {
	atomic.AddInt64(&globalMetrics.ProjectFailures, 1)
}

func recordCacheWrite(err error) {
	atomic.AddInt64(&globalMetrics.CacheWrites, 1)
	if err != nil {
		atomic.AddInt64(&globalMetrics.CacheWriteFailures, 1)
	}
}

// AverageRemoteLatency returns the average latency in milliseconds
func (m Metrics) AverageRemoteLatency() float64 {
	if m.RemoteCalls == 0 {
		return 0
	}
	avgNs := float64(m.RemoteLatencyNs) / float64(m.RemoteCalls)
	return avgNs / 1e6
}
