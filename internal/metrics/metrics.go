// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package metrics registers the Prometheus instruments for API traffic,
// catalog cache behavior and export rendering.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockroom_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockroom_http_active_requests",
			Help: "Number of HTTP requests currently in flight",
		},
	)

	// Catalog cache metrics
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockroom_catalog_cache_hits_total",
			Help: "Snapshot requests served from the cached catalog",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockroom_catalog_cache_misses_total",
			Help: "Snapshot requests that triggered a reload from disk",
		},
	)

	CatalogReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockroom_catalog_reload_duration_seconds",
			Help:    "Duration of full catalog reloads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Export metrics
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockroom_exports_total",
			Help: "Total number of rendered export files",
		},
		[]string{"dataset", "format"},
	)

	// Login metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockroom_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // "success" or "failure"
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
