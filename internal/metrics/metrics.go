// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Pipeline Metrics
var (
	// AnalysesTotal tracks analysis runs by outcome
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubepulse_analyses_total",
			Help: "Total analysis runs by outcome (success/invalid_input/not_found/unavailable/error)",
		},
		[]string{"status"},
	)

	// AnalysisDuration tracks end-to-end analysis run latency in seconds
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tubepulse_analysis_duration_seconds",
			Help:    "End-to-end analysis run duration in seconds (retrieval included)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// CommentsFetched tracks total comments retrieved across all runs
	CommentsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubepulse_comments_fetched_total",
			Help: "Total comments retrieved from the YouTube API",
		},
	)

	// EnrichmentFailures tracks comments degraded to neutral defaults
	EnrichmentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubepulse_enrichment_failures_total",
			Help: "Total comments whose enrichment failed and was degraded to defaults",
		},
	)
)

// Report Cache Metrics
var (
	// ReportCacheHits tracks report lookups served from the cache
	ReportCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubepulse_report_cache_hits_total",
			Help: "Total report cache hits",
		},
	)

	// ReportCacheMisses tracks report lookups that found no live entry
	ReportCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubepulse_report_cache_misses_total",
			Help: "Total report cache misses, expired entries included",
		},
	)

	// ReportCacheEvictions tracks expired reports removed by the eviction timer
	ReportCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tubepulse_report_cache_evictions_total",
			Help: "Total expired reports evicted from the cache",
		},
	)

	// ReportCacheSize tracks current number of cached reports
	ReportCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubepulse_report_cache_entries",
			Help: "Current number of reports held in the cache",
		},
	)
)

// HTTP Error Metrics
// Note: tubepulse_http_errors_total{type} is provided by the internal/errors
// middleware so error counting stays next to error classification.
