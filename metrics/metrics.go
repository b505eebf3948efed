// Package metrics provides Prometheus metrics collection for HTTP server
// and enrichment pipeline monitoring. It exports metrics for tracking HTTP
// request performance:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// plus gauges describing the most recent enrichment pass over the RxNorm
// release (record counts, NDC reconstruction outcomes, instruction totals).
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vineetdaniels2108/rxnorm-api/enrichment"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	EnrichedRecordsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrichment_records_total",
			Help: "Medication records produced by the last enrichment pass",
		},
	)

	EnrichmentNDCs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "enrichment_ndc_codes",
			Help: "NDC codes seen by the last enrichment pass, by outcome",
		},
		[]string{"outcome"},
	)

	EnrichmentCoverage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "enrichment_record_coverage",
			Help: "Records carrying a given enriched field after the last pass",
		},
		[]string{"field"},
	)

	EnrichmentInstructionsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrichment_instructions_total",
			Help: "Usage instructions generated by the last enrichment pass",
		},
	)

	EnrichmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_seconds",
			Help:    "Wall time of a full enrichment pass",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
)

// RecordEnrichmentStats publishes the statistics of a completed enrichment
// pass to the Prometheus gauges.
func RecordEnrichmentStats(stats enrichment.Stats) {
	EnrichedRecordsTotal.Set(float64(stats.Records))
	EnrichmentNDCs.WithLabelValues("raw").Set(float64(stats.RawNDCs))
	EnrichmentNDCs.WithLabelValues("standardized").Set(float64(stats.StandardizedNDCs))
	EnrichmentNDCs.WithLabelValues("dropped").Set(float64(stats.DroppedNDCs))
	EnrichmentCoverage.WithLabelValues("ndc").Set(float64(stats.RecordsWithNDC))
	EnrichmentCoverage.WithLabelValues("manufacturer").Set(float64(stats.RecordsWithManufacturer))
	EnrichmentCoverage.WithLabelValues("gpi").Set(float64(stats.RecordsWithGPI))
	EnrichmentInstructionsTotal.Set(float64(stats.TotalInstructions))
}

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(EnrichedRecordsTotal)
	prometheus.MustRegister(EnrichmentNDCs)
	prometheus.MustRegister(EnrichmentCoverage)
	prometheus.MustRegister(EnrichmentInstructionsTotal)
	prometheus.MustRegister(EnrichmentDuration)
}
