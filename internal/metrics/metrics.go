package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Sheet fetch metrics
	SheetRequestsTotal   *prometheus.CounterVec
	SheetDurationSeconds *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal         *prometheus.CounterVec
	CacheMissesTotal       *prometheus.CounterVec
	CacheStaleServedTotal  *prometheus.CounterVec
	SingleflightDedupTotal *prometheus.CounterVec

	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// Intent routing metrics
	IntentDecisionsTotal *prometheus.CounterVec
	EscalationsTotal     *prometheus.CounterVec

	// Generation metrics
	GenerationRequestsTotal   *prometheus.CounterVec
	GenerationDurationSeconds *prometheus.HistogramVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SheetRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_sheet_requests_total",
				Help: "Total number of sheet fetch requests by dataset and status",
			},
			[]string{"dataset", "status"}, // status: success, error
		),

		SheetDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waybot_sheet_duration_seconds",
				Help:    "Sheet fetch duration in seconds by dataset",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"dataset"},
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_cache_hits_total",
				Help: "Total number of cache hits by dataset",
			},
			[]string{"dataset"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_cache_misses_total",
				Help: "Total number of cache misses by dataset",
			},
			[]string{"dataset"},
		),

		CacheStaleServedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_cache_stale_served_total",
				Help: "Total number of reads served from a stale snapshot after a refresh failure",
			},
			[]string{"dataset"},
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_singleflight_dedup_total",
				Help: "Total number of refresh calls deduplicated by singleflight",
			},
			[]string{"dataset"},
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waybot_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by outcome",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 25},
			},
			[]string{"status"},
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_webhook_requests_total",
				Help: "Total number of webhook requests by status",
			},
			[]string{"status"}, // status: success, error, rate_limited, bad_request
		),

		IntentDecisionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_intent_decisions_total",
				Help: "Total number of intent decisions by intent",
			},
			[]string{"intent"}, // intent: faq, course, fallback, clarify, short_circuit
		),

		EscalationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_escalations_total",
				Help: "Total number of escalations by trigger",
			},
			[]string{"trigger"}, // trigger: price, urgent
		),

		GenerationRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_generation_requests_total",
				Help: "Total number of generation calls by provider and status",
			},
			[]string{"provider", "status"},
		),

		GenerationDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waybot_generation_duration_seconds",
				Help:    "LLM generation duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 4, 8, 12},
			},
			[]string{"provider"},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "waybot_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: subscriber
		),
	}

	return m
}

// RecordSheetRequest records a sheet fetch with status
func (m *Metrics) RecordSheetRequest(dataset, status string, duration float64) {
	m.SheetRequestsTotal.WithLabelValues(dataset, status).Inc()
	m.SheetDurationSeconds.WithLabelValues(dataset).Observe(duration)
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(dataset string) {
	m.CacheHitsTotal.WithLabelValues(dataset).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(dataset string) {
	m.CacheMissesTotal.WithLabelValues(dataset).Inc()
}

// RecordCacheStaleServed records a read served from stale data
func (m *Metrics) RecordCacheStaleServed(dataset string) {
	m.CacheStaleServedTotal.WithLabelValues(dataset).Inc()
}

// RecordSingleflightDedup records a deduplicated refresh
func (m *Metrics) RecordSingleflightDedup(dataset string) {
	m.SingleflightDedupTotal.WithLabelValues(dataset).Inc()
}

// RecordWebhook records a webhook request
func (m *Metrics) RecordWebhook(status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(status).Observe(duration)
}

// RecordIntentDecision records an intent routing decision
func (m *Metrics) RecordIntentDecision(intent string) {
	m.IntentDecisionsTotal.WithLabelValues(intent).Inc()
}

// RecordEscalation records an escalation trigger
func (m *Metrics) RecordEscalation(trigger string) {
	m.EscalationsTotal.WithLabelValues(trigger).Inc()
}

// RecordGeneration records a generation call
func (m *Metrics) RecordGeneration(provider, status string, duration float64) {
	m.GenerationRequestsTotal.WithLabelValues(provider, status).Inc()
	m.GenerationDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}
