package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for HTTP, cache and workflow metrics.
// A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram

	forecastsSubmitted prometheus.Counter
	approvalDecisions  *prometheus.CounterVec
	artifactsCreated   prometheus.Counter
	notificationsSent  *prometheus.CounterVec
	partialCompletions *prometheus.CounterVec
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups partitioned by outcome",
		}, []string{"result"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache operations",
			Buckets: prometheus.DefBuckets,
		}),
		forecastsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farm_forecasts_submitted_total",
			Help: "Forecast requests accepted",
		}),
		approvalDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_approval_decisions_total",
			Help: "Approval decisions recorded",
		}, []string{"decision"}),
		artifactsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farm_approved_csv_artifacts_total",
			Help: "Approved CSV artifacts stored",
		}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_notifications_created_total",
			Help: "Inbox notifications created",
		}, []string{"kind"}),
		partialCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_partial_completions_total",
			Help: "Workflows that stopped after persisting an earlier step",
		}, []string{"stage"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.cacheLookups, m.cacheLatency,
		m.forecastsSubmitted, m.approvalDecisions, m.artifactsCreated,
		m.notificationsSent, m.partialCompletions, goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup records a cache lookup outcome.
func (m *MetricsService) RecordCacheLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ForecastSubmitted counts an accepted forecast.
func (m *MetricsService) ForecastSubmitted() {
	if m == nil {
		return
	}
	m.forecastsSubmitted.Inc()
}

// ApprovalDecided counts an approve or decline.
func (m *MetricsService) ApprovalDecided(approved bool) {
	if m == nil {
		return
	}
	decision := "declined"
	if approved {
		decision = "approved"
	}
	m.approvalDecisions.WithLabelValues(decision).Inc()
}

// ArtifactCreated counts a stored CSV artifact.
func (m *MetricsService) ArtifactCreated() {
	if m == nil {
		return
	}
	m.artifactsCreated.Inc()
}

// NotificationsCreated adds n notifications of the given kind.
func (m *MetricsService) NotificationsCreated(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.notificationsSent.WithLabelValues(kind).Add(float64(n))
}

// PartialCompletion counts a workflow that failed at stage after earlier writes.
func (m *MetricsService) PartialCompletion(stage string) {
	if m == nil {
		return
	}
	m.partialCompletions.WithLabelValues(stage).Inc()
}
