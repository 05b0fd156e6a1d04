package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the gateway's Prometheus collectors. It doubles as
// the platform client's call observer and the wizard's lifecycle recorder.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	platformCalls *prometheus.HistogramVec

	activeSessions  prometheus.Gauge
	sessionOutcomes *prometheus.CounterVec

	goroutines prometheus.GaugeFunc
}

// NewMetricsService registers all collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "HTTP requests handled, by method, route, and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		platformCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_platform_call_duration_seconds",
			Help:    "Platform round-trip latency, by operation and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_wizard_active_sessions",
			Help: "Reschedule sessions currently in flight.",
		}),
		sessionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_wizard_sessions_total",
			Help: "Finished reschedule sessions, by outcome.",
		}, []string{"outcome"}),
	}
	m.goroutines = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gateway_goroutines",
		Help: "Current number of goroutines.",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.platformCalls,
		m.activeSessions,
		m.sessionOutcomes,
		m.goroutines,
	)
	return m
}

// Registry exposes the collectors for the /metrics handler.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request.
func (m *MetricsService) ObserveRequest(method, route, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObservePlatformCall implements platform.CallObserver.
func (m *MetricsService) ObservePlatformCall(operation string, status int, duration time.Duration) {
	m.platformCalls.WithLabelValues(operation, statusLabel(status)).Observe(duration.Seconds())
}

// SessionStarted bumps the in-flight gauge.
func (m *MetricsService) SessionStarted() {
	m.activeSessions.Inc()
}

// SessionFinished records the outcome and releases the in-flight slot.
func (m *MetricsService) SessionFinished(outcome string) {
	m.sessionOutcomes.WithLabelValues(outcome).Inc()
	m.activeSessions.Dec()
}

func statusLabel(status int) string {
	switch {
	case status == 0:
		return "error"
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
