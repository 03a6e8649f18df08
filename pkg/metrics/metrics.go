package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	gatewayCallDuration *prometheus.HistogramVec
	submissionsTotal    *prometheus.CounterVec
}

// New создает коллекторы в собственном registry
// Каждый вызов независим, поэтому New безопасно вызывать в тестах
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatewayCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "gateway_call_duration_seconds",
			Help:        "Backend API call latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by final state",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.gatewayCallDuration,
		m.submissionsTotal,
	)

	return m
}

// Handler HTTP handler для scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveGatewayCall(operation, outcome string, duration time.Duration) {
	m.gatewayCallDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

func (m *Metrics) IncSubmission(state string) {
	m.submissionsTotal.WithLabelValues(state).Inc()
}
