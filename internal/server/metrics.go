package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the API's Prometheus collectors. Each Server owns its own
// registry so tests can build servers independently.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	uploads  *prometheus.CounterVec
	reports  prometheus.Counter
	sessions prometheus.GaugeFunc
}

func newMetrics(liveSessions func() float64) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transport_report",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transport_report",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transport_report",
			Name:      "uploads_total",
			Help:      "Spreadsheet uploads by outcome.",
		}, []string{"result"}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "transport_report",
			Name:      "reports_total",
			Help:      "Reports built.",
		}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "transport_report",
			Name:      "sessions",
			Help:      "Sessions held in memory.",
		}, liveSessions),
	}
	m.registry.MustRegister(m.requests, m.duration, m.uploads, m.reports, m.sessions)
	return m
}

func (m *metrics) observeRequest(method string, status int, seconds float64) {
	if status == 0 {
		status = http.StatusOK
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(seconds)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
