package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions   prometheus.Gauge
	TokenRequests    *prometheus.CounterVec
	ProxyRequests    *prometheus.CounterVec
	ProxyLatency     *prometheus.HistogramVec
	PreferenceWrites *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of issued credentials that have not yet expired.",
		}),
		TokenRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_requests_total",
			Help:      "Token issuance requests by outcome.",
		}, []string{"outcome"}),
		ProxyRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_proxy_requests_total",
			Help:      "Agent proxy requests by route and outcome.",
		}, []string{"route", "outcome"}),
		ProxyLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "agent_proxy_latency_ms",
			Help:      "Agent backend round-trip latency in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"route"}),
		PreferenceWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_preference_writes_total",
			Help:      "Voice preference store writes by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveProxyLatency(route string, d time.Duration) {
	m.ProxyLatency.WithLabelValues(route).Observe(float64(d.Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
