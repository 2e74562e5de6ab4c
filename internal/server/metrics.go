package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/projection"
)

// Metrics holds the collectors served on /metrics. Each Metrics owns its
// registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	projections     *prometheus.CounterVec
	projectedTokens *prometheus.GaugeVec
	actions         *prometheus.CounterVec
	themePushes     prometheus.Counter
	requests        *prometheus.CounterVec
	clients         prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		projections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenkit_projections_total",
				Help: "Category projections applied to the token store.",
			},
			[]string{"category"},
		),
		projectedTokens: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tokenkit_projected_tokens",
				Help: "Tokens written by the last projection of a category.",
			},
			[]string{"category"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenkit_actions_total",
				Help: "Input actions by store and outcome.",
			},
			[]string{"store", "outcome"},
		),
		themePushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokenkit_theme_pushes_total",
			Help: "Theme rebuilds pushed to live preview clients.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenkit_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tokenkit_ws_clients",
			Help: "Connected live preview clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.projections,
		m.projectedTokens,
		m.actions,
		m.themePushes,
		m.requests,
		m.clients,
	)
	return m
}

// ObserveProjection records one applied projection. It matches the
// app.Options.OnProjection signature.
func (m *Metrics) ObserveProjection(c projection.Category, count int) {
	m.projections.WithLabelValues(string(c)).Inc()
	m.projectedTokens.WithLabelValues(string(c)).Set(float64(count))
}

func (m *Metrics) observeAction(key string, res app.Result, err error) {
	store := storeOf(key)
	switch {
	case err != nil:
		m.actions.WithLabelValues(store, "error").Inc()
	case res.Armed:
		m.actions.WithLabelValues(store, "armed").Inc()
	case res.Applied:
		m.actions.WithLabelValues(store, "applied").Inc()
	default:
		m.actions.WithLabelValues(store, "noop").Inc()
	}
}

func (m *Metrics) observeRequest(method, pattern string, status int) {
	m.requests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
