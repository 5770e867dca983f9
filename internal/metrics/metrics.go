package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes.
const (
	OutcomeFound   = "found"
	OutcomeMissing = "missing"
	OutcomeInvalid = "invalid"
)

// Metrics holds the Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	ResolutionsTotal  *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envprops_resolutions_total",
				Help: "Total number of property resolutions",
			},
			[]string{"source", "outcome"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "envprops_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(m.ResolutionsTotal, m.HTTPRequestsTotal)
	return m
}

// ObserveResolution counts one resolution. source is empty unless a value was found.
func (m *Metrics) ObserveResolution(source, outcome string) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveRequest counts one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes the collectors registered on gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
