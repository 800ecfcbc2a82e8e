package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the permit engine.
type Metrics struct {
	Determinations  prometheus.Counter
	Classifications *prometheus.CounterVec // labels: method={rules,ai}
	AIEscalations   prometheus.Counter
	AIFallbacks     prometheus.Counter

	// Provider fault tolerance.
	ProviderFallbacks *prometheus.CounterVec // labels: provider={geocoder,floodmap}

	RequestDuration *prometheus.HistogramVec // labels: endpoint
}

func newMetrics() *Metrics {
	return &Metrics{
		Determinations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "permit_engine",
			Name:      "determinations_total",
			Help:      "Total merged determination records produced.",
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permit_engine",
			Name:      "classifications_total",
			Help:      "Permit classifications by decision method.",
		}, []string{"method"}),
		AIEscalations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "permit_engine",
			Name:      "ai_escalations_total",
			Help:      "Low-confidence classifications escalated to the AI provider.",
		}),
		AIFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "permit_engine",
			Name:      "ai_fallbacks_total",
			Help:      "AI escalations that fell back to the rule result.",
		}),
		ProviderFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permit_engine",
			Name:      "provider_fallbacks_total",
			Help:      "External provider failures recovered via heuristic fallback.",
		}, []string{"provider"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "permit_engine",
			Name:      "request_duration_seconds",
			Help:      "Duration of engine entry-point calls.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Determinations,
		m.Classifications,
		m.AIEscalations,
		m.AIFallbacks,
		m.ProviderFallbacks,
		m.RequestDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
