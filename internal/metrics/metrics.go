package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "archlens"

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	LLMRequests *prometheus.CounterVec
	LLMLatency  *prometheus.HistogramVec
	Fallbacks   *prometheus.CounterVec
	Analyses    *prometheus.CounterVec
	StoreSize   *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Text generation calls by phase and outcome.",
		}, []string{"phase", "outcome"}),
		LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Text generation latency by phase.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"phase"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "fallbacks_total",
			Help:      "Fallback substitutions by operation and reason.",
		}, []string{"operation", "reason"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "scenarios_total",
			Help:      "Completed scenario analyses by framework and origin.",
		}, []string{"framework", "origin"}),
		StoreSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records",
			Help:      "Records currently held by the architecture store.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.LLMRequests, m.LLMLatency, m.Fallbacks, m.Analyses, m.StoreSize)
	}
	return m
}

// RecordFallback is safe on a nil receiver.
func (m *Metrics) RecordFallback(operation, reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) RecordAnalysis(framework, origin string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(framework, origin).Inc()
}

func (m *Metrics) SetStoreSize(kind string, n int) {
	if m == nil {
		return
	}
	m.StoreSize.WithLabelValues(kind).Set(float64(n))
}
