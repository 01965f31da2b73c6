// Package metrics records the outcome of assignment runs with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes, used as the "outcome" label.
const (
	OutcomeAssigned     = "assigned"
	OutcomeInfeasible   = "infeasible"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Recorder owns a private registry so that only run metrics are exported,
// without the Go runtime collectors of the default registry.
type Recorder struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	runs         *prometheus.CounterVec
	participants prometheus.Gauge
	forbidden    prometheus.Gauge
	candidates   prometheus.Gauge
	duration     prometheus.Histogram
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:        "santa",
		histogramBuckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "runs_total",
		Help:      "Assignment runs by outcome",
	}, []string{"outcome"})
	r.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "participants",
		Help:      "Participants in the last run",
	})
	r.forbidden = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "forbidden_pairs",
		Help:      "Forbidden pairings between current participants in the last run",
	})
	r.candidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "candidate_edges",
		Help:      "Giver to receiver pairings left after removing self and forbidden pairings",
	})
	r.duration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "match_duration_seconds",
		Help:      "Time spent computing an assignment",
		Buckets:   r.histogramBuckets,
	})

	return r
}

// Run describes one assignment attempt.
type Run struct {
	Outcome      string
	Participants int
	Forbidden    int
	Candidates   int
	Duration     time.Duration
}

// ObserveRun records a run. A nil recorder ignores it.
func (r *Recorder) ObserveRun(run Run) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(run.Outcome).Inc()
	r.participants.Set(float64(run.Participants))
	r.forbidden.Set(float64(run.Forbidden))
	r.candidates.Set(float64(run.Candidates))
	if run.Outcome == OutcomeAssigned || run.Outcome == OutcomeInfeasible {
		r.duration.Observe(run.Duration.Seconds())
	}
}

// Gatherer exposes the recorder's registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition
// format, as read by node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
