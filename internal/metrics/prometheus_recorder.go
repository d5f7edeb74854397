package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	phaseDuration *prom.HistogramVec
	runDuration   prom.Histogram
	templates     prom.Gauge
	entries       *prom.CounterVec
	diagnostics   *prom.CounterVec
	outcomes      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.phaseDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "launchgen",
		Name:      "phase_duration_seconds",
		Help:      "Duration of generation phases (load, assemble, write)",
		Buckets:   prom.DefBuckets,
	}, []string{"phase"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "launchgen",
		Name:      "run_duration_seconds",
		Help:      "Total generation run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.templates = prom.NewGauge(prom.GaugeOpts{
		Namespace: "launchgen",
		Name:      "templates",
		Help:      "Number of templates loaded in the last run",
	})
	pr.entries = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "launchgen",
		Name:      "configuration_entries_total",
		Help:      "Configuration entries by state",
	}, []string{"state"})
	pr.diagnostics = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "launchgen",
		Name:      "diagnostics_total",
		Help:      "Reported problems by severity and category",
	}, []string{"severity", "category"})
	pr.outcomes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "launchgen",
		Name:      "run_outcomes_total",
		Help:      "Run outcomes",
	}, []string{"outcome"})
	reg.MustRegister(pr.phaseDuration, pr.runDuration, pr.templates, pr.entries, pr.diagnostics, pr.outcomes)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetTemplates(n int) {
	p.templates.Set(float64(n))
}

func (p *PrometheusRecorder) AddEntries(state EntryState, n int) {
	p.entries.WithLabelValues(string(state)).Add(float64(n))
}

func (p *PrometheusRecorder) IncDiagnostic(severity string, category string) {
	p.diagnostics.WithLabelValues(severity, category).Inc()
}

func (p *PrometheusRecorder) IncOutcome(outcome Outcome) {
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
