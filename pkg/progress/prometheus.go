package progress

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a Sink exporting the progress as prometheus metrics.
type Metrics struct {
	pass        prometheus.Gauge
	processed   *prometheus.CounterVec
	created     *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
}

var _ Sink = (*Metrics)(nil)

// NewMetrics registers the import metrics at the given registerer.
// A nil registerer creates unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		pass: f.NewGauge(prometheus.GaugeOpts{
			Name: "ifcimport_pass",
			Help: "Currently executed import pass",
		}),
		processed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ifcimport_entities_processed_total",
			Help: "Number of processed IFC entities by type",
		}, []string{"type"}),
		created: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ifcimport_elements_created_total",
			Help: "Number of created host elements by kind",
		}, []string{"kind"}),
		diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ifcimport_diagnostics_total",
			Help: "Number of reported diagnostics by severity",
		}, []string{"severity"}),
	}
}

func (m *Metrics) Pass(n int) {
	m.pass.Set(float64(n))
}

func (m *Metrics) Processed(typ string) {
	m.processed.WithLabelValues(typ).Inc()
}

func (m *Metrics) Created(kind string) {
	m.created.WithLabelValues(kind).Inc()
}

func (m *Metrics) Diagnostic(severity string) {
	m.diagnostics.WithLabelValues(severity).Inc()
}
