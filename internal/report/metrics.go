package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the gauges for a run in a private registry, so nothing
// leaks into the default one and nothing is served.
type Metrics struct {
	registry   *prometheus.Registry
	cycles     *prometheus.GaugeVec
	duration   *prometheus.GaugeVec
	nsPerCycle *prometheus.GaugeVec
	cpuSeconds *prometheus.GaugeVec
}

// NewMetrics creates and registers the run gauges
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "speedloop_cycles",
			Help: "Empty loop iterations executed",
		}, []string{"label"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "speedloop_duration_seconds",
			Help: "Wall-clock time spent in the loop",
		}, []string{"label"}),
		nsPerCycle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "speedloop_nanoseconds_per_cycle",
			Help: "Average wall-clock cost of one iteration",
		}, []string{"label"}),
		cpuSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "speedloop_cpu_seconds",
			Help: "Process CPU time spent in the loop by mode",
		}, []string{"label", "mode"}),
	}
	m.registry.MustRegister(m.cycles, m.duration, m.nsPerCycle, m.cpuSeconds)
	return m
}

// Observe sets the gauges from a Result
func (m *Metrics) Observe(r *Result) {
	m.cycles.WithLabelValues(r.Label).Set(float64(r.Cycles))
	m.duration.WithLabelValues(r.Label).Set(r.Seconds)
	m.nsPerCycle.WithLabelValues(r.Label).Set(r.NsPerCycle)
	if r.CPU != nil {
		m.cpuSeconds.WithLabelValues(r.Label, "user").Set(r.CPU.User)
		m.cpuSeconds.WithLabelValues(r.Label, "system").Set(r.CPU.System)
	}
}

// WriteText writes the registry in the Prometheus text exposition format
func (m *Metrics) WriteText(w io.Writer) error {
	metricFamilies, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range metricFamilies {
		if err := encoder.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
