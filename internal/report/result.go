package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psantana5/speedloop/internal/hostinfo"
	"github.com/psantana5/speedloop/internal/logging"
	"github.com/psantana5/speedloop/internal/loop"
)

// DefaultLabel names this implementation in the output line
const DefaultLabel = "Go"

// Result is the immutable record of one run. Set once, never change.
type Result struct {
	RunID string `json:"run_id" yaml:"run_id"`
	Label string `json:"label" yaml:"label"`

	Cycles int `json:"cycles" yaml:"cycles"`

	StartTime  time.Time     `json:"start_time" yaml:"start_time"`
	EndTime    time.Time     `json:"end_time" yaml:"end_time"`
	Duration   time.Duration `json:"-" yaml:"-"`
	Seconds    float64       `json:"duration_seconds" yaml:"duration_seconds"`
	NsPerCycle float64       `json:"ns_per_cycle" yaml:"ns_per_cycle"`

	// Optional, attached with --host
	CPU  *hostinfo.CPUTime `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Host *hostinfo.Host    `json:"host,omitempty" yaml:"host,omitempty"`
}

// NewResult freezes a measurement. An empty label falls back to DefaultLabel.
func NewResult(label string, m *loop.Measurement) *Result {
	if label == "" {
		label = DefaultLabel
	}
	return &Result{
		RunID:      uuid.NewString(),
		Label:      label,
		Cycles:     m.Cycles,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Duration:   m.Duration,
		Seconds:    m.Seconds(),
		NsPerCycle: m.NsPerCycle(),
	}
}

// SetCPU attaches process CPU time spent in the run
func (r *Result) SetCPU(cpu hostinfo.CPUTime) {
	r.CPU = &cpu
}

// SetHost attaches a host description
func (r *Result) SetHost(h *hostinfo.Host) {
	r.Host = h
}

// Line is the one-line human summary, e.g.
// "Go looped 1000000000 times in 0.312 seconds"
func (r *Result) Line() string {
	return fmt.Sprintf("%s looped %d times in %.3f seconds", r.Label, r.Cycles, r.Seconds)
}

// LogSummary emits a one-line info log for the run
func (r *Result) LogSummary(logger *logging.Logger) {
	fields := map[string]interface{}{
		"run_id":       r.RunID,
		"label":        r.Label,
		"cycles":       r.Cycles,
		"seconds":      r.Seconds,
		"ns_per_cycle": r.NsPerCycle,
	}
	if r.CPU != nil {
		fields["cpu_seconds"] = r.CPU.Total()
	}
	logger.Info("run complete", fields)
}
