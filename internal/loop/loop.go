// Package loop times an empty counted loop of a fixed size.
package loop

import (
	"errors"
	"fmt"
	"time"

	"github.com/psantana5/speedloop/internal/logging"
	"github.com/psantana5/speedloop/internal/observe"
)

// Cycles is the number of empty iterations in every run
const Cycles = 1_000_000_000

// ErrCycleMismatch means the loop did not run exactly the requested number of times
var ErrCycleMismatch = errors.New("loop iteration count mismatch")

// Measurement is the outcome of one run. Set once, never changed.
type Measurement struct {
	Cycles    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Seconds returns the elapsed time as floating-point seconds
func (m *Measurement) Seconds() float64 {
	return m.Duration.Seconds()
}

// NsPerCycle returns the average cost of one iteration
func (m *Measurement) NsPerCycle() float64 {
	if m.Cycles == 0 {
		return 0
	}
	return float64(m.Duration.Nanoseconds()) / float64(m.Cycles)
}

// Spin runs an empty loop n times and returns the final counter.
// Returning the counter from a non-inlined call keeps the compiler
// from dropping the loop.
//
//go:noinline
func Spin(n int) int {
	i := 0
	for i < n {
		i++
	}
	return i
}

// Runner executes the timed loop
type Runner struct {
	cycles int
	clock  observe.Clock
	logger *logging.Logger
}

// NewRunner creates a runner for Cycles iterations. A nil clock uses the
// system monotonic clock; a nil logger discards output.
func NewRunner(clock observe.Clock, logger *logging.Logger) *Runner {
	if clock == nil {
		clock = observe.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{
		cycles: Cycles,
		clock:  clock,
		logger: logger.WithField("component", "loop"),
	}
}

// Run executes the loop once, synchronously, and measures it
func (r *Runner) Run() (*Measurement, error) {
	r.logger.Debug("starting loop", map[string]interface{}{"cycles": r.cycles})

	timing := observe.NewTiming(r.clock)
	n := Spin(r.cycles)
	timing.Complete()

	if n != r.cycles {
		return nil, fmt.Errorf("%w: ran %d, expected %d", ErrCycleMismatch, n, r.cycles)
	}

	m := &Measurement{
		Cycles:    r.cycles,
		StartTime: timing.StartedAt,
		EndTime:   timing.CompletedAt,
		Duration:  timing.Duration(),
	}

	r.logger.Debug("loop finished", map[string]interface{}{
		"cycles":   m.Cycles,
		"duration": m.Duration.String(),
	})

	return m, nil
}
