package observe

import "time"

// Clock is the time source for a Timing
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now. Its readings carry the monotonic clock,
// so differences between them never go backwards.
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timing records start/end timestamps only
type Timing struct {
	StartedAt   time.Time
	CompletedAt time.Time

	clock Clock
}

// NewTiming creates timing with current start time
func NewTiming(clock Clock) *Timing {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timing{
		StartedAt: clock.Now(),
		clock:     clock,
	}
}

// Complete records completion time. Only the first call counts.
func (t *Timing) Complete() {
	if t.CompletedAt.IsZero() {
		t.CompletedAt = t.clock.Now()
	}
}

// Duration returns execution duration, never negative
func (t *Timing) Duration() time.Duration {
	end := t.CompletedAt
	if end.IsZero() {
		end = t.clock.Now()
	}
	d := end.Sub(t.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds returns Duration as floating-point seconds
func (t *Timing) Seconds() float64 {
	return t.Duration().Seconds()
}
