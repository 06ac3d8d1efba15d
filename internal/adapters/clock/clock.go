// Package clock provides ports.Clock implementations.
package clock

import (
	"time"

	"github.com/xvierd/pomo/internal/ports"
)

// System reads the process clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a clock that only moves when told to. It is not safe for
// concurrent use, matching the single-threaded timer loop.
type Manual struct {
	now time.Time
}

// NewManual returns a manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.now = t
}

var (
	_ ports.Clock = System{}
	_ ports.Clock = (*Manual)(nil)
)
