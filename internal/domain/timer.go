// Package domain holds the pomodoro timer state machine and the values
// derived from it for rendering.
package domain

import (
	"fmt"
	"time"
)

// TimerState is the countdown for the current phase.
//
// A running timer has runningSince set; remaining is authoritative while
// paused and refreshed from the clock on every Tick while running.
type TimerState struct {
	runningSince *time.Time
	segment      time.Duration
	remaining    time.Duration
	isBreak      bool
	completed    int
}

// NewTimerState returns an idle timer at the start of a work phase.
func NewTimerState() *TimerState {
	return &TimerState{
		remaining: WorkDuration,
	}
}

// Tick advances the countdown to now. It is safe to call in any state.
func (s *TimerState) Tick(now time.Time) (Wake, Event) {
	if s.runningSince == nil {
		return WakeIdle, EventNone
	}

	elapsed := now.Sub(*s.runningSince)
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed >= s.segment {
		s.expire()
		// The transition itself still needs to be painted.
		return WakeRepaint, EventExpired
	}

	s.remaining = s.segment - elapsed
	if s.remaining < 0 {
		s.remaining = 0
	}
	return WakeRepaint, EventNone
}

func (s *TimerState) expire() {
	if !s.isBreak {
		s.completed++
	}
	s.isBreak = !s.isBreak
	s.runningSince = nil
	s.remaining = s.Phase().Total()
}

// Start resumes the countdown from the current remaining time.
func (s *TimerState) Start(now time.Time) {
	if s.runningSince != nil {
		return
	}
	started := now
	s.runningSince = &started
	s.segment = s.remaining
}

// Pause freezes the countdown at its value as of now.
func (s *TimerState) Pause(now time.Time) {
	if s.runningSince == nil {
		return
	}
	s.Tick(now)
	s.runningSince = nil
}

// Reset stops the timer and refills the current phase.
// The phase itself does not change.
func (s *TimerState) Reset() {
	s.runningSince = nil
	s.remaining = s.Phase().Total()
}

// Running reports whether the countdown is advancing.
func (s *TimerState) Running() bool {
	return s.runningSince != nil
}

// Remaining returns the time left in the current phase.
func (s *TimerState) Remaining() time.Duration {
	return s.remaining
}

// IsBreak reports whether the current phase is a break.
func (s *TimerState) IsBreak() bool {
	return s.isBreak
}

// Phase returns the current phase.
func (s *TimerState) Phase() Phase {
	if s.isBreak {
		return PhaseBreak
	}
	return PhaseWork
}

// Completed returns the number of work phases that ran to expiry.
func (s *TimerState) Completed() int {
	return s.completed
}

// ProgressFraction returns the share of the phase still remaining, in [0,1].
func (s *TimerState) ProgressFraction() float64 {
	total := s.Phase().Total().Seconds()
	if total <= 0 {
		return 0
	}
	f := s.remaining.Seconds() / total
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// DisplayText returns the remaining time as MM:SS.
func (s *TimerState) DisplayText() string {
	return FormatClock(s.remaining)
}

// IndicatorCount returns how many of the indicator dots are filled.
func (s *TimerState) IndicatorCount() int {
	return s.completed % IndicatorSlots
}

// Indicators returns the fill state of each indicator dot.
func (s *TimerState) Indicators() [IndicatorSlots]bool {
	var dots [IndicatorSlots]bool
	n := s.IndicatorCount()
	for i := range dots {
		dots[i] = i < n
	}
	return dots
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Phase      Phase
	Running    bool
	Remaining  time.Duration
	Completed  int
	Fraction   float64
	Text       string
	Indicators [IndicatorSlots]bool
}

// Snapshot captures the current state.
func (s *TimerState) Snapshot() Snapshot {
	return Snapshot{
		Phase:      s.Phase(),
		Running:    s.Running(),
		Remaining:  s.remaining,
		Completed:  s.completed,
		Fraction:   s.ProgressFraction(),
		Text:       s.DisplayText(),
		Indicators: s.Indicators(),
	}
}

// FormatClock formats d as MM:SS, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
