package domain

import "time"

const (
	// WorkDuration is the length of a focus interval.
	WorkDuration = 25 * time.Minute
	// BreakDuration is the length of a break interval.
	BreakDuration = 5 * time.Minute
	// IndicatorSlots is the number of completion dots shown before wrapping.
	IndicatorSlots = 4
)

// Phase represents which interval the timer is counting down.
type Phase int

const (
	// PhaseWork is a focus interval.
	PhaseWork Phase = iota
	// PhaseBreak is a rest interval.
	PhaseBreak
)

// Total returns the full duration of the phase.
func (p Phase) Total() time.Duration {
	if p == PhaseBreak {
		return BreakDuration
	}
	return WorkDuration
}

// Next returns the phase that follows p on expiry.
func (p Phase) Next() Phase {
	if p == PhaseBreak {
		return PhaseWork
	}
	return PhaseBreak
}

// Label returns the heading shown above the dial.
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Focus Time"
	case PhaseBreak:
		return "Break Time"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "work"
	case PhaseBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Wake tells the host loop whether another frame is needed.
type Wake int

const (
	// WakeIdle means nothing is moving; the host may sleep until input arrives.
	WakeIdle Wake = iota
	// WakeRepaint asks the host to schedule the next frame as soon as possible.
	WakeRepaint
)

// String implements fmt.Stringer.
func (w Wake) String() string {
	if w == WakeRepaint {
		return "repaint"
	}
	return "idle"
}

// Event reports what a tick observed.
type Event int

const (
	// EventNone means the tick changed nothing but the remaining time.
	EventNone Event = iota
	// EventExpired is reported on the tick that ends a phase.
	EventExpired
)
