package ports

import "context"

// TimerHost is the event loop that owns the timer and paints it.
// This is a driving port (it calls into the application layer).
type TimerHost interface {
	// Run blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context) error
}
