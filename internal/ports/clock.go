// Package ports defines the interfaces between the timer core and the
// infrastructure that drives it.
package ports

import "time"

// Clock supplies the current instant.
// This is a driven port (implemented by adapters).
type Clock interface {
	// Now returns the current time. Implementations backed by time.Now keep
	// the monotonic reading so that subtraction is immune to wall-clock jumps.
	Now() time.Time
}
