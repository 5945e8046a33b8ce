// Package clock provides time sources.
package clock

import (
	"time"

	"github.com/artpar/specforge/ports"
)

// System reads the wall clock.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// Ensure interface compliance.
var _ ports.Clock = System{}

// Fixed always returns the same instant (for tests and reproducible runs).
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.At
}

// Ensure interface compliance.
var _ ports.Clock = Fixed{}
