// Package clock abstracts the current time so that temporal status
// derivations can be tested deterministically. Every read-side status
// computation re-samples the clock; nothing caches "now".
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock (UTC).
func System() Clock { return systemClock{} }

// Fixed is a settable Clock for tests. Advance it to move records through
// their lifecycle without sleeping.
type Fixed struct {
	Current time.Time
}

// NewFixed returns a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed { return &Fixed{Current: t} }

func (f *Fixed) Now() time.Time { return f.Current }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.Current = f.Current.Add(d) }

// Set moves the clock to an absolute instant.
func (f *Fixed) Set(t time.Time) { f.Current = t }
