package auth

import "time"

// Clock is the single source of "now" for every temporal decision.
type Clock func() time.Time

// SystemClock returns the wall clock at millisecond resolution, in UTC.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FixedClock always returns t. Useful for deterministic tests.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
