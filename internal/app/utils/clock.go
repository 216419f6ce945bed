package utils

import "time"

// Clock returns the current time
type Clock func() time.Time

// ClockIn returns a clock reporting wall time in loc
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
