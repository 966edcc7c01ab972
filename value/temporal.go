package value

import "time"

// Date is a calendar date without time of day; it binds with the date pattern (default yyyy-MM-dd).
type Date struct {
	time.Time
}

// NewDate creates a UTC date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay is a wall clock time; it binds with the time pattern (default HH:mm:ss).
type TimeOfDay struct {
	time.Time
}

// NewTimeOfDay creates a time of day anchored at the zero date.
func NewTimeOfDay(hour, minute, second, nanosecond int) TimeOfDay {
	return TimeOfDay{Time: time.Date(0, time.January, 1, hour, minute, second, nanosecond, time.UTC)}
}
