// Package clock computes calendar boundaries for a reference instant.
//
// All functions are pure: callers pass "now" explicitly and calendar fields
// are evaluated in now's location. Period membership is an inclusive lower
// bound (t >= start); there is no upper bound because now is always current.
package clock

import "time"

// WeekStart is the first day of the statistics week.
const WeekStart = time.Sunday

// StartOfDay returns local midnight of now's calendar day.
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// StartOfWeek returns midnight of the most recent Sunday on or before now.
func StartOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) - int(WeekStart) + 7) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// StartOfMonth returns midnight of the first day of now's month.
func StartOfMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// DaysInMonth returns the number of days in now's month.
func DaysInMonth(now time.Time) int {
	y, m, _ := now.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

// Since reports whether t falls on or after start.
func Since(t, start time.Time) bool {
	return !t.Before(start)
}

// SameDay reports whether t falls on now's calendar day, in now's location.
func SameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SameMonth reports whether t falls in now's calendar month and year.
func SameMonth(t, now time.Time) bool {
	y1, m1, _ := t.In(now.Location()).Date()
	y2, m2, _ := now.Date()
	return y1 == y2 && m1 == m2
}

// IsNight reports whether now is in the evening/night window (19:00–05:59).
func IsNight(now time.Time) bool {
	h := now.Hour()
	return h >= 19 || h < 6
}

// Func returns the current time. Production code passes time.Now; tests pass Fixed.
type Func func() time.Time

// Fixed returns a Func that always reports t.
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}
