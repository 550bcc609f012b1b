package model

import "time"

// WeekdayNames lists the display names of the weekdays, indexed Monday=0.
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Event is the normalized view of a single VEVENT from the calendar file.
//
// A zero Start or End means the source component did not carry that value.
// Location and Description are empty when absent.
type Event struct {
	ID    string // iCalendar UID
	Title string // SUMMARY

	Start time.Time
	End   time.Time

	Location    string
	Description string

	// Weekday is 0..6 (Monday=0), taken from Start's calendar date when the
	// event is selected for a week. It is not recomputed afterwards.
	Weekday int
}

// HasTimes reports whether both Start and End are present.
func (e Event) HasTimes() bool {
	return !e.Start.IsZero() && !e.End.IsZero()
}

// Duration returns End - Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// WeekdayOf returns the Monday=0 weekday index of t's calendar date.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
