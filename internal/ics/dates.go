package ics

import (
	"fmt"
	"strings"
	"time"

	"termcal/internal/model"
)

// dateLayouts are tried in order. Day and month accept one or two digits.
// Day-first wins over month-first when both would match.
var dateLayouts = []string{
	"2006-1-2",
	"2.1.2006",
	"2/1/2006",
	"1/2/2006",
	"2006/1/2",
	"2-1-2006",
	"1-2-2006",
}

const timeLayout = "15:04"

var timeSeparators = []string{":", " ", "/"}

// dateTimeLayouts combines timeLayout with every date layout, joined by each
// separator, time first and date first.
var dateTimeLayouts = func() []string {
	out := make([]string, 0, len(dateLayouts)*len(timeSeparators)*2)
	for _, sep := range timeSeparators {
		for _, d := range dateLayouts {
			out = append(out, timeLayout+sep+d, d+sep+timeLayout)
		}
	}
	return out
}()

// FormLayout is how date-times are shown in the event form, e.g.
// "14:25 24.12.2024".
const FormLayout = "15:04 02.01.2006"

// ParseDate parses a calendar date in one of the supported layouts
// (2024-09-16, 16.09.2024, 16/09/2024, 09/16/2024, 2024/09/16, 16-09-2024,
// 09-16-2024). The year must lie between 1900 and ten years from now.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := parseFirst(strings.TrimSpace(s), dateLayouts, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: supported formats include YYYY-MM-DD, DD.MM.YYYY, DD/MM/YYYY, MM/DD/YYYY", s)
	}
	if maxYear := time.Now().Year() + 10; t.Year() < 1900 || t.Year() > maxYear {
		return time.Time{}, fmt.Errorf("date year %d seems unreasonable", t.Year())
	}
	return t, nil
}

// ParseDateTime parses "HH:MM" combined with a supported date, in either
// order, separated by ':', ' ' or '/'.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	t, err := parseFirst(strings.TrimSpace(s), dateTimeLayouts, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q: expected e.g. %s", s, FormLayout)
	}
	return t, nil
}

// FormatDateTime renders t in FormLayout. The zero time renders empty.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(FormLayout)
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-model.WeekdayOf(t), 0, 0, 0, 0, t.Location())
}

func parseFirst(s string, layouts []string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
