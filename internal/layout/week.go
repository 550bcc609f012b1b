// Package layout turns a flat list of calendar events into the per-day
// column layout shown by the week view.
//
// The pipeline is: SelectWeek -> GroupByWeekday -> PartitionDay ->
// ComputeGeometry, with a Cursor choosing which column of each day is
// visible. Every step is pure and cheap; callers re-run it in full whenever
// the week, the data, or the cursor changes.
package layout

import (
	"sort"
	"time"

	"termcal/internal/model"
)

// weekSpan is the offset from a week's Monday 00:00 to its Sunday 23:59:59.
const weekSpan = 6*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second

// SelectWeek returns the events whose date range touches the week that
// starts at weekStart (expected to be a Monday at midnight).
//
// Behavior:
//   - The test is date-level and inclusive: an event is kept when its start
//     date is on or before the week's last date and its end date is on or
//     after the week's first date.
//   - Events without a start or an end are dropped.
//   - Events spanning several weeks are returned unclipped for each week.
//   - Each returned copy has Weekday set from its start date. An event that
//     starts before weekStart keeps that earlier weekday, so one running from
//     the previous Sunday night into Monday lands in this week's Sunday column.
//   - The result is ordered by start, stable on ties.
func SelectWeek(weekStart time.Time, events []model.Event) []model.Event {
	weekEnd := weekStart.Add(weekSpan)
	first := civilDate(weekStart)
	last := civilDate(weekEnd)

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if !ev.HasTimes() {
			continue
		}
		if civilDate(ev.Start).After(last) || civilDate(ev.End).Before(first) {
			continue
		}
		ev.Weekday = model.WeekdayOf(ev.Start)
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// GroupByWeekday splits week events by their Weekday index, keeping order.
// Events with an out-of-range Weekday are ignored.
func GroupByWeekday(events []model.Event) [7][]model.Event {
	var days [7][]model.Event
	for _, ev := range events {
		if ev.Weekday < 0 || ev.Weekday > 6 {
			continue
		}
		days[ev.Weekday] = append(days[ev.Weekday], ev)
	}
	return days
}

// civilDate drops the clock part of t, keeping the calendar date as seen in
// t's own location. Comparisons between civil dates are naive by design.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
