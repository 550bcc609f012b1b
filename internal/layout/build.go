package layout

import (
	"time"

	"termcal/internal/model"
)

// Day is the computed layout of one weekday of a Week.
type Day struct {
	Weekday int
	Date    time.Time

	Columns OverlapSet
	// Active is the index into Columns that is rendered. It is 0 for days
	// without columns.
	Active int

	// Heights and Paddings are aligned with Columns[Active].
	Heights  []int
	Paddings []int
}

// Pages returns the number of overlap columns of the day.
func (d Day) Pages() int {
	return len(d.Columns)
}

// Visible returns the rendered column, or nil if the day is empty.
func (d Day) Visible() Column {
	if len(d.Columns) == 0 {
		return nil
	}
	return d.Columns[d.Active]
}

// Week is the full layout of one Monday-to-Sunday week.
type Week struct {
	Start      time.Time
	HourHeight int
	Days       [7]Day
}

// BuildWeek runs the whole layout pipeline for the week starting at
// weekStart. The cursor chooses each day's visible column; an index that no
// longer exists (the data shrank since the user paged) shows column 0.
// A nil cursor shows column 0 everywhere.
func BuildWeek(weekStart time.Time, events []model.Event, cursor *Cursor, hourHeight int) Week {
	if hourHeight <= 0 {
		hourHeight = DefaultHourHeight
	}

	wk := Week{Start: weekStart, HourHeight: hourHeight}
	grouped := GroupByWeekday(SelectWeek(weekStart, events))

	for i := range wk.Days {
		day := Day{
			Weekday: i,
			Date:    weekStart.AddDate(0, 0, i),
			Columns: PartitionDay(grouped[i]),
		}
		if cursor != nil {
			if idx := cursor.Visible(i); idx < len(day.Columns) {
				day.Active = idx
			}
		}
		if len(day.Columns) > 0 {
			day.Heights, day.Paddings = ComputeGeometry(day.Columns[day.Active], hourHeight)
		}
		wk.Days[i] = day
	}

	return wk
}
