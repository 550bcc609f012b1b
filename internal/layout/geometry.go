package layout

import (
	"math"
	"time"
)

// DefaultHourHeight is the number of terminal rows used for one hour.
const DefaultHourHeight = 4

const (
	secondsPerDay = 24 * 60 * 60
	// quarterResolution is the fraction of an hour that partial hours are
	// rounded to.
	quarterResolution = 0.25
)

// RowHeight converts a duration into display rows.
//
// Only the sub-day remainder of d is used (floor-mod 24h, so negative values
// wrap the way a day-and-seconds split would). Whole hours contribute
// hourHeight rows each; the leftover minutes are rounded half-to-even to the
// nearest quarter hour.
func RowHeight(d time.Duration, hourHeight int) float64 {
	secs := int64(d / time.Second)
	secs = ((secs % secondsPerDay) + secondsPerDay) % secondsPerDay

	whole := float64(secs/3600) * float64(hourHeight)
	minutes := math.Mod(float64(secs)/60, 60)
	quarters := math.RoundToEven((minutes/60)/quarterResolution) * quarterResolution

	return whole + quarters*float64(hourHeight)
}

// ComputeGeometry returns, for each event of a chronologically ordered
// column, its height and the gap above it in rows.
//
// The first event's gap is measured from midnight of its start day; later
// gaps are measured from the previous event in the same column. Heights are
// at least one row so that instantaneous events stay visible. Gaps have no
// floor: an event at 00:00, or one starting exactly when its predecessor
// ends, gets a gap of 0. A non-positive
// hourHeight falls back to DefaultHourHeight.
func ComputeGeometry(col Column, hourHeight int) (heights, paddings []int) {
	if hourHeight <= 0 {
		hourHeight = DefaultHourHeight
	}

	heights = make([]int, len(col))
	paddings = make([]int, len(col))

	for i, ev := range col {
		var gap time.Duration
		if i == 0 {
			gap = ev.Start.Sub(midnight(ev.Start))
		} else {
			gap = ev.Start.Sub(col[i-1].End)
		}
		paddings[i] = int(RowHeight(gap, hourHeight))

		h := int(RowHeight(ev.End.Sub(ev.Start), hourHeight))
		if h < 1 {
			h = 1
		}
		heights[i] = h
	}

	return heights, paddings
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
