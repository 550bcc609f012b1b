package layout

import (
	"sort"

	"termcal/internal/model"
)

// Column is one vertical lane of a day: chronologically ordered events that
// do not collide with their predecessor in the lane.
type Column []model.Event

// OverlapSet is every Column computed for one day, in creation order.
type OverlapSet []Column

// Collides reports whether cur starts before prev ends. Touching events
// (prev.End == cur.Start) do not collide.
func Collides(prev, cur model.Event) bool {
	return prev.End.After(cur.Start)
}

// PartitionDay assigns a day's events to columns with a first-fit pass.
//
// Behavior:
//   - Records without an ID, a start or an end are dropped.
//   - The rest are stable-sorted by start.
//   - Each event goes into the first column whose last event it does not
//     collide with; if none accepts it, a new column is opened.
//   - An empty day yields no columns.
//
// Only the last event of each column is checked, so the result is a greedy
// heuristic and may use more columns than the minimum for some inputs.
func PartitionDay(events []model.Event) OverlapSet {
	valid := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.ID == "" || !ev.HasTimes() {
			continue
		}
		valid = append(valid, ev)
	}
	if len(valid) == 0 {
		return nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	var columns OverlapSet
	for _, ev := range valid {
		placed := false
		for i := range columns {
			if !Collides(columns[i][len(columns[i])-1], ev) {
				columns[i] = append(columns[i], ev)
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, Column{ev})
		}
	}
	return columns
}

// Len returns the number of events across all columns.
func (s OverlapSet) Len() int {
	n := 0
	for _, c := range s {
		n += len(c)
	}
	return n
}
