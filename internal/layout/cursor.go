package layout

import "fmt"

// Cursor tracks, per weekday, which column of an overlap set is on screen.
//
// It lives as long as the view session and is not persisted. It is not safe
// for concurrent use; the UI mutates it only from key handling.
type Cursor struct {
	index [7]int
}

// NewCursor returns a cursor with every weekday on column 0.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Advance moves weekday to the next column, wrapping to 0 after the last.
// count must be positive.
func (c *Cursor) Advance(weekday, count int) {
	checkNav(weekday, count)
	c.index[weekday] = floorMod(c.index[weekday]+1, count)
}

// Retreat moves weekday to the previous column, wrapping from 0 to count-1.
// count must be positive.
func (c *Cursor) Retreat(weekday, count int) {
	checkNav(weekday, count)
	c.index[weekday] = floorMod(c.index[weekday]-1, count)
}

// Visible returns the column index currently shown for weekday.
func (c *Cursor) Visible(weekday int) int {
	checkWeekday(weekday)
	return c.index[weekday]
}

// Reset puts every weekday back on column 0.
func (c *Cursor) Reset() {
	c.index = [7]int{}
}

func floorMod(a, n int) int {
	return ((a % n) + n) % n
}

// Navigation with a non-positive count is a caller bug: the UI must not
// offer paging for days without columns.
func checkNav(weekday, count int) {
	checkWeekday(weekday)
	if count <= 0 {
		panic(fmt.Sprintf("layout: cursor navigation with column count %d", count))
	}
}

func checkWeekday(weekday int) {
	if weekday < 0 || weekday > 6 {
		panic(fmt.Sprintf("layout: weekday %d out of range", weekday))
	}
}
