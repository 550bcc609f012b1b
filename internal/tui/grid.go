package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"termcal/internal/layout"
	"termcal/internal/model"
)

const (
	gutterWidth = 6 // "23:00 "
	minDayWidth = 8
)

// cell is one row of a day column before styling.
type cell struct {
	text     string
	event    bool
	selected bool
}

// dayWidth splits the available width between the seven day columns.
func dayWidth(total int) int {
	w := (total - gutterWidth) / 7
	if w < minDayWidth {
		w = minDayWidth
	}
	return w
}

// dayCells lays the visible column of a day out on rows. Blocks that run
// past midnight are clipped to the grid.
func dayCells(day layout.Day, rows int, selected int) []cell {
	cells := make([]cell, rows)
	col := day.Visible()

	row := 0
	for i, ev := range col {
		row += day.Paddings[i]
		for r := 0; r < day.Heights[i]; r++ {
			if row+r >= rows {
				break
			}
			c := cell{event: true, selected: i == selected}
			switch r {
			case 0:
				c.text = ev.Title
			case 1:
				c.text = ev.Start.Format("15:04") + "-" + ev.End.Format("15:04")
			case 2:
				c.text = ev.Location
			}
			cells[row+r] = c
		}
		row += day.Heights[i]
	}
	return cells
}

// dayHeader renders the two header lines of a day column. Days with more
// than one overlap page show the visible page, e.g. "Monday 2/3".
func dayHeader(day layout.Day) (string, string) {
	name := model.WeekdayNames[day.Weekday]
	if day.Pages() > 1 {
		name = fmt.Sprintf("%s %d/%d", name, day.Active+1, day.Pages())
	}
	date := fmt.Sprintf("%d.%d.%d", day.Date.Day(), int(day.Date.Month()), day.Date.Year())
	return name, date
}

// renderHeader renders the fixed header above the scrollable grid.
func renderHeader(wk layout.Week, width, selectedDay int, st Styles) string {
	w := dayWidth(width)
	top := []string{st.Gutter.Width(gutterWidth).Render("time")}
	bottom := []string{st.Gutter.Width(gutterWidth).Render("")}

	for _, day := range wk.Days {
		name, date := dayHeader(day)
		style := st.Header
		if day.Weekday == selectedDay {
			style = st.HeaderSel
		}
		top = append(top, style.Width(w).Render(ansi.Truncate(name, w-1, "…")))
		bottom = append(bottom, style.Width(w).Render(ansi.Truncate(date, w-1, "…")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, top...) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, bottom...)
}

// renderGrid renders 24 hours of the week, one line per row.
func renderGrid(wk layout.Week, width, selectedDay, selectedEvent int, st Styles) string {
	w := dayWidth(width)
	rows := 24 * wk.HourHeight

	columns := make([][]cell, 7)
	for i, day := range wk.Days {
		sel := -1
		if i == selectedDay {
			sel = selectedEvent
		}
		columns[i] = dayCells(day, rows, sel)
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		label := ""
		if r%wk.HourHeight == 0 {
			label = fmt.Sprintf("%d:00", r/wk.HourHeight)
		}
		b.WriteString(st.Gutter.Width(gutterWidth).Render(label))

		for d := 0; d < 7; d++ {
			c := columns[d][r]
			text := ansi.Truncate(c.text, w-1, "…")
			style := st.Empty
			switch {
			case c.selected:
				style = st.EventSel
			case c.event:
				style = st.Event
			case r%wk.HourHeight == 0:
				style = st.HourLine
				text = strings.Repeat("·", w-1)
			}
			b.WriteString(style.Width(w - 1).Render(text))
			b.WriteString(" ")
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
