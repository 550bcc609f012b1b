package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"termcal/internal/layout"
	"termcal/internal/model"
)

var monday = time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC)

type fakeCalendar struct {
	events  []model.Event
	deleted []string
	saved   []model.Event
	reloads int
	failDel bool
}

func (f *fakeCalendar) Events() []model.Event { return append([]model.Event(nil), f.events...) }

func (f *fakeCalendar) Upsert(ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = "new-1"
	}
	f.saved = append(f.saved, ev)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeCalendar) Delete(id string) error {
	if f.failDel {
		return errors.New("read-only")
	}
	for i, ev := range f.events {
		if ev.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCalendar) Reload() error {
	f.reloads++
	return nil
}

func at(day, hour, minute int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func sampleCalendar() *fakeCalendar {
	return &fakeCalendar{events: []model.Event{
		{ID: "a", Title: "Lecture", Start: at(0, 9, 0), End: at(0, 11, 0)},
		{ID: "b", Title: "Call", Start: at(0, 10, 0), End: at(0, 10, 30)},
		{ID: "c", Title: "Lunch", Start: at(0, 12, 0), End: at(0, 13, 0)},
		{ID: "d", Title: "Seminar", Start: at(1, 14, 0), End: at(1, 15, 0)},
	}}
}

func newTestModel(cal Calendar) *Model {
	m := New(cal, layout.NewCursor(), Options{
		WeekStart:         monday,
		HourHeight:        4,
		InitialScrollHour: 8,
		Location:          time.UTC,
		Now:               func() time.Time { return at(0, 10, 0) },
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func TestOverlapPaging(t *testing.T) {
	m := newTestModel(sampleCalendar())

	if day, _ := m.Selected(); day != 0 {
		t.Fatalf("selected day = %d, want today's weekday 0", day)
	}
	if pages := m.Week().Days[0].Pages(); pages != 2 {
		t.Fatalf("monday pages = %d, want 2", pages)
	}

	press(m, keyTab)
	if got := m.Week().Days[0].Active; got != 1 {
		t.Errorf("after tab active = %d, want 1", got)
	}
	press(m, keyTab)
	if got := m.Week().Days[0].Active; got != 0 {
		t.Errorf("tab should wrap, active = %d", got)
	}
	press(m, keyShiftTab)
	if got := m.Week().Days[0].Active; got != 1 {
		t.Errorf("shift+tab from 0 should wrap to 1, got %d", got)
	}
	if !strings.Contains(m.View(), "Monday 2/2") {
		t.Errorf("header should show the visible page")
	}
}

func TestPagingIgnoredForSinglePageDays(t *testing.T) {
	m := newTestModel(sampleCalendar())

	press(m, keyRight, keyTab, keyShiftTab) // Tuesday, one page
	if got := m.Week().Days[1].Active; got != 0 {
		t.Errorf("active = %d, want 0", got)
	}

	press(m, keyRight, keyTab) // Wednesday, no events
	if got := m.Week().Days[2].Pages(); got != 0 {
		t.Errorf("wednesday pages = %d", got)
	}
}

func TestWeekChangeResetsCursor(t *testing.T) {
	m := newTestModel(sampleCalendar())
	press(m, keyTab)

	press(m, runes("n"))
	if !m.Week().Start.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("week start = %v", m.Week().Start)
	}
	if m.Week().Days[0].Pages() != 0 {
		t.Errorf("next week should be empty")
	}

	press(m, runes("p"))
	if got := m.Week().Days[0].Active; got != 0 {
		t.Errorf("cursor not reset on week change, active = %d", got)
	}
}

func TestDetailAndDelete(t *testing.T) {
	cal := sampleCalendar()
	m := newTestModel(cal)

	press(m, keyDown) // Lunch, second event of column 0
	press(m, keyEnter)
	if m.mode != modeDetail {
		t.Fatalf("expected detail mode")
	}
	if v := m.View(); !strings.Contains(v, "Lunch") || !strings.Contains(v, "Monday, 16.09.2024 12:00") {
		t.Errorf("detail view missing event data: %q", v)
	}

	press(m, runes("d"))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirmation")
	}
	press(m, runes("y"))
	if len(cal.deleted) != 1 || cal.deleted[0] != "c" {
		t.Errorf("deleted = %v, want [c]", cal.deleted)
	}
	if cols := m.Week().Days[0].Columns; cols.Len() != 2 {
		t.Errorf("layout not refreshed after delete: %d events", cols.Len())
	}
}

func TestDeleteCancelledAndFailure(t *testing.T) {
	cal := sampleCalendar()
	m := newTestModel(cal)

	press(m, runes("d"), keyEsc)
	if len(cal.deleted) != 0 || m.mode != modeWeek {
		t.Errorf("escape should cancel delete")
	}

	cal.failDel = true
	press(m, runes("d"), runes("y"))
	if !m.statusErr || !strings.Contains(m.status, "read-only") {
		t.Errorf("expected error status, got %q", m.status)
	}
}

func TestNewEventForm(t *testing.T) {
	cal := sampleCalendar()
	m := newTestModel(cal)

	press(m, keyRight, keyRight, runes("a")) // Wednesday
	if m.mode != modeForm {
		t.Fatalf("expected form mode")
	}

	// Saving without a title keeps the form open.
	press(m, keyCtrlS)
	if m.mode != modeForm || m.form.err == nil {
		t.Fatalf("expected validation error")
	}

	press(m, runes("Standup"), keyCtrlS)
	if m.mode != modeWeek {
		t.Fatalf("form should close after save, err = %v", m.form.err)
	}
	if len(cal.saved) != 1 {
		t.Fatalf("saved = %v", cal.saved)
	}
	got := cal.saved[0]
	if got.Title != "Standup" || !got.Start.Equal(at(2, 8, 0)) || !got.End.Equal(at(2, 9, 0)) {
		t.Errorf("unexpected saved event: %+v", got)
	}
	if m.Week().Days[2].Pages() != 1 {
		t.Errorf("new event not in layout")
	}
}

func TestEditFormRejectsReversedTimes(t *testing.T) {
	cal := sampleCalendar()
	m := newTestModel(cal)

	press(m, runes("e"))
	if m.mode != modeForm || m.form.id != "a" {
		t.Fatalf("expected edit form for event a")
	}
	if v := m.form.inputs[fieldStart].Value(); v != "09:00 16.09.2024" {
		t.Errorf("start prefill = %q", v)
	}

	m.form.inputs[fieldEnd].SetValue("08:00 16.09.2024")
	press(m, keyCtrlS)
	if m.form == nil || m.form.err == nil || !strings.Contains(m.form.err.Error(), "before") {
		t.Fatalf("expected ordering error")
	}

	press(m, keyEsc)
	if m.mode != modeWeek || len(cal.saved) != 0 {
		t.Errorf("escape should cancel without saving")
	}
}

func TestReload(t *testing.T) {
	cal := sampleCalendar()
	m := newTestModel(cal)

	press(m, runes("r"))
	m.Update(reloadMsg{})
	if cal.reloads != 2 {
		t.Errorf("reloads = %d, want 2", cal.reloads)
	}
}

func TestRenderGridPlacesEvents(t *testing.T) {
	cal := sampleCalendar()
	wk := layout.BuildWeek(monday, cal.Events(), layout.NewCursor(), 4)

	cells := dayCells(wk.Days[0], 96, -1)
	if cells[35].event || !cells[36].event || cells[36].text != "Lecture" {
		t.Errorf("lecture should start at row 36")
	}
	if cells[37].text != "09:00-11:00" {
		t.Errorf("second row should show the time range, got %q", cells[37].text)
	}
	if !cells[43].event || cells[44].event {
		t.Errorf("lecture should span rows 36..43")
	}
	if !cells[48].event || cells[48].text != "Lunch" {
		t.Errorf("lunch should start at row 48")
	}

	grid := renderGrid(wk, 120, 0, 0, DefaultStyles())
	if lines := strings.Count(grid, "\n") + 1; lines != 96 {
		t.Errorf("grid has %d lines, want 96", lines)
	}
}
