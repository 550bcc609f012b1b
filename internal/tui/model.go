// Package tui is the Bubble Tea front end of the week view. It owns no
// layout logic: every render runs layout.BuildWeek on the current events
// and the session's page cursor.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"termcal/internal/layout"
	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// Calendar is the event source and sink behind the view.
type Calendar interface {
	Events() []model.Event
	Upsert(model.Event) (model.Event, error)
	Delete(id string) error
	Reload() error
}

type mode int

const (
	modeWeek mode = iota
	modeDetail
	modeForm
	modeConfirmDelete
)

// headerLines is the height of the fixed day header above the grid.
const headerLines = 2

// Options configures a Model.
type Options struct {
	WeekStart         time.Time
	HourHeight        int
	InitialScrollHour int
	Location          *time.Location
	// Reload, if set, re-reads the calendar at each activation time.
	Reload cron.Schedule
	// Now defaults to time.Now.
	Now func() time.Time
}

// reloadMsg fires when the reload schedule is due.
type reloadMsg struct{}

// Model is the Bubble Tea model of the week view.
type Model struct {
	cal    Calendar
	cursor *layout.Cursor
	opts   Options
	keys   KeyMap
	styles Styles
	help   help.Model

	weekStart time.Time
	week      layout.Week

	mode          mode
	selectedDay   int
	selectedEvent int
	form          *eventForm

	vp     viewport.Model
	ready  bool
	width  int
	height int

	status    string
	statusErr bool
}

// New builds the view for cal. The cursor is owned by the caller so that
// page state follows the session rather than a single model value.
func New(cal Calendar, cursor *layout.Cursor, opts Options) *Model {
	if opts.HourHeight <= 0 {
		opts.HourHeight = layout.DefaultHourHeight
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if cursor == nil {
		cursor = layout.NewCursor()
	}

	m := &Model{
		cal:       cal,
		cursor:    cursor,
		opts:      opts,
		keys:      DefaultKeyMap,
		styles:    DefaultStyles(),
		help:      help.New(),
		weekStart: opts.WeekStart,
	}
	if today := opts.Now().In(opts.Location); !today.Before(m.weekStart) && today.Before(m.weekStart.AddDate(0, 0, 7)) {
		m.selectedDay = model.WeekdayOf(today)
	}
	m.relayout()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.scheduleReload()
}

func (m *Model) scheduleReload() tea.Cmd {
	if m.opts.Reload == nil {
		return nil
	}
	now := m.opts.Now()
	next := m.opts.Reload.Next(now)
	if next.IsZero() {
		return nil
	}
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg { return reloadMsg{} })
}

// relayout recomputes the week and refreshes the grid content.
func (m *Model) relayout() {
	m.week = layout.BuildWeek(m.weekStart, m.cal.Events(), m.cursor, m.opts.HourHeight)
	if n := len(m.week.Days[m.selectedDay].Visible()); m.selectedEvent >= n {
		m.selectedEvent = max(n-1, 0)
	}
	if m.ready {
		m.vp.SetContent(renderGrid(m.week, m.width, m.selectedDay, m.selectedEvent, m.styles))
	}
}

func (m *Model) setStatus(msg string, err error) {
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", msg, err)
		m.statusErr = true
		return
	}
	m.status = msg
	m.statusErr = false
}

// selected returns the highlighted event of the selected day, if any.
func (m *Model) selected() (model.Event, bool) {
	col := m.week.Days[m.selectedDay].Visible()
	if m.selectedEvent < 0 || m.selectedEvent >= len(col) {
		return model.Event{}, false
	}
	return col[m.selectedEvent], true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := max(msg.Height-headerLines-2, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
			m.vp.SetContent(renderGrid(m.week, m.width, m.selectedDay, m.selectedEvent, m.styles))
			m.vp.SetYOffset(m.opts.InitialScrollHour * m.opts.HourHeight)
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
			m.relayout()
		}
		return m, nil

	case reloadMsg:
		if err := m.cal.Reload(); err != nil {
			appLog.Error("scheduled reload failed", err)
			m.setStatus("Reload failed", err)
		}
		m.relayout()
		return m, m.scheduleReload()

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m, m.updateForm(msg)
		case modeConfirmDelete:
			return m, m.updateConfirm(msg)
		case modeDetail:
			return m, m.updateDetail(msg)
		default:
			return m, m.updateWeek(msg)
		}
	}

	if m.mode == modeForm && m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *Model) updateWeek(msg tea.KeyMsg) tea.Cmd {
	day := m.week.Days[m.selectedDay]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.NextWeek):
		m.changeWeek(7)
	case key.Matches(msg, m.keys.PrevWeek):
		m.changeWeek(-7)

	case key.Matches(msg, m.keys.NextDay):
		m.selectedDay = min(m.selectedDay+1, 6)
		m.selectedEvent = 0
	case key.Matches(msg, m.keys.PrevDay):
		m.selectedDay = max(m.selectedDay-1, 0)
		m.selectedEvent = 0

	case key.Matches(msg, m.keys.NextPage):
		// Paging is only offered for days that actually overlap.
		if day.Pages() > 1 {
			m.cursor.Advance(m.selectedDay, day.Pages())
			m.selectedEvent = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if day.Pages() > 1 {
			m.cursor.Retreat(m.selectedDay, day.Pages())
			m.selectedEvent = 0
		}

	case key.Matches(msg, m.keys.Down):
		if n := len(day.Visible()); m.selectedEvent < n-1 {
			m.selectedEvent++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedEvent > 0 {
			m.selectedEvent--
		}

	case key.Matches(msg, m.keys.ScrollDown):
		m.vp.HalfViewDown()
		return nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.vp.HalfViewUp()
		return nil

	case key.Matches(msg, m.keys.Open):
		if _, ok := m.selected(); ok {
			m.mode = modeDetail
		}
	case key.Matches(msg, m.keys.New):
		m.openForm(model.Event{})
		return textinputBlink()
	case key.Matches(msg, m.keys.Edit):
		if ev, ok := m.selected(); ok {
			m.openForm(ev)
			return textinputBlink()
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Reload):
		if err := m.cal.Reload(); err != nil {
			m.setStatus("Reload failed", err)
		} else {
			m.setStatus("Calendar reloaded", nil)
		}
	default:
		return nil
	}

	m.relayout()
	return nil
}

func (m *Model) changeWeek(days int) {
	m.weekStart = m.weekStart.AddDate(0, 0, days)
	m.cursor.Reset()
	m.selectedEvent = 0
	m.status = ""
}

// openForm starts the event form. A zero event becomes a new event from
// 8:00 to 9:00 on the selected day.
func (m *Model) openForm(ev model.Event) {
	if ev.ID == "" && ev.Start.IsZero() {
		date := m.week.Days[m.selectedDay].Date
		ev.Start = time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, m.opts.Location)
		ev.End = ev.Start.Add(time.Hour)
	}
	m.form = newEventForm(ev, m.opts.Location)
	m.mode = modeForm
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.form = nil
		m.mode = modeWeek
		m.setStatus("Event editing cancelled", nil)
		return nil
	case key.Matches(msg, m.keys.Save):
		ev, err := m.form.Event()
		if err != nil {
			m.form.err = err
			return nil
		}
		saved, err := m.cal.Upsert(ev)
		if err != nil {
			appLog.Error("event save failed", err, "uid", ev.ID)
			m.form.err = err
			return nil
		}
		m.form = nil
		m.mode = modeWeek
		m.setStatus(fmt.Sprintf("Event saved: %s", saved.Title), nil)
		m.relayout()
		return nil
	}
	return m.form.Update(msg)
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.mode = modeWeek
	case key.Matches(msg, m.keys.Edit):
		if ev, ok := m.selected(); ok {
			m.openForm(ev)
			return textinputBlink()
		}
	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		ev, ok := m.selected()
		m.mode = modeWeek
		if !ok {
			return nil
		}
		if err := m.cal.Delete(ev.ID); err != nil {
			m.setStatus("Delete failed", err)
		} else {
			m.setStatus(fmt.Sprintf("Event deleted: %s", ev.Title), nil)
		}
		m.relayout()
	case key.Matches(msg, m.keys.Back), msg.String() == "n", key.Matches(msg, m.keys.Quit):
		m.mode = modeWeek
	}
	return nil
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	switch m.mode {
	case modeForm:
		return m.styles.Popup.Render(m.form.View(m.styles))
	case modeDetail:
		return m.styles.Popup.Render(m.detailView())
	case modeConfirmDelete:
		ev, _ := m.selected()
		return m.styles.Popup.Render(fmt.Sprintf("Do you really want to delete %q?\n\n%s",
			ev.Title, m.styles.Gutter.Render("y delete • n/esc cancel")))
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		footer = style.Render(m.status) + "  " + footer
	}

	return renderHeader(m.week, m.width, m.selectedDay, m.styles) + "\n" +
		m.vp.View() + "\n" + footer
}

func (m *Model) detailView() string {
	ev, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(ev.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Start:"), formatWhen(ev.Start))
	fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("End:"), formatWhen(ev.End))
	if ev.Location != "" {
		fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Location:"), ev.Location)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, "%s %s\n", m.styles.Label.Render("Description:"), ev.Description)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Gutter.Render("e edit • d delete • esc close"))
	return b.String()
}

func formatWhen(t time.Time) string {
	return model.WeekdayNames[model.WeekdayOf(t)] + ", " + t.Format("02.01.2006 15:04")
}

// Selected exposes the highlighted day and event index.
func (m *Model) Selected() (day, event int) {
	return m.selectedDay, m.selectedEvent
}

// Week returns the last computed layout.
func (m *Model) Week() layout.Week {
	return m.week
}

// ErrNoCalendar is returned by Run when no calendar is given.
var ErrNoCalendar = errors.New("tui: no calendar")

// Run starts the program on the alternate screen and blocks until it exits.
func Run(cal Calendar, cursor *layout.Cursor, opts Options) error {
	if cal == nil {
		return ErrNoCalendar
	}
	p := tea.NewProgram(New(cal, cursor, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
