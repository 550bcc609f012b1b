package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"termcal/internal/ics"
	"termcal/internal/model"
)

const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldLocation
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Event Title:",
	"Start Time:",
	"End Time:",
	"Location (optional):",
	"Description (optional):",
}

// eventForm edits the user-facing fields of one event. An empty id means the
// form creates a new event.
type eventForm struct {
	id     string
	inputs [fieldCount]textinput.Model
	focus  int
	err    error
	loc    *time.Location
}

func newEventForm(ev model.Event, loc *time.Location) *eventForm {
	f := &eventForm{id: ev.ID, loc: loc}

	placeholders := [fieldCount]string{
		"Enter event title",
		ics.FormatDateTime(ev.Start),
		ics.FormatDateTime(ev.End),
		"Enter location",
		"Enter description",
	}
	values := [fieldCount]string{
		ev.Title,
		ics.FormatDateTime(ev.Start),
		ics.FormatDateTime(ev.End),
		ev.Location,
		ev.Description,
	}

	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		in.CharLimit = 500
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *eventForm) title() string {
	if f.id == "" {
		return "Create New Event"
	}
	return "Edit Event"
}

func (f *eventForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update routes key handling to the focused input. Navigation and save keys
// are handled by the caller.
func (f *eventForm) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, DefaultKeyMap.PrevField):
			f.setFocus(f.focus - 1)
			return nil
		case key.Matches(km, DefaultKeyMap.NextField):
			f.setFocus(f.focus + 1)
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Event converts the inputs into an event, reporting the first field that
// does not parse and moving focus there.
func (f *eventForm) Event() (model.Event, error) {
	ev := model.Event{
		ID:          f.id,
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Location:    strings.TrimSpace(f.inputs[fieldLocation].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
	}

	if ev.Title == "" {
		f.setFocus(fieldTitle)
		return ev, errors.New("event title is required")
	}

	start, err := ics.ParseDateTime(f.inputs[fieldStart].Value(), f.loc)
	if err != nil {
		f.setFocus(fieldStart)
		return ev, errors.New("invalid start date/time format")
	}
	end, err := ics.ParseDateTime(f.inputs[fieldEnd].Value(), f.loc)
	if err != nil {
		f.setFocus(fieldEnd)
		return ev, errors.New("invalid end date/time format")
	}
	if !start.Before(end) {
		f.setFocus(fieldStart)
		return ev, errors.New("start date/time must be before end date/time")
	}

	ev.Start, ev.End = start, end
	return ev, nil
}

func (f *eventForm) View(st Styles) string {
	var b strings.Builder
	b.WriteString(st.DetailTitle.Render(f.title()))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(st.Label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	if f.err != nil {
		b.WriteString(st.Error.Render("Error: " + f.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(st.Gutter.Render("tab/enter next field • ctrl+s save • esc cancel"))
	return b.String()
}

func textinputBlink() tea.Cmd {
	return textinput.Blink
}
