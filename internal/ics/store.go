package ics

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"termcal/internal/fileutil"
	appLog "termcal/internal/log"
	"termcal/internal/model"
)

const maxTitleLen = 500

var (
	// ErrEventNotFound is returned when no VEVENT carries the requested UID.
	ErrEventNotFound = errors.New("event not found in calendar")
	// ErrInvalidEvent wraps every validation failure of Upsert.
	ErrInvalidEvent = errors.New("invalid event")
)

// Store owns the parsed calendar file and writes edits back to it.
//
// It keeps the full *ical.Calendar so that components and properties it
// does not understand (VTIMEZONE, VTODO, X- properties) survive a save.
// A Store is not safe for concurrent use.
type Store struct {
	path string
	loc  *time.Location
	now  func() time.Time

	cal    *ical.Calendar
	events []model.Event
}

// Open reads and parses the calendar file at path. Event times are
// converted into loc.
func Open(path string, loc *time.Location) (*Store, error) {
	if path == "" {
		return nil, errors.New("calendar path is empty")
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Store{path: path, loc: loc, now: time.Now}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the calendar file path.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the calendar file from disk, replacing in-memory state.
func (s *Store) Reload() error {
	body, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	cal, err := parseCalendar(body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.cal = cal
	s.events = eventsFromCalendar(cal, s.loc)
	appLog.Info("calendar loaded", "path", s.path, "event_count", len(s.events))
	return nil
}

// Events returns a snapshot of the calendar's events.
func (s *Store) Events() []model.Event {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Event looks up a single event by UID.
func (s *Store) Event(id string) (model.Event, bool) {
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.Event{}, false
}

// Validate checks the fields a user can edit.
//
// Behavior:
//   - Title is required (after trimming) and at most 500 characters.
//   - Start and End must both be set.
//   - Start must be strictly before End.
func Validate(ev model.Event) error {
	title := strings.TrimSpace(ev.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: event title is required", ErrInvalidEvent)
	case utf8.RuneCountInString(title) > maxTitleLen:
		return fmt.Errorf("%w: event title is longer than %d characters", ErrInvalidEvent, maxTitleLen)
	case ev.Start.IsZero():
		return fmt.Errorf("%w: start date/time is required", ErrInvalidEvent)
	case ev.End.IsZero():
		return fmt.Errorf("%w: end date/time is required", ErrInvalidEvent)
	case !ev.Start.Before(ev.End):
		return fmt.Errorf("%w: start date/time must be before end date/time", ErrInvalidEvent)
	}
	return nil
}

// Upsert creates or updates an event and saves the file.
//
// An empty ID creates a new VEVENT with a random UUID. A known ID updates
// that VEVENT in place, keeping its UID and any properties not edited here.
// An unknown non-empty ID is created with that UID. The stored event is
// returned.
func (s *Store) Upsert(ev model.Event) (model.Event, error) {
	if err := Validate(ev); err != nil {
		return model.Event{}, err
	}

	ev.Title = strings.TrimSpace(ev.Title)
	ev.Location = strings.TrimSpace(ev.Location)
	ev.Description = strings.TrimSpace(ev.Description)

	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	snapshot := s.cal.Serialize()
	ve := s.findVEvent(ev.ID)
	if ve == nil {
		ve = s.cal.AddEvent(ev.ID)
	}
	ve.SetDtStampTime(s.now().UTC())
	ve.SetSummary(ev.Title)
	ve.SetStartAt(ev.Start)
	ve.SetEndAt(ev.End)
	ve.SetLocation(ev.Location)
	ve.SetDescription(ev.Description)

	if err := s.Save(); err != nil {
		s.rollback(snapshot)
		return model.Event{}, err
	}
	s.events = eventsFromCalendar(s.cal, s.loc)

	stored, _ := s.Event(ev.ID)
	appLog.Info("event saved", "uid", ev.ID)
	return stored, nil
}

// Delete removes the VEVENT with the given UID and saves the file.
func (s *Store) Delete(id string) error {
	kept := make([]ical.Component, 0, len(s.cal.Components))
	removed := false
	for _, comp := range s.cal.Components {
		if ve, ok := comp.(*ical.VEvent); ok && ve.Id() == id {
			removed = true
			continue
		}
		kept = append(kept, comp)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}

	snapshot := s.cal.Serialize()
	s.cal.Components = kept
	if err := s.Save(); err != nil {
		s.rollback(snapshot)
		return err
	}
	s.events = eventsFromCalendar(s.cal, s.loc)
	appLog.Info("event deleted", "uid", id)
	return nil
}

// Save writes the calendar back to its file atomically.
func (s *Store) Save() error {
	if err := fileutil.WriteAtomic(s.path, []byte(s.cal.Serialize()), ".termcal-*.ics.tmp"); err != nil {
		appLog.Error("calendar save failed", err, "path", s.path)
		return fmt.Errorf("save calendar: %w", err)
	}
	return nil
}

// rollback restores the in-memory calendar to its state before a failed save.
func (s *Store) rollback(snapshot string) {
	cal, err := ical.ParseCalendar(strings.NewReader(snapshot))
	if err != nil {
		appLog.Error("calendar rollback failed, reloading from disk", err, "path", s.path)
		if err := s.Reload(); err != nil {
			appLog.Error("calendar reload failed", err, "path", s.path)
		}
		return
	}
	s.cal = cal
	s.events = eventsFromCalendar(cal, s.loc)
}

func (s *Store) findVEvent(id string) *ical.VEvent {
	for _, ve := range s.cal.Events() {
		if ve.Id() == id {
			return ve
		}
	}
	return nil
}
