// Package ics reads and writes the iCalendar file backing the week view and
// converts its VEVENTs into model.Event values.
package ics

import (
	"bytes"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// ParseICS parses an ICS payload into normalized events.
//
//   - Start and End are converted into loc (time.Local if nil).
//   - VEVENTs without a UID are logged and skipped.
//   - A missing or unparsable DTSTART/DTEND leaves the zero time; the layout
//     engine drops such events later.
//   - RRULE is ignored: only the first instance of a recurring event shows.
func ParseICS(body []byte, loc *time.Location) ([]model.Event, error) {
	cal, err := parseCalendar(body)
	if err != nil {
		return nil, err
	}
	return eventsFromCalendar(cal, loc), nil
}

func parseCalendar(body []byte) (*ical.Calendar, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, err
	}
	return cal, nil
}

func eventsFromCalendar(cal *ical.Calendar, loc *time.Location) []model.Event {
	if loc == nil {
		loc = time.Local
	}

	events := make([]model.Event, 0)
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve, loc)
		if err != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Error("ics vevent skipped", err)
			continue
		}
		events = append(events, ev)
	}

	appLog.Debug("ics parse completed", "event_count", len(events))
	return events
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (model.Event, error) {
	var out model.Event

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.ID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	if start, err := ve.GetStartAt(); err == nil {
		out.Start = start.In(loc)
	} else {
		appLog.Debug("ics vevent without usable DTSTART", "uid", out.ID, "err", err)
	}
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end.In(loc)
	} else {
		appLog.Debug("ics vevent without usable DTEND", "uid", out.ID, "err", err)
	}

	return out, nil
}
