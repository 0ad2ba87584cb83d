// Package calendar renders events as iCalendar documents.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"devevents/internal/domain"
)

// ContentType is the media type of Encode's output.
const ContentType = "text/calendar; charset=utf-8"

const (
	productID = "-//devevents//EN"
	uidDomain = "devevents"
	// floatingLayout has no zone suffix: event times are wall-clock at the venue.
	floatingLayout = "20060102T150405"
)

// Encode writes a VCALENDAR holding one VEVENT per event.
func Encode(w io.Writer, events ...*domain.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	for _, e := range events {
		ve, err := toVEvent(e)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, ve)
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e *domain.Event) (*ical.Component, error) {
	start, err := time.Parse(time.DateOnly+" 15:04", e.Date+" "+e.Time)
	if err != nil {
		return nil, fmt.Errorf("event %s has unparseable date/time: %w", e.Slug, err)
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.ID+"@"+uidDomain)
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, e.UpdatedAt.UTC())

	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.Value = start.Format(floatingLayout)
	ve.Props.Set(dtstart)

	if e.Overview != "" {
		ve.Props.SetText(ical.PropDescription, e.Overview)
	}
	if loc := location(e); loc != "" {
		ve.Props.SetText(ical.PropLocation, loc)
	}
	return ve, nil
}

func location(e *domain.Event) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.Venue, e.Location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
