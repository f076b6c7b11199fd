// Package timewindow computes UTC instants bounding whole civil days in a named
// IANA timezone, and formats instants for display in that zone.
//
// Every operation is a pure function of its inputs plus the host tz database.
// Windows are built by projecting an instant into the zone's local calendar
// fields, manipulating the fields, then projecting each bound back to UTC with
// the offset valid at that bound's own moment. Nothing here logs, retries, or
// substitutes defaults; unresolvable or unsupported zones surface as errors
package timewindow

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Callers branch with errors.Is; all three are input errors,
// not transient conditions
var (
	// ErrInvalidTimeZone means the zone id does not resolve against the host tz database
	ErrInvalidTimeZone = errors.New("timewindow: invalid time zone")

	// ErrUnsupportedZoneLabel means the zone resolves but no abbreviation pair is known for it
	ErrUnsupportedZoneLabel = errors.New("timewindow: unsupported zone label")

	// ErrInvalidRange means a negative day span was requested
	ErrInvalidRange = errors.New("timewindow: invalid range")
)

// Window bounds one or more whole civil days as absolute UTC instants.
// Start and End land exactly on local 00:00:00.000 and 23:59:59.999 when
// projected back into Zone; Label is the zone abbreviation valid at Start
type Window struct {
	Start time.Time
	End   time.Time
	Zone  string
	Label string
}

// Style selects the rendering shape of FormatLocalTime
type Style int

// Rendering styles. Time styles use a 12-hour clock with AM/PM; none embed a
// zone abbreviation (callers append Label themselves, once)
const (
	StyleDateOnly Style = iota
	StyleTimeOnly
	StyleDateAndTime
)

// endOfDayNanos is 23:59:59.999 local, millisecond precision
const endOfDayNanos = int(999 * time.Millisecond)

// loadZone resolves an IANA id against the host tz database.
// The empty string resolves to UTC under time.LoadLocation, which would be a
// silent default, so it is rejected here
func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, zone)
	}
	return loc, nil
}

// IsDaylightSaving reports whether t falls inside zone's daylight-saving period.
//
// The rule compares zone's UTC offset at t against the offsets observed at
// local Jan 1 and Jul 1 of t's calendar year. When the two reference offsets
// differ, the larger (further east) one is the daylight offset and t is in DST
// iff t's own offset equals it. Zones whose January and July offsets are equal
// never observe DST under this rule. Southern-hemisphere zones resolve
// correctly because the comparison uses whichever reference differs rather
// than assuming a hemisphere. Zones with more than one transition pair per
// year are outside the rule's scope
func IsDaylightSaving(t time.Time, zone string) (bool, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return false, err
	}
	jan, jul := referenceOffsets(t, loc)
	if jan == jul {
		return false, nil
	}
	_, off := t.In(loc).Zone()
	return off == max(jan, jul), nil
}

// referenceOffsets returns zone's UTC offsets in seconds east at local
// Jan 1 00:00 and Jul 1 00:00 of t's calendar year
func referenceOffsets(t time.Time, loc *time.Location) (jan, jul int) {
	year := t.In(loc).Year()
	_, jan = time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul = time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return jan, jul
}

// Label returns zone's standard or daylight abbreviation (eg "EST"/"EDT")
// according to IsDaylightSaving(t, zone). Zones without a known abbreviation
// pair fail with ErrUnsupportedZoneLabel; no generic placeholder is returned
func Label(t time.Time, zone string) (string, error) {
	dst, err := IsDaylightSaving(t, zone)
	if err != nil {
		return "", err
	}
	ab, ok := lookupAbbrev(zone)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedZoneLabel, zone)
	}
	if dst {
		return ab.Daylight, nil
	}
	return ab.Standard, nil
}

// DayWindow returns the whole civil day "now plus dayOffset days" in zone.
//
// now is projected into zone's local date, dayOffset is added with month and
// year rollover normalized, and the bounds are local 00:00:00.000 and
// 23:59:59.999 of the resulting date. Each bound is projected to UTC with the
// offset valid at its own moment, so a window that crosses a DST transition
// spans 23 or 25 UTC hours while staying exactly one local calendar day
func DayWindow(zone string, dayOffset int, now time.Time) (Window, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return Window{}, err
	}
	y, m, d := now.In(loc).Date()
	start := time.Date(y, m, d+dayOffset, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+dayOffset, 23, 59, 59, endOfDayNanos, loc)

	label, err := Label(start, zone)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start.UTC(), End: end.UTC(), Zone: zone, Label: label}, nil
}

// RangeWindow returns the span from local midnight of now's civil date through
// local 23:59:59.999 of the civil date days days later. days == 0 degenerates
// to DayWindow(zone, 0, now); days < 0 fails with ErrInvalidRange rather than
// producing an inverted window. Label is taken at Start
func RangeWindow(zone string, days int, now time.Time) (Window, error) {
	if days < 0 {
		return Window{}, fmt.Errorf("%w: %d days", ErrInvalidRange, days)
	}
	first, err := DayWindow(zone, 0, now)
	if err != nil {
		return Window{}, err
	}
	if days == 0 {
		return first, nil
	}
	last, err := DayWindow(zone, days, now)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: first.Start, End: last.End, Zone: zone, Label: first.Label}, nil
}

// FormatLocalTime renders t projected into zone's local fields.
// Hours are not zero-padded, minutes always are ("2:05 PM", never "02:05 PM").
// No zone abbreviation is appended; callers that want one append Label
func FormatLocalTime(t time.Time, zone string, style Style) (string, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return "", err
	}
	lt := t.In(loc)
	switch style {
	case StyleDateOnly:
		return lt.Format("Monday, January 2, 2006"), nil
	case StyleTimeOnly:
		return lt.Format("3:04 PM"), nil
	case StyleDateAndTime:
		return lt.Format("Monday, January 2, 2006 at 3:04 PM"), nil
	default:
		return "", fmt.Errorf("timewindow: unknown style %d", int(style))
	}
}
