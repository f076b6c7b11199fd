package timewindow

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func mustWindow(t *testing.T, w Window, err error) Window {
	t.Helper()
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if w.End.Before(w.Start) {
		t.Fatalf("window end %v before start %v", w.End, w.Start)
	}
	return w
}

func TestDayWindow_EasternWinter(t *testing.T) {
	now := mustParse(t, "2025-01-15T12:00:00Z")
	w := mustWindow(t, DayWindow("America/New_York", 0, now))

	if want := mustParse(t, "2025-01-15T05:00:00.000Z"); !w.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", w.Start, want)
	}
	if want := mustParse(t, "2025-01-16T04:59:59.999Z"); !w.End.Equal(want) {
		t.Fatalf("end = %v, want %v", w.End, want)
	}
	if w.Label != "EST" {
		t.Fatalf("label = %q, want EST", w.Label)
	}
}

func TestDayWindow_EasternSummer(t *testing.T) {
	now := mustParse(t, "2025-07-15T12:00:00Z")
	w := mustWindow(t, DayWindow("America/New_York", 0, now))

	if want := mustParse(t, "2025-07-15T04:00:00.000Z"); !w.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", w.Start, want)
	}
	if want := mustParse(t, "2025-07-16T03:59:59.999Z"); !w.End.Equal(want) {
		t.Fatalf("end = %v, want %v", w.End, want)
	}
	if w.Label != "EDT" {
		t.Fatalf("label = %q, want EDT", w.Label)
	}
}

// Start and End must project back onto the same civil date at exactly
// 00:00:00.000 and 23:59:59.999, regardless of zone or reference instant
func TestDayWindow_LocalBounds(t *testing.T) {
	tests := []struct {
		name string
		zone string
		now  string
		off  int
	}{
		{"new york midday", "America/New_York", "2025-01-15T12:00:00Z", 0},
		{"new york utc date ahead of local", "America/New_York", "2025-03-01T02:30:00Z", 0},
		{"london", "Europe/London", "2025-06-10T09:00:00Z", 0},
		{"sydney local date ahead of utc", "Australia/Sydney", "2025-01-14T20:00:00Z", 0},
		{"phoenix no dst", "America/Phoenix", "2025-07-04T23:59:00Z", 0},
		{"utc", "UTC", "2025-02-28T00:00:00Z", 0},
		{"offset forward", "America/New_York", "2025-01-15T12:00:00Z", 10},
		{"offset backward", "America/Chicago", "2025-07-15T12:00:00Z", -10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			w := mustWindow(t, DayWindow(tc.zone, tc.off, mustParse(t, tc.now)))

			loc, err := time.LoadLocation(tc.zone)
			if err != nil {
				t.Fatalf("load %q: %v", tc.zone, err)
			}
			ls, le := w.Start.In(loc), w.End.In(loc)

			sy, sm, sd := ls.Date()
			ey, em, ed := le.Date()
			if sy != ey || sm != em || sd != ed {
				t.Fatalf("window spans dates %v .. %v", ls, le)
			}
			if ls.Hour() != 0 || ls.Minute() != 0 || ls.Second() != 0 || ls.Nanosecond() != 0 {
				t.Fatalf("start not local midnight: %v", ls)
			}
			if le.Hour() != 23 || le.Minute() != 59 || le.Second() != 59 || le.Nanosecond() != endOfDayNanos {
				t.Fatalf("end not local 23:59:59.999: %v", le)
			}
		})
	}
}

// A window landing on a transition day keeps one local calendar day but spans
// 23 or 25 UTC hours, and the label follows the offset in force at Start
func TestDayWindow_TransitionDays(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name      string
		now       string
		wantStart string
		wantEnd   string
		wantSpan  time.Duration
		wantLabel string
	}{
		{
			name:      "spring forward day is 23 hours",
			now:       "2025-03-09T12:00:00Z",
			wantStart: "2025-03-09T05:00:00.000Z",
			wantEnd:   "2025-03-10T03:59:59.999Z",
			wantSpan:  day - time.Hour - time.Millisecond,
			wantLabel: "EST",
		},
		{
			name:      "fall back day is 25 hours",
			now:       "2025-11-02T12:00:00Z",
			wantStart: "2025-11-02T04:00:00.000Z",
			wantEnd:   "2025-11-03T04:59:59.999Z",
			wantSpan:  day + time.Hour - time.Millisecond,
			wantLabel: "EDT",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			w := mustWindow(t, DayWindow("America/New_York", 0, mustParse(t, tc.now)))
			if want := mustParse(t, tc.wantStart); !w.Start.Equal(want) {
				t.Fatalf("start = %v, want %v", w.Start, want)
			}
			if want := mustParse(t, tc.wantEnd); !w.End.Equal(want) {
				t.Fatalf("end = %v, want %v", w.End, want)
			}
			if got := w.End.Sub(w.Start); got != tc.wantSpan {
				t.Fatalf("span = %v, want %v", got, tc.wantSpan)
			}
			if w.Label != tc.wantLabel {
				t.Fatalf("label = %q, want %q", w.Label, tc.wantLabel)
			}
		})
	}
}

func TestDayWindow_Rollover(t *testing.T) {
	tests := []struct {
		name      string
		now       string
		off       int
		wantStart string
	}{
		{"month forward", "2025-01-31T12:00:00Z", 1, "2025-02-01T05:00:00Z"},
		{"year forward", "2025-12-31T12:00:00Z", 1, "2026-01-01T05:00:00Z"},
		{"month backward", "2025-01-15T12:00:00Z", -31, "2024-12-15T05:00:00Z"},
		{"leap day", "2024-02-28T12:00:00Z", 1, "2024-02-29T05:00:00Z"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			w := mustWindow(t, DayWindow("America/New_York", tc.off, mustParse(t, tc.now)))
			if want := mustParse(t, tc.wantStart); !w.Start.Equal(want) {
				t.Fatalf("start = %v, want %v", w.Start, want)
			}
		})
	}
}

// RangeWindow must agree with DayWindow on both bounds for every non-negative
// span, and a zero span degenerates to the single day window
func TestRangeWindow_Composition(t *testing.T) {
	const zone = "America/New_York"
	now := mustParse(t, "2025-03-06T12:00:00Z")

	for _, days := range []int{0, 1, 7, 30, 365} {
		r := mustWindow(t, RangeWindow(zone, days, now))
		d0 := mustWindow(t, DayWindow(zone, 0, now))
		dn := mustWindow(t, DayWindow(zone, days, now))

		if !r.Start.Equal(d0.Start) {
			t.Fatalf("days=%d start = %v, want %v", days, r.Start, d0.Start)
		}
		if !r.End.Equal(dn.End) {
			t.Fatalf("days=%d end = %v, want %v", days, r.End, dn.End)
		}
		if r.Label != d0.Label {
			t.Fatalf("days=%d label = %q, want %q", days, r.Label, d0.Label)
		}
	}
}

// A multi-day span over a transition is exactly one hour shorter (spring
// forward) or longer (fall back) than the same span without one
func TestRangeWindow_AcrossTransitions(t *testing.T) {
	const days = 7
	flat := time.Duration(days+1)*24*time.Hour - time.Millisecond

	tests := []struct {
		name string
		now  string
		want time.Duration
	}{
		{"no transition", "2025-01-06T12:00:00Z", flat},
		{"spring forward inside", "2025-03-06T12:00:00Z", flat - time.Hour},
		{"fall back inside", "2025-10-30T12:00:00Z", flat + time.Hour},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			w := mustWindow(t, RangeWindow("America/New_York", days, mustParse(t, tc.now)))
			if got := w.End.Sub(w.Start); got != tc.want {
				t.Fatalf("span = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeWindow_NegativeDays(t *testing.T) {
	_, err := RangeWindow("America/New_York", -1, time.Now())
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

// The zone's published transition instants flip the answer exactly
func TestIsDaylightSaving_TransitionInstants(t *testing.T) {
	tests := []struct {
		name string
		at   string
		want bool
	}{
		{"mid winter", "2025-01-15T12:00:00Z", false},
		{"mid summer", "2025-07-15T12:00:00Z", true},
		{"second before spring forward", "2025-03-09T06:59:59Z", false},
		{"at spring forward", "2025-03-09T07:00:00Z", true},
		{"second before fall back", "2025-11-02T05:59:59Z", true},
		{"at fall back", "2025-11-02T06:00:00Z", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsDaylightSaving(mustParse(t, tc.at), "America/New_York")
			if err != nil {
				t.Fatalf("IsDaylightSaving: %v", err)
			}
			if got != tc.want {
				t.Fatalf("at %s got %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestIsDaylightSaving_NoDSTZones(t *testing.T) {
	zones := []string{"America/Phoenix", "Pacific/Honolulu", "Asia/Tokyo", "Asia/Kolkata", "Asia/Singapore", "UTC"}

	for _, zone := range zones {
		at := mustParse(t, "2025-01-15T12:00:00Z")
		for m := 0; m < 12; m++ {
			got, err := IsDaylightSaving(at.AddDate(0, m, 0), zone)
			if err != nil {
				t.Fatalf("%s: %v", zone, err)
			}
			if got {
				t.Fatalf("%s reported DST at %v", zone, at.AddDate(0, m, 0))
			}
		}
	}
}

func TestIsDaylightSaving_SouthernHemisphere(t *testing.T) {
	tests := []struct {
		at   string
		want bool
	}{
		{"2025-01-15T12:00:00Z", true},
		{"2025-07-15T12:00:00Z", false},
	}

	for _, tc := range tests {
		got, err := IsDaylightSaving(mustParse(t, tc.at), "Australia/Sydney")
		if err != nil {
			t.Fatalf("IsDaylightSaving: %v", err)
		}
		if got != tc.want {
			t.Fatalf("at %s got %v, want %v", tc.at, got, tc.want)
		}
	}
}

// Label must track IsDaylightSaving day by day across a whole year,
// in both hemispheres
func TestLabel_MatchesDSTDaily(t *testing.T) {
	tests := []struct {
		zone     string
		standard string
		daylight string
	}{
		{"America/New_York", "EST", "EDT"},
		{"Australia/Sydney", "AEST", "AEDT"},
		{"Europe/London", "GMT", "BST"},
	}

	for _, tc := range tests {
		at := mustParse(t, "2025-01-01T12:00:00Z")
		for d := 0; d < 365; d++ {
			ts := at.AddDate(0, 0, d)
			dst, err := IsDaylightSaving(ts, tc.zone)
			if err != nil {
				t.Fatalf("%s: %v", tc.zone, err)
			}
			want := tc.standard
			if dst {
				want = tc.daylight
			}
			got, err := Label(ts, tc.zone)
			if err != nil {
				t.Fatalf("%s: %v", tc.zone, err)
			}
			if got != want {
				t.Fatalf("%s at %v: label = %q, want %q", tc.zone, ts, got, want)
			}
		}
	}
}

// Resolvable zones without a known abbreviation pair must refuse to label
// rather than fall back to a placeholder
func TestLabel_UnsupportedZone(t *testing.T) {
	at := mustParse(t, "2025-01-15T12:00:00Z")

	if _, err := Label(at, "Asia/Kathmandu"); !errors.Is(err, ErrUnsupportedZoneLabel) {
		t.Fatalf("Label err = %v, want ErrUnsupportedZoneLabel", err)
	}
	if _, err := DayWindow("Asia/Kathmandu", 0, at); !errors.Is(err, ErrUnsupportedZoneLabel) {
		t.Fatalf("DayWindow err = %v, want ErrUnsupportedZoneLabel", err)
	}
}

// Every operation rejects unresolvable zone ids outright; nothing substitutes
// a default zone
func TestInvalidZone_AllOps(t *testing.T) {
	at := mustParse(t, "2025-01-15T12:00:00Z")

	for _, zone := range []string{"", "Nowhere/Metropolis", "America/Springfield", "not a zone"} {
		if _, err := IsDaylightSaving(at, zone); !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("IsDaylightSaving(%q) err = %v, want ErrInvalidTimeZone", zone, err)
		}
		if _, err := Label(at, zone); !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("Label(%q) err = %v, want ErrInvalidTimeZone", zone, err)
		}
		if _, err := DayWindow(zone, 0, at); !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("DayWindow(%q) err = %v, want ErrInvalidTimeZone", zone, err)
		}
		if _, err := RangeWindow(zone, 3, at); !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("RangeWindow(%q) err = %v, want ErrInvalidTimeZone", zone, err)
		}
		if _, err := FormatLocalTime(at, zone, StyleTimeOnly); !errors.Is(err, ErrInvalidTimeZone) {
			t.Fatalf("FormatLocalTime(%q) err = %v, want ErrInvalidTimeZone", zone, err)
		}
	}
}

func TestFormatLocalTime_Table(t *testing.T) {
	tests := []struct {
		name  string
		at    string
		zone  string
		style Style
		want  string
	}{
		{"afternoon minutes padded", "2025-01-15T19:05:00Z", "America/New_York", StyleTimeOnly, "2:05 PM"},
		{"morning hour unpadded", "2025-07-15T13:30:00Z", "America/New_York", StyleTimeOnly, "9:30 AM"},
		{"local midnight", "2025-01-15T05:00:00Z", "America/New_York", StyleTimeOnly, "12:00 AM"},
		{"local noon", "2025-01-15T17:00:00Z", "America/New_York", StyleTimeOnly, "12:00 PM"},
		{"date only", "2025-01-15T19:05:00Z", "America/New_York", StyleDateOnly, "Wednesday, January 15, 2025"},
		{"date and time", "2025-01-15T19:05:00Z", "America/New_York", StyleDateAndTime, "Wednesday, January 15, 2025 at 2:05 PM"},
		{"london summer", "2025-07-15T13:30:00Z", "Europe/London", StyleTimeOnly, "2:30 PM"},
		{"utc date and time", "2025-07-04T16:45:00Z", "UTC", StyleDateAndTime, "Friday, July 4, 2025 at 4:45 PM"},
		{"tokyo next local day", "2025-01-15T15:05:00Z", "Asia/Tokyo", StyleDateOnly, "Thursday, January 16, 2025"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatLocalTime(mustParse(t, tc.at), tc.zone, tc.style)
			if err != nil {
				t.Fatalf("FormatLocalTime: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			for _, label := range []string{"EST", "EDT", "GMT", "BST", "JST", "UTC"} {
				if strings.Contains(got, label) {
					t.Fatalf("output %q embeds zone abbreviation %q", got, label)
				}
			}
		})
	}
}

func TestFormatLocalTime_UnknownStyle(t *testing.T) {
	_, err := FormatLocalTime(time.Now(), "UTC", Style(99))
	if err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
