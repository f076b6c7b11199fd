// Package service assembles calendar views over the mail API
package service

import (
	"context"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"

	"daybrief/internal/adapters/mailapi"
	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/logger"
	pnet "daybrief/internal/platform/net"
	"daybrief/internal/services/api/calendar/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

const (
	defaultMaxDays = 31

	routeToday    = "calendar.today"
	routeUpcoming = "calendar.upcoming"
	routeExport   = "calendar.export"
)

// Config tunes the service
type Config struct {
	// MaxDays caps the upcoming span; zero means the default of 31
	MaxDays int
}

// Service defines the service contract for calendar
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	mail  domain.MailPort
	zones domain.ZonePort
	usage usagedom.RecorderPort

	maxDays int
	log     *logger.Logger
	now     func() time.Time
}

// New creates a new calendar service
func New(p domain.Ports, cfg Config) *Svc {
	if p.Mail == nil {
		panic("calendar.Service requires a mail port")
	}
	if p.Zones == nil {
		panic("calendar.Service requires a zone port")
	}
	maxDays := cfg.MaxDays
	if maxDays <= 0 {
		maxDays = defaultMaxDays
	}
	return &Svc{
		mail:    p.Mail,
		zones:   p.Zones,
		usage:   p.Usage,
		maxDays: maxDays,
		log:     logger.Named("calendar"),
		now:     time.Now,
	}
}

// Today returns the caller's events for the current civil day in their zone
func (s *Svc) Today(ctx context.Context, q domain.Query) (domain.DayView, error) {
	started := s.now()
	view, err := s.today(ctx, q)
	s.meter(ctx, q, routeToday, started, err)
	return view, err
}

func (s *Svc) today(ctx context.Context, q domain.Query) (domain.DayView, error) {
	zone, err := s.zones.EffectiveZone(ctx, q.UserID, q.OrgID, q.Zone)
	if err != nil {
		return domain.DayView{}, err
	}
	w, err := tw.DayWindow(zone, 0, s.now())
	if err != nil {
		return domain.DayView{}, mapWindowErr(err)
	}
	occ, err := s.occurrences(ctx, q.Token, w)
	if err != nil {
		return domain.DayView{}, err
	}
	date, err := tw.FormatLocalTime(w.Start, zone, tw.StyleDateOnly)
	if err != nil {
		return domain.DayView{}, mapWindowErr(err)
	}
	events, err := viewsOf(occ, zone, tw.StyleTimeOnly)
	if err != nil {
		return domain.DayView{}, mapWindowErr(err)
	}
	return domain.DayView{
		Date:   date,
		Window: domain.WindowViewOf(w),
		Events: events,
	}, nil
}

// Upcoming returns events for today through Days civil days ahead
func (s *Svc) Upcoming(ctx context.Context, q domain.Query) (domain.RangeView, error) {
	started := s.now()
	view, err := s.upcoming(ctx, q)
	s.meter(ctx, q, routeUpcoming, started, err)
	return view, err
}

func (s *Svc) upcoming(ctx context.Context, q domain.Query) (domain.RangeView, error) {
	w, zone, err := s.rangeWindow(ctx, q)
	if err != nil {
		return domain.RangeView{}, err
	}
	occ, err := s.occurrences(ctx, q.Token, w)
	if err != nil {
		return domain.RangeView{}, err
	}
	events, err := viewsOf(occ, zone, tw.StyleDateAndTime)
	if err != nil {
		return domain.RangeView{}, mapWindowErr(err)
	}
	return domain.RangeView{
		Days:   q.Days,
		Window: domain.WindowViewOf(w),
		Events: events,
	}, nil
}

// ExportICS serializes the upcoming window as an iCalendar feed
func (s *Svc) ExportICS(ctx context.Context, q domain.Query) (string, error) {
	started := s.now()
	feed, err := s.exportICS(ctx, q)
	s.meter(ctx, q, routeExport, started, err)
	return feed, err
}

func (s *Svc) exportICS(ctx context.Context, q domain.Query) (string, error) {
	w, _, err := s.rangeWindow(ctx, q)
	if err != nil {
		return "", err
	}
	occ, err := s.occurrences(ctx, q.Token, w)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//daybrief//calendar//EN")

	stamp := s.now().UTC()
	for _, o := range occ {
		ve := cal.AddEvent(o.ID)
		ve.SetDtStampTime(stamp)
		if o.Event.IsAllDay {
			ve.SetAllDayStartAt(o.Start)
			ve.SetAllDayEndAt(o.End)
		} else {
			ve.SetStartAt(o.Start.UTC())
			ve.SetEndAt(o.End.UTC())
		}
		ve.SetSummary(o.Event.Subject)
		if loc := o.Event.Location.DisplayName; loc != "" {
			ve.SetLocation(loc)
		}
		if desc := o.Event.BodyPreview; desc != "" {
			ve.SetDescription(desc)
		}
		if u := o.Event.WebLink; u != "" {
			ve.SetURL(u)
		}
	}
	return cal.Serialize(), nil
}

// rangeWindow resolves the caller's zone and builds the span for Days.
// Negative spans are refused by the window math itself
func (s *Svc) rangeWindow(ctx context.Context, q domain.Query) (tw.Window, string, error) {
	if q.Days > s.maxDays {
		return tw.Window{}, "", perr.InvalidArgf("days must be between 0 and %d", s.maxDays)
	}
	zone, err := s.zones.EffectiveZone(ctx, q.UserID, q.OrgID, q.Zone)
	if err != nil {
		return tw.Window{}, "", err
	}
	w, err := tw.RangeWindow(zone, q.Days, s.now())
	if err != nil {
		return tw.Window{}, "", mapWindowErr(err)
	}
	return w, zone, nil
}

// occurrences fetches raw events for the window and expands them
func (s *Svc) occurrences(ctx context.Context, token string, w tw.Window) ([]mailapi.Occurrence, error) {
	raw, err := s.mail.ListEvents(ctx, token, w)
	if err != nil {
		return nil, err
	}
	return mailapi.ExpandOccurrences(s.log, raw, w), nil
}

// viewsOf shapes occurrences for display in zone. The zone was already
// resolved through the window math, so formatting only fails on a bad style
func viewsOf(occ []mailapi.Occurrence, zone string, style tw.Style) ([]domain.EventView, error) {
	out := make([]domain.EventView, 0, len(occ))
	for _, o := range occ {
		startLocal, err := tw.FormatLocalTime(o.Start, zone, style)
		if err != nil {
			return nil, err
		}
		endLocal, err := tw.FormatLocalTime(o.End, zone, style)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.EventView{
			ID:          o.ID,
			Subject:     o.Event.Subject,
			Organizer:   organizerOf(o.Event.Organizer.EmailAddress),
			Location:    o.Event.Location.DisplayName,
			StartsAt:    o.Start.UTC(),
			EndsAt:      o.End.UTC(),
			StartsLocal: startLocal,
			EndsLocal:   endLocal,
			AllDay:      o.Event.IsAllDay,
			Online:      o.Event.IsOnlineMeeting,
			JoinURL:     o.Event.OnlineMeetingURL,
			Recurring:   o.Event.Type != "" && o.Event.Type != mailapi.EventSingleInstance,
			WebLink:     o.Event.WebLink,
		})
	}
	return out, nil
}

func organizerOf(a mailapi.EmailAddress) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Address
}

// mapWindowErr lifts core window errors into transport errors
func mapWindowErr(err error) error {
	switch {
	case errors.Is(err, tw.ErrInvalidRange):
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid day span")
	case errors.Is(err, tw.ErrInvalidTimeZone), errors.Is(err, tw.ErrUnsupportedZoneLabel):
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unsupported time zone")
	default:
		return err
	}
}

func (s *Svc) meter(ctx context.Context, q domain.Query, route string, started time.Time, err error) {
	if s.usage == nil {
		return
	}
	status := usagedom.StatusOK
	if err != nil {
		status = usagedom.StatusError
	}
	s.usage.Record(usagedom.Event{
		OrgID:      q.OrgID,
		UserID:     q.UserID,
		Route:      route,
		Kind:       usagedom.KindCalendar,
		Status:     status,
		DurationMS: uint64(s.now().Sub(started).Milliseconds()),
		RequestID:  pnet.RequestID(ctx),
	})
}
