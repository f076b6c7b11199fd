// Package service assembles inbox views over the mail API
package service

import (
	"context"
	"errors"
	"time"

	"daybrief/internal/adapters/mailapi"
	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
	pnet "daybrief/internal/platform/net"
	"daybrief/internal/services/api/inbox/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

const (
	defaultTop     = 50
	maxTop         = 200
	defaultMaxDays = 31

	routeToday  = "inbox.today"
	routeRecent = "inbox.recent"
)

// Config tunes the service
type Config struct {
	// Top caps how many messages one view returns; zero means 50
	Top int
	// MaxDays caps the recent span; zero means 31
	MaxDays int
}

// Service defines the service contract for inbox
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	mail  domain.MailPort
	zones domain.ZonePort
	usage usagedom.RecorderPort

	top     int
	maxDays int
	now     func() time.Time
}

// New creates a new inbox service
func New(p domain.Ports, cfg Config) *Svc {
	if p.Mail == nil {
		panic("inbox.Service requires a mail port")
	}
	if p.Zones == nil {
		panic("inbox.Service requires a zone port")
	}
	top := cfg.Top
	if top <= 0 {
		top = defaultTop
	}
	if top > maxTop {
		top = maxTop
	}
	maxDays := cfg.MaxDays
	if maxDays <= 0 {
		maxDays = defaultMaxDays
	}
	return &Svc{
		mail:    p.Mail,
		zones:   p.Zones,
		usage:   p.Usage,
		top:     top,
		maxDays: maxDays,
		now:     time.Now,
	}
}

// Today returns the caller's messages for the current civil day in their zone
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
	msgs, err := s.mail.ListMessages(ctx, q.Token, w, s.top)
	if err != nil {
		return domain.DayView{}, err
	}
	date, err := tw.FormatLocalTime(w.Start, zone, tw.StyleDateOnly)
	if err != nil {
		return domain.DayView{}, mapWindowErr(err)
	}
	views, unread, err := viewsOf(msgs, zone, tw.StyleTimeOnly)
	if err != nil {
		return domain.DayView{}, mapWindowErr(err)
	}
	return domain.DayView{
		Date:     date,
		Window:   domain.WindowViewOf(w),
		Unread:   unread,
		Messages: views,
	}, nil
}

// Recent returns messages from today back through Days earlier civil days.
// The window math runs forward, so the service projects the span backwards
// by anchoring the range at the earliest day
func (s *Svc) Recent(ctx context.Context, q domain.Query) (domain.RangeView, error) {
	started := s.now()
	view, err := s.recent(ctx, q)
	s.meter(ctx, q, routeRecent, started, err)
	return view, err
}

func (s *Svc) recent(ctx context.Context, q domain.Query) (domain.RangeView, error) {
	if q.Days > s.maxDays {
		return domain.RangeView{}, perr.InvalidArgf("days must be between 0 and %d", s.maxDays)
	}
	zone, err := s.zones.EffectiveZone(ctx, q.UserID, q.OrgID, q.Zone)
	if err != nil {
		return domain.RangeView{}, err
	}

	// Anchor "now minus Days" as the range start so the span ends today
	anchor := s.now()
	if q.Days > 0 {
		first, err := tw.DayWindow(zone, -q.Days, anchor)
		if err != nil {
			return domain.RangeView{}, mapWindowErr(err)
		}
		anchor = first.Start
	}
	w, err := tw.RangeWindow(zone, q.Days, anchor)
	if err != nil {
		return domain.RangeView{}, mapWindowErr(err)
	}

	msgs, err := s.mail.ListMessages(ctx, q.Token, w, s.top)
	if err != nil {
		return domain.RangeView{}, err
	}
	views, unread, err := viewsOf(msgs, zone, tw.StyleDateAndTime)
	if err != nil {
		return domain.RangeView{}, mapWindowErr(err)
	}
	return domain.RangeView{
		Days:     q.Days,
		Window:   domain.WindowViewOf(w),
		Unread:   unread,
		Messages: views,
	}, nil
}

// viewsOf shapes messages for display in zone and tallies unread
func viewsOf(msgs []mailapi.Message, zone string, style tw.Style) ([]domain.MessageView, int, error) {
	out := make([]domain.MessageView, 0, len(msgs))
	unread := 0
	for _, m := range msgs {
		local, err := tw.FormatLocalTime(m.ReceivedDateTime, zone, style)
		if err != nil {
			return nil, 0, err
		}
		if !m.IsRead {
			unread++
		}
		out = append(out, domain.MessageView{
			ID:             m.ID,
			Subject:        m.Subject,
			From:           senderOf(m.From.EmailAddress),
			Preview:        m.BodyPreview,
			ReceivedAt:     m.ReceivedDateTime.UTC(),
			ReceivedLocal:  local,
			Unread:         !m.IsRead,
			Important:      m.Importance == mailapi.ImportanceHigh,
			HasAttachments: m.HasAttachments,
			WebLink:        m.WebLink,
		})
	}
	return out, unread, nil
}

func senderOf(a mailapi.EmailAddress) string {
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
		Kind:       usagedom.KindInbox,
		Status:     status,
		DurationMS: uint64(s.now().Sub(started).Milliseconds()),
		RequestID:  pnet.RequestID(ctx),
	})
}
