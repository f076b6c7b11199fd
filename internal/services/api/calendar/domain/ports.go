package domain

import (
	"context"

	"daybrief/internal/adapters/mailapi"
	tw "daybrief/internal/core/timewindow"
	usagedom "daybrief/internal/services/usage/domain"
)

// ServicePort defines the calendar service contract
type ServicePort interface {
	Today(ctx context.Context, q Query) (DayView, error)
	Upcoming(ctx context.Context, q Query) (RangeView, error)

	// ExportICS renders the same window as a serialized iCalendar feed
	ExportICS(ctx context.Context, q Query) (string, error)
}

// MailPort is the slice of the mail API the calendar reads
type MailPort interface {
	ListEvents(ctx context.Context, token string, w tw.Window) ([]mailapi.Event, error)
}

// ZonePort resolves the display zone for a caller
type ZonePort interface {
	EffectiveZone(ctx context.Context, userID, orgID, override string) (string, error)
}

// Ports are dependencies injected into the calendar module
type Ports struct {
	Mail  MailPort              // required
	Zones ZonePort              // required
	Usage usagedom.RecorderPort // optional, nil disables metering
}
