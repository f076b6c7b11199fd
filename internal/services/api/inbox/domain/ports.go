package domain

import (
	"context"

	"daybrief/internal/adapters/mailapi"
	tw "daybrief/internal/core/timewindow"
	usagedom "daybrief/internal/services/usage/domain"
)

// ServicePort defines the inbox service contract
type ServicePort interface {
	Today(ctx context.Context, q Query) (DayView, error)
	Recent(ctx context.Context, q Query) (RangeView, error)
}

// MailPort is the slice of the mail API the inbox reads
type MailPort interface {
	ListMessages(ctx context.Context, token string, w tw.Window, top int) ([]mailapi.Message, error)
}

// ZonePort resolves the display zone for a caller
type ZonePort interface {
	EffectiveZone(ctx context.Context, userID, orgID, override string) (string, error)
}

// Ports are dependencies injected into the inbox module
type Ports struct {
	Mail  MailPort              // required
	Zones ZonePort              // required
	Usage usagedom.RecorderPort // optional, nil disables metering
}
