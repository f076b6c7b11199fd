package module

import (
	"context"

	caldom "daybrief/internal/services/api/calendar/domain"
	calsvc "daybrief/internal/services/api/calendar/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptCalendarPort adapts the calendar service to the domain port interface
type adaptCalendarPort struct{ svc calsvc.Service }

// Today implements the domain ServicePort interface
func (a adaptCalendarPort) Today(ctx context.Context, q caldom.Query) (caldom.DayView, error) {
	return a.svc.Today(ctx, q)
}

// Upcoming implements the domain ServicePort interface
func (a adaptCalendarPort) Upcoming(ctx context.Context, q caldom.Query) (caldom.RangeView, error) {
	return a.svc.Upcoming(ctx, q)
}

// ExportICS implements the domain ServicePort interface
func (a adaptCalendarPort) ExportICS(ctx context.Context, q caldom.Query) (string, error) {
	return a.svc.ExportICS(ctx, q)
}
