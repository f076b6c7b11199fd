package module

import (
	"context"

	inboxdom "daybrief/internal/services/api/inbox/domain"
	inboxsvc "daybrief/internal/services/api/inbox/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptInboxPort adapts the inbox service to the domain port interface
type adaptInboxPort struct{ svc inboxsvc.Service }

// Today implements the domain ServicePort interface
func (a adaptInboxPort) Today(ctx context.Context, q inboxdom.Query) (inboxdom.DayView, error) {
	return a.svc.Today(ctx, q)
}

// Recent implements the domain ServicePort interface
func (a adaptInboxPort) Recent(ctx context.Context, q inboxdom.Query) (inboxdom.RangeView, error) {
	return a.svc.Recent(ctx, q)
}
