package module

import (
	"context"

	admindom "daybrief/internal/services/api/admin/domain"
	adminsvc "daybrief/internal/services/api/admin/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAdminPort adapts the admin service to the domain port interface
type adaptAdminPort struct{ svc adminsvc.Service }

// Overview implements the domain ServicePort interface
func (a adaptAdminPort) Overview(ctx context.Context, callerOrgID string) (admindom.Overview, error) {
	return a.svc.Overview(ctx, callerOrgID)
}

// OrgUsage implements the domain ServicePort interface
func (a adaptAdminPort) OrgUsage(
	ctx context.Context,
	callerOrgID, orgID string,
	days int,
) (admindom.OrgUsage, error) {
	return a.svc.OrgUsage(ctx, callerOrgID, orgID, days)
}

// OrgDigests implements the domain ServicePort interface
func (a adaptAdminPort) OrgDigests(
	ctx context.Context,
	callerOrgID, orgID string,
	limit int,
) (admindom.OrgDigests, error) {
	return a.svc.OrgDigests(ctx, callerOrgID, orgID, limit)
}
