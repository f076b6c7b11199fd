package module

import (
	"context"

	orgsdom "daybrief/internal/services/api/orgs/domain"
	orgssvc "daybrief/internal/services/api/orgs/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptOrgsPort adapts the orgs service to the domain port interface
type adaptOrgsPort struct{ svc orgssvc.Service }

// Create implements the domain ServicePort interface
func (a adaptOrgsPort) Create(ctx context.Context, in orgsdom.CreateOrgInput) (orgsdom.Org, error) {
	return a.svc.Create(ctx, in)
}

// Get implements the domain ServicePort interface
func (a adaptOrgsPort) Get(ctx context.Context, id string) (orgsdom.Org, error) {
	return a.svc.Get(ctx, id)
}

// List implements the domain ServicePort interface
func (a adaptOrgsPort) List(ctx context.Context, cursor string, limit int) (orgsdom.OrgPage, error) {
	return a.svc.List(ctx, cursor, limit)
}

// Counts implements the domain ServicePort interface
func (a adaptOrgsPort) Counts(ctx context.Context) (orgsdom.OrgCounts, error) {
	return a.svc.Counts(ctx)
}

// Update implements the domain ServicePort interface
func (a adaptOrgsPort) Update(ctx context.Context, id string, in orgsdom.UpdateOrgInput) (orgsdom.Org, error) {
	return a.svc.Update(ctx, id, in)
}

// Deactivate implements the domain ServicePort interface
func (a adaptOrgsPort) Deactivate(ctx context.Context, id string) error {
	return a.svc.Deactivate(ctx, id)
}

// ResolveProviderTenant implements the domain ServicePort interface
func (a adaptOrgsPort) ResolveProviderTenant(ctx context.Context, tenantID string) (orgsdom.Org, error) {
	return a.svc.ResolveProviderTenant(ctx, tenantID)
}

// Settings implements the domain ServicePort interface
func (a adaptOrgsPort) Settings(ctx context.Context, userID, orgID string) (orgsdom.UserSettings, error) {
	return a.svc.Settings(ctx, userID, orgID)
}

// PutSettings implements the domain ServicePort interface
func (a adaptOrgsPort) PutSettings(
	ctx context.Context,
	userID, orgID string,
	in orgsdom.PutSettingsInput,
) (orgsdom.UserSettings, error) {
	return a.svc.PutSettings(ctx, userID, orgID, in)
}

// EffectiveZone implements the domain ServicePort interface
func (a adaptOrgsPort) EffectiveZone(ctx context.Context, userID, orgID, override string) (string, error) {
	return a.svc.EffectiveZone(ctx, userID, orgID, override)
}
