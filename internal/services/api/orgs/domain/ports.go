package domain

import "context"

// ServicePort defines the orgs service contract
type ServicePort interface {
	Create(ctx context.Context, in CreateOrgInput) (Org, error)
	Get(ctx context.Context, id string) (Org, error)
	List(ctx context.Context, cursor string, limit int) (OrgPage, error)
	Counts(ctx context.Context) (OrgCounts, error)
	Update(ctx context.Context, id string, in UpdateOrgInput) (Org, error)
	Deactivate(ctx context.Context, id string) error

	// ResolveProviderTenant maps a provider directory tenant onto an active org.
	// The auth layer calls this on every verified identity
	ResolveProviderTenant(ctx context.Context, tenantID string) (Org, error)

	Settings(ctx context.Context, userID, orgID string) (UserSettings, error)
	PutSettings(ctx context.Context, userID, orgID string, in PutSettingsInput) (UserSettings, error)

	// EffectiveZone resolves the zone for a request: explicit override, then the
	// user setting, then the org record, then the configured default
	EffectiveZone(ctx context.Context, userID, orgID, override string) (string, error)
}
