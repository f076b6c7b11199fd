package domain

import (
	"context"

	orgsdom "daybrief/internal/services/api/orgs/domain"
	digestdom "daybrief/internal/services/digest/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

// ServicePort defines the admin read surface
type ServicePort interface {
	Overview(ctx context.Context, callerOrgID string) (Overview, error)
	OrgUsage(ctx context.Context, callerOrgID, orgID string, days int) (OrgUsage, error)
	OrgDigests(ctx context.Context, callerOrgID, orgID string, limit int) (OrgDigests, error)
}

// OrgsPort is the slice of the orgs service the dashboard reads
type OrgsPort interface {
	Get(ctx context.Context, id string) (orgsdom.Org, error)
	Counts(ctx context.Context) (orgsdom.OrgCounts, error)
}

// DigestsPort serves digest run history
type DigestsPort interface {
	RecentRuns(ctx context.Context, orgID string, limit int) ([]digestdom.Run, error)
}

// Ports declares what the admin module needs from the rest of the system
type Ports struct {
	Orgs    OrgsPort            // required
	Usage   usagedom.ReaderPort // required
	Digests DigestsPort         // required
}
