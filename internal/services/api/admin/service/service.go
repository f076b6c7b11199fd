// Package service serves the admin dashboard reads
package service

import (
	"context"
	"strings"
	"time"

	tw "daybrief/internal/core/timewindow"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/services/api/admin/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

const (
	defaultUsageDays = 14
	maxUsageDays     = 90
)

// Service defines the service contract for the admin surface
type Service interface{ domain.ServicePort }

// Config carries the admin service knobs
type Config struct {
	// AdminTenant is the provider directory tenant whose members may read the
	// dashboard. Empty disables the surface entirely
	AdminTenant string
}

// Svc implements the Service interface
type Svc struct {
	orgs    domain.OrgsPort
	usage   usagedom.ReaderPort
	digests domain.DigestsPort

	adminTenant string
	now         func() time.Time
}

// New creates a new admin service
func New(ports domain.Ports, cfg Config) *Svc {
	if ports.Orgs == nil {
		panic("admin.Service requires a non nil Orgs port")
	}
	if ports.Usage == nil {
		panic("admin.Service requires a non nil Usage reader")
	}
	if ports.Digests == nil {
		panic("admin.Service requires a non nil Digests port")
	}
	return &Svc{
		orgs:        ports.Orgs,
		usage:       ports.Usage,
		digests:     ports.Digests,
		adminTenant: strings.TrimSpace(cfg.AdminTenant),
		now:         time.Now,
	}
}

// authorize restricts the surface to members of the operator tenant. A caller
// outside it learns nothing beyond "forbidden", including whether an org exists
func (s *Svc) authorize(ctx context.Context, callerOrgID string) error {
	if s.adminTenant == "" {
		return perr.Forbiddenf("admin surface is disabled")
	}
	org, err := s.orgs.Get(ctx, callerOrgID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return perr.Forbiddenf("admin access is limited to the operator tenant")
		}
		return err
	}
	if org.ProviderTenantID != s.adminTenant {
		return perr.Forbiddenf("admin access is limited to the operator tenant")
	}
	return nil
}

// Overview returns org counts plus trailing event activity
func (s *Svc) Overview(ctx context.Context, callerOrgID string) (domain.Overview, error) {
	if err := s.authorize(ctx, callerOrgID); err != nil {
		return domain.Overview{}, err
	}

	counts, err := s.orgs.Counts(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	trailing, err := s.usage.Trailing(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	return domain.Overview{Orgs: counts, Usage: trailing}, nil
}

// OrgUsage returns per-day usage buckets for one org, oldest first. Bucket
// bounds are the org zone's civil days, so a spring-forward bucket spans 23
// UTC hours rather than splitting events across naive UTC midnights
func (s *Svc) OrgUsage(ctx context.Context, callerOrgID, orgID string, days int) (domain.OrgUsage, error) {
	if err := s.authorize(ctx, callerOrgID); err != nil {
		return domain.OrgUsage{}, err
	}
	if days <= 0 {
		days = defaultUsageDays
	}
	if days > maxUsageDays {
		return domain.OrgUsage{}, perr.WithField(
			perr.InvalidArgf("days must be between 1 and %d", maxUsageDays), "days")
	}

	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		return domain.OrgUsage{}, err
	}

	out := domain.OrgUsage{
		OrgID: org.ID,
		Zone:  org.Zone,
		Days:  make([]domain.DayBucket, 0, days),
	}
	now := s.now()
	for i := days - 1; i >= 0; i-- {
		w, err := tw.DayWindow(org.Zone, -i, now)
		if err != nil {
			// stored zones were validated on write; failing here means the
			// tz database moved under us
			return domain.OrgUsage{}, perr.Wrap(err, perr.ErrorCodeUnknown, "usage bucket window")
		}
		date, err := tw.FormatLocalTime(w.Start, org.Zone, tw.StyleDateOnly)
		if err != nil {
			return domain.OrgUsage{}, perr.Wrap(err, perr.ErrorCodeUnknown, "usage bucket date")
		}
		totals, err := s.usage.OrgWindow(ctx, org.ID, w)
		if err != nil {
			return domain.OrgUsage{}, err
		}
		out.Days = append(out.Days, domain.DayBucket{
			Date:   date,
			Label:  w.Label,
			Start:  w.Start,
			End:    w.End,
			Totals: totals,
		})
	}
	return out, nil
}

// OrgDigests returns one org's latest digest runs, newest first
func (s *Svc) OrgDigests(ctx context.Context, callerOrgID, orgID string, limit int) (domain.OrgDigests, error) {
	if err := s.authorize(ctx, callerOrgID); err != nil {
		return domain.OrgDigests{}, err
	}
	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		return domain.OrgDigests{}, err
	}
	runs, err := s.digests.RecentRuns(ctx, org.ID, limit)
	if err != nil {
		return domain.OrgDigests{}, err
	}
	return domain.OrgDigests{OrgID: org.ID, Runs: runs}, nil
}
