// Package service contains org and settings workflows
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	tw "daybrief/internal/core/timewindow"
	"daybrief/internal/modkit/repokit"
	perr "daybrief/internal/platform/errors"
	str "daybrief/internal/platform/strings"
	"daybrief/internal/services/api/orgs/domain"
	"daybrief/internal/services/api/orgs/repo"
)

const (
	fallbackZone      = "America/New_York"
	defaultDigestHour = 7
	defaultPlan       = "free"

	defaultPageSize = 25
	maxPageSize     = 100
)

// Service defines the service contract for orgs
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner

	defaultZone string
	now         func() time.Time
}

// New creates a new orgs service. defaultZone backs the last step of zone
// resolution; empty falls back to America/New_York
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], defaultZone string) *Svc {
	if db == nil {
		panic("orgs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("orgs.Service requires a non nil Repo binder")
	}
	if strings.TrimSpace(defaultZone) == "" {
		defaultZone = fallbackZone
	}
	return &Svc{
		Repo:        binder.Bind(db),
		binder:      binder,
		db:          db,
		defaultZone: defaultZone,
		now:         time.Now,
	}
}

// checkZone rejects zone ids the briefing pipeline cannot render, whether
// unresolvable against the host tz database or missing a display label
func (s *Svc) checkZone(zone string) error {
	if zone == "" {
		return nil
	}
	if _, err := tw.DayWindow(zone, 0, s.now()); err != nil {
		return perr.WithField(perr.InvalidArgf("unsupported time zone %q", zone), "zone")
	}
	return nil
}

// Create registers an organization
func (s *Svc) Create(ctx context.Context, in domain.CreateOrgInput) (domain.Org, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("name is required"), "name")
	}
	tenant := strings.TrimSpace(in.ProviderTenantID)
	if tenant == "" {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("provider_tenant_id is required"), "provider_tenant_id")
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = str.Slugify(name)
	}
	if slug == "" {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("name does not reduce to a slug; provide one"), "slug")
	}

	zone := strings.TrimSpace(in.Zone)
	if zone == "" {
		zone = s.defaultZone
	}
	if err := s.checkZone(zone); err != nil {
		return domain.Org{}, err
	}

	hour := defaultDigestHour
	if in.DigestHour != nil {
		hour = *in.DigestHour
	}
	if hour < 0 || hour > 23 {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("digest_hour must be 0..23"), "digest_hour")
	}

	plan := in.Plan
	if plan == "" {
		plan = defaultPlan
	}
	if err := checkPlan(plan); err != nil {
		return domain.Org{}, err
	}

	now := s.now().UTC()
	o := domain.Org{
		ID:               uuid.NewString(),
		Name:             name,
		Slug:             slug,
		ProviderTenantID: tenant,
		Zone:             zone,
		DigestHour:       hour,
		Plan:             plan,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Insert(ctx, o); err != nil {
		return domain.Org{}, err
	}
	return o, nil
}

// Get fetches one org by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Org, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Org{}, perr.InvalidArgf("org id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns a page of orgs, newest first
func (s *Svc) List(ctx context.Context, cursor string, limit int) (domain.OrgPage, error) {
	offset, err := decodeCursor(cursor)
	if err != nil {
		return domain.OrgPage{}, err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, err := s.Repo.List(ctx, offset, limit)
	if err != nil {
		return domain.OrgPage{}, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return domain.OrgPage{}, err
	}

	page := domain.OrgPage{Items: items, Total: total}
	if offset+len(items) < total {
		page.NextCursor = encodeCursor(offset + len(items))
	}
	return page, nil
}

// Counts returns the org tally for the admin overview
func (s *Svc) Counts(ctx context.Context) (domain.OrgCounts, error) {
	return s.Repo.Counts(ctx)
}

// Update applies a partial update and returns the fresh record
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateOrgInput) (domain.Org, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Org{}, perr.InvalidArgf("org id is required")
	}
	if in.Name == nil && in.Zone == nil && in.DigestHour == nil && in.Plan == nil && in.Active == nil {
		return s.Repo.GetByID(ctx, id)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("name cannot be blank"), "name")
	}
	if in.Zone != nil {
		if err := s.checkZone(strings.TrimSpace(*in.Zone)); err != nil {
			return domain.Org{}, err
		}
	}
	if in.DigestHour != nil && (*in.DigestHour < 0 || *in.DigestHour > 23) {
		return domain.Org{}, perr.WithField(perr.InvalidArgf("digest_hour must be 0..23"), "digest_hour")
	}
	if in.Plan != nil {
		if err := checkPlan(*in.Plan); err != nil {
			return domain.Org{}, err
		}
	}
	return s.Repo.Update(ctx, id, in, s.now().UTC())
}

// Deactivate soft deletes an org; records stay for audit and billing
func (s *Svc) Deactivate(ctx context.Context, id string) error {
	off := false
	_, err := s.Update(ctx, id, domain.UpdateOrgInput{Active: &off})
	return err
}

// ResolveProviderTenant implements domain.ServicePort
func (s *Svc) ResolveProviderTenant(ctx context.Context, tenantID string) (domain.Org, error) {
	if strings.TrimSpace(tenantID) == "" {
		return domain.Org{}, perr.InvalidArgf("tenant id is required")
	}
	o, err := s.Repo.GetByProviderTenant(ctx, tenantID)
	if err != nil {
		return domain.Org{}, err
	}
	if !o.Active {
		return domain.Org{}, perr.Forbiddenf("organization is deactivated")
	}
	return o, nil
}

// Settings returns the caller's per-org settings; absent rows read as defaults
func (s *Svc) Settings(ctx context.Context, userID, orgID string) (domain.UserSettings, error) {
	us, err := s.Repo.SettingsGet(ctx, userID, orgID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.UserSettings{UserID: userID, OrgID: orgID}, nil
		}
		return domain.UserSettings{}, err
	}
	return us, nil
}

// PutSettings replaces the caller's per-org settings
func (s *Svc) PutSettings(ctx context.Context, userID, orgID string, in domain.PutSettingsInput) (domain.UserSettings, error) {
	zone := strings.TrimSpace(in.Zone)
	if err := s.checkZone(zone); err != nil {
		return domain.UserSettings{}, err
	}
	us := domain.UserSettings{
		UserID:        userID,
		OrgID:         orgID,
		Zone:          zone,
		DigestEnabled: in.DigestEnabled,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.Repo.SettingsUpsert(ctx, us); err != nil {
		return domain.UserSettings{}, err
	}
	return us, nil
}

// EffectiveZone implements domain.ServicePort
func (s *Svc) EffectiveZone(ctx context.Context, userID, orgID, override string) (string, error) {
	if z := strings.TrimSpace(override); z != "" {
		if err := s.checkZone(z); err != nil {
			return "", err
		}
		return z, nil
	}

	us, err := s.Settings(ctx, userID, orgID)
	if err != nil {
		return "", err
	}
	if us.Zone != "" {
		return us.Zone, nil
	}

	o, err := s.Repo.GetByID(ctx, orgID)
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return "", err
	}
	if err == nil && o.Zone != "" {
		return o.Zone, nil
	}
	return s.defaultZone, nil
}

func checkPlan(plan string) error {
	switch plan {
	case "free", "team", "enterprise":
		return nil
	}
	return perr.WithField(perr.InvalidArgf("plan must be one of free, team, enterprise"), "plan")
}
