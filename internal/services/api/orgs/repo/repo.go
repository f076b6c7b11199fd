// Package repo provides the orgs repository implementation.
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daybrief/internal/modkit/repokit"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/store"
	"daybrief/internal/services/api/orgs/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the orgs repository
type Storage interface {
	Insert(ctx context.Context, o domain.Org) error
	GetByID(ctx context.Context, id string) (domain.Org, error)
	GetByProviderTenant(ctx context.Context, tenantID string) (domain.Org, error)
	List(ctx context.Context, offset, limit int) ([]domain.Org, error)
	Count(ctx context.Context) (int, error)
	Counts(ctx context.Context) (domain.OrgCounts, error)
	Update(ctx context.Context, id string, in domain.UpdateOrgInput, now time.Time) (domain.Org, error)
	SettingsGet(ctx context.Context, userID, orgID string) (domain.UserSettings, error)
	SettingsUpsert(ctx context.Context, s domain.UserSettings) error
}

const orgCols = `id::text, name, slug, provider_tenant_id, zone, digest_hour, plan, active, created_at, updated_at`

func scanOrg(r store.Row) (domain.Org, error) {
	var o domain.Org
	err := r.Scan(
		&o.ID, &o.Name, &o.Slug, &o.ProviderTenantID, &o.Zone,
		&o.DigestHour, &o.Plan, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, o domain.Org) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO orgs
			(id, name, slug, provider_tenant_id, zone, digest_hour, plan, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.Name, o.Slug, o.ProviderTenantID, o.Zone,
		o.DigestHour, o.Plan, o.Active, o.CreatedAt, o.UpdatedAt,
	)
	return perr.FromPostgresWithField(err, "insert org")
}

// GetByID implements Storage; a malformed uuid surfaces as invalid argument
func (s *pg) GetByID(ctx context.Context, id string) (domain.Org, error) {
	o, err := store.One(ctx, s.q, scanOrg, `SELECT `+orgCols+` FROM orgs WHERE id = $1::uuid`, id)
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Org{}, perr.FromPostgres(err, "get org")
	}
	return o, err
}

// GetByProviderTenant implements Storage
func (s *pg) GetByProviderTenant(ctx context.Context, tenantID string) (domain.Org, error) {
	return store.One(ctx, s.q, scanOrg, `SELECT `+orgCols+` FROM orgs WHERE provider_tenant_id = $1`, tenantID)
}

// List implements Storage; newest first with a stable id tiebreak
func (s *pg) List(ctx context.Context, offset, limit int) ([]domain.Org, error) {
	return store.Many(ctx, s.q, scanOrg, `
		SELECT `+orgCols+`
		FROM orgs
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2`, offset, limit)
}

// Count implements Storage
func (s *pg) Count(ctx context.Context) (int, error) {
	n, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM orgs`)
	return int(n), err
}

// Counts implements Storage
func (s *pg) Counts(ctx context.Context) (domain.OrgCounts, error) {
	c, err := store.One(ctx, s.q, func(r store.Row) (domain.OrgCounts, error) {
		var c domain.OrgCounts
		err := r.Scan(&c.Total, &c.Active)
		return c, err
	}, `SELECT count(*), count(*) FILTER (WHERE active) FROM orgs`)
	if err != nil {
		return domain.OrgCounts{}, perr.FromPostgres(err, "count orgs")
	}
	return c, nil
}

// Update implements Storage; nil input fields are left untouched
func (s *pg) Update(ctx context.Context, id string, in domain.UpdateOrgInput, now time.Time) (domain.Org, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("UPDATE orgs SET updated_at = " + arg(now))
	if in.Name != nil {
		sb.WriteString(", name = " + arg(*in.Name))
	}
	if in.Zone != nil {
		sb.WriteString(", zone = " + arg(*in.Zone))
	}
	if in.DigestHour != nil {
		sb.WriteString(", digest_hour = " + arg(*in.DigestHour))
	}
	if in.Plan != nil {
		sb.WriteString(", plan = " + arg(*in.Plan))
	}
	if in.Active != nil {
		sb.WriteString(", active = " + arg(*in.Active))
	}
	sb.WriteString(" WHERE id = " + arg(id) + "::uuid RETURNING " + orgCols)

	o, err := store.One(ctx, s.q, scanOrg, sb.String(), args...)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Org{}, err
		}
		return domain.Org{}, perr.FromPostgresWithField(err, "update org")
	}
	return o, nil
}

// SettingsGet implements Storage
func (s *pg) SettingsGet(ctx context.Context, userID, orgID string) (domain.UserSettings, error) {
	us, err := store.One(ctx, s.q, func(r store.Row) (domain.UserSettings, error) {
		var us domain.UserSettings
		err := r.Scan(&us.UserID, &us.OrgID, &us.Zone, &us.DigestEnabled, &us.UpdatedAt)
		return us, err
	}, `
		SELECT user_id, org_id::text, zone, digest_enabled, updated_at
		FROM user_settings
		WHERE user_id = $1 AND org_id = $2::uuid`, userID, orgID)
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.UserSettings{}, perr.FromPostgres(err, "get user settings")
	}
	return us, err
}

// SettingsUpsert implements Storage
func (s *pg) SettingsUpsert(ctx context.Context, us domain.UserSettings) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO user_settings (user_id, org_id, zone, digest_enabled, updated_at)
		VALUES ($1,$2::uuid,$3,$4,$5)
		ON CONFLICT (user_id, org_id) DO UPDATE
			SET zone = excluded.zone, digest_enabled = excluded.digest_enabled, updated_at = excluded.updated_at`,
		us.UserID, us.OrgID, us.Zone, us.DigestEnabled, us.UpdatedAt,
	)
	return perr.FromPostgresWithField(err, "upsert user settings")
}
