// Package repo provides the digest repository implementation.
package repo

import (
	"context"

	"daybrief/internal/modkit/repokit"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/store"
	orgsdom "daybrief/internal/services/api/orgs/domain"
	"daybrief/internal/services/digest/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the digest repository
type Storage interface {
	ActiveOrgs(ctx context.Context) ([]orgsdom.Org, error)
	DigestUsers(ctx context.Context, orgID string) ([]string, error)
	DigestedUsers(ctx context.Context, orgID, runDate string) ([]string, error)
	InsertRun(ctx context.Context, r domain.Run) error
	RecentRuns(ctx context.Context, orgID string, limit int) ([]domain.Run, error)
}

const orgCols = `id::text, name, slug, provider_tenant_id, zone, digest_hour, plan, active, created_at, updated_at`

func scanOrg(r store.Row) (orgsdom.Org, error) {
	var o orgsdom.Org
	err := r.Scan(
		&o.ID, &o.Name, &o.Slug, &o.ProviderTenantID, &o.Zone,
		&o.DigestHour, &o.Plan, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func scanText(r store.Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

// ActiveOrgs implements Storage; deterministic order keeps tick logs readable
func (s *pg) ActiveOrgs(ctx context.Context) ([]orgsdom.Org, error) {
	out, err := store.Many(ctx, s.q, scanOrg, `
		SELECT `+orgCols+`
		FROM orgs
		WHERE active
		ORDER BY created_at, id`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list active orgs")
	}
	return out, nil
}

// DigestUsers implements Storage
func (s *pg) DigestUsers(ctx context.Context, orgID string) ([]string, error) {
	out, err := store.Many(ctx, s.q, scanText, `
		SELECT user_id
		FROM user_settings
		WHERE org_id = $1::uuid AND digest_enabled
		ORDER BY user_id`, orgID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list digest users")
	}
	return out, nil
}

// DigestedUsers implements Storage. Failed runs are excluded so a restart
// inside the delivery hour retries them
func (s *pg) DigestedUsers(ctx context.Context, orgID, runDate string) ([]string, error) {
	out, err := store.Many(ctx, s.q, scanText, `
		SELECT DISTINCT user_id
		FROM digest_runs
		WHERE org_id = $1::uuid AND run_date = $2::date AND status <> $3
		ORDER BY user_id`,
		orgID, runDate, domain.RunStatusFailed)
	if err != nil {
		return nil, perr.FromPostgres(err, "list digested users")
	}
	return out, nil
}

// InsertRun implements Storage
func (s *pg) InsertRun(ctx context.Context, r domain.Run) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO digest_runs
			(id, org_id, user_id, run_date, window_start, window_end, status, model, summary, error, created_at)
		VALUES ($1::uuid,$2::uuid,$3,$4::date,$5,$6,$7,$8,$9,$10,$11)`,
		r.ID, r.OrgID, r.UserID, r.RunDate, r.WindowStart, r.WindowEnd,
		r.Status, r.Model, r.Summary, r.Error, r.CreatedAt,
	)
	return perr.FromPostgresWithField(err, "insert digest run")
}

// RecentRuns implements Storage; newest first for operator inspection
func (s *pg) RecentRuns(ctx context.Context, orgID string, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.Run, error) {
		var run domain.Run
		err := r.Scan(
			&run.ID, &run.OrgID, &run.UserID, &run.RunDate, &run.WindowStart, &run.WindowEnd,
			&run.Status, &run.Model, &run.Summary, &run.Error, &run.CreatedAt,
		)
		return run, err
	}, `
		SELECT id::text, org_id::text, user_id, to_char(run_date, 'YYYY-MM-DD'),
			window_start, window_end, status, model, summary, error, created_at
		FROM digest_runs
		WHERE org_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2`, orgID, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list digest runs")
	}
	return out, nil
}
