package service

import (
	"context"

	"daybrief/internal/modkit/repokit"
	perr "daybrief/internal/platform/errors"
	dom "daybrief/internal/services/digest/domain"
	drepo "daybrief/internal/services/digest/repo"
)

const maxRunsPage = 200

// Reader serves digest run history without the worker machinery.
// The api binary wires it into the admin surface
type Reader struct {
	repo drepo.Storage
}

// NewReader constructs the read side
func NewReader(db repokit.TxRunner, binder repokit.Binder[drepo.Storage]) *Reader {
	if db == nil {
		panic("digest.Reader requires a non nil TxRunner")
	}
	if binder == nil {
		panic("digest.Reader requires a non nil Repo binder")
	}
	return &Reader{repo: binder.Bind(db)}
}

// RecentRuns lists an org's latest digest runs, newest first
func (r *Reader) RecentRuns(ctx context.Context, orgID string, limit int) ([]dom.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRunsPage {
		return nil, perr.WithField(perr.InvalidArgf("limit must be at most %d", maxRunsPage), "limit")
	}
	return r.repo.RecentRuns(ctx, orgID, limit)
}
