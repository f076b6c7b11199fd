package service

import (
	"context"
	"time"

	tw "daybrief/internal/core/timewindow"
	"daybrief/internal/services/usage/domain"
	"daybrief/internal/services/usage/repo"
)

// Reader serves usage rollups from clickhouse
type Reader struct {
	repo repo.Storage
	now  func() time.Time
}

// NewReader constructs a reader
func NewReader(st repo.Storage) *Reader {
	if st == nil {
		panic("usage.Reader requires a non nil storage")
	}
	return &Reader{repo: st, now: time.Now}
}

// Trailing implements domain.ReaderPort
func (r *Reader) Trailing(ctx context.Context) (domain.Trailing, error) {
	return r.repo.Trailing(ctx, r.now().UTC())
}

// OrgWindow implements domain.ReaderPort
func (r *Reader) OrgWindow(ctx context.Context, orgID string, w tw.Window) (domain.WindowTotals, error) {
	return r.repo.OrgWindow(ctx, orgID, w.Start, w.End)
}
