// Package repo provides clickhouse access for usage events
package repo

import (
	"context"
	"time"

	"daybrief/internal/platform/store"
	"daybrief/internal/services/usage/domain"
)

const table = "usage_events"

// Storage defines the usage repository
type Storage interface {
	InsertEvents(ctx context.Context, evs []domain.Event) error
	Trailing(ctx context.Context, now time.Time) (domain.Trailing, error)
	OrgWindow(ctx context.Context, orgID string, start, end time.Time) (domain.WindowTotals, error)
}

// NewCH constructs the clickhouse-backed storage
func NewCH(ch store.Clickhouse) Storage {
	if ch == nil {
		panic("usage.repo requires a non nil clickhouse")
	}
	return &chStore{ch: ch}
}

type chStore struct{ ch store.Clickhouse }

// InsertEvents implements Storage; rows follow the table column order
func (s *chStore) InsertEvents(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		rows = append(rows, []any{
			e.TS.UTC(), e.OrgID, e.UserID, e.Route, e.Kind, e.Status,
			e.DurationMS, e.PromptTokens, e.CompletionTokens, e.RequestID,
		})
	}
	return s.ch.Insert(ctx, table, rows)
}

// Trailing implements Storage
func (s *chStore) Trailing(ctx context.Context, now time.Time) (domain.Trailing, error) {
	var out domain.Trailing

	day := now.Add(-24 * time.Hour).UTC()
	week := now.Add(-7 * 24 * time.Hour).UTC()

	ev24, err := s.ch.ScalarUInt64(ctx, `
		SELECT toUInt64(count())
		FROM `+table+`
		WHERE ts >= ?`, day)
	if err != nil {
		return out, err
	}
	ev7, err := s.ch.ScalarUInt64(ctx, `
		SELECT toUInt64(count())
		FROM `+table+`
		WHERE ts >= ?`, week)
	if err != nil {
		return out, err
	}

	rows, err := s.ch.Query(ctx, `
		SELECT kind, toUInt64(count()) AS c
		FROM `+table+`
		WHERE ts >= ?
		GROUP BY kind
		ORDER BY kind`, day)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	var byKind []domain.KindCount
	for rows.Next() {
		var kc domain.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return out, err
		}
		byKind = append(byKind, kc)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	out.Events24h = ev24
	out.Events7d = ev7
	out.ByKind24h = byKind
	return out, nil
}

// OrgWindow implements Storage; the window bounds are inclusive instants
func (s *chStore) OrgWindow(ctx context.Context, orgID string, start, end time.Time) (domain.WindowTotals, error) {
	var out domain.WindowTotals

	rows, err := s.ch.Query(ctx, `
		SELECT
			toUInt64(count()),
			toUInt64(sum(duration_ms)),
			toUInt64(sum(prompt_tokens)),
			toUInt64(sum(completion_tokens))
		FROM `+table+`
		WHERE org_id = ? AND ts >= ? AND ts <= ?`,
		orgID, start.UTC(), end.UTC())
	if err != nil {
		return out, err
	}
	defer rows.Close()

	if !rows.Next() {
		return out, rows.Err()
	}
	if err := rows.Scan(&out.Events, &out.DurationMS, &out.PromptTokens, &out.CompletionTokens); err != nil {
		return out, err
	}
	return out, rows.Err()
}
