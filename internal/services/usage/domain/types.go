// Package domain holds usage event types and ports
package domain

import (
	"context"
	"time"

	tw "daybrief/internal/core/timewindow"
)

// Kinds stamped on usage events
const (
	KindBriefing = "briefing"
	KindQuery    = "query"
	KindDraft    = "draft"
	KindCalendar = "calendar"
	KindInbox    = "inbox"
	KindDigest   = "digest"
)

// Statuses stamped on usage events
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Event is one metered operation
type Event struct {
	TS               time.Time `json:"ts"`
	OrgID            string    `json:"org_id"`
	UserID           string    `json:"user_id"`
	Route            string    `json:"route"`
	Kind             string    `json:"kind"`
	Status           string    `json:"status"`
	DurationMS       uint64    `json:"duration_ms"`
	PromptTokens     uint32    `json:"prompt_tokens"`
	CompletionTokens uint32    `json:"completion_tokens"`
	RequestID        string    `json:"request_id"`
}

// KindCount is a per-kind tally
type KindCount struct {
	Kind  string `json:"kind"`
	Count uint64 `json:"count"`
}

// Trailing summarizes recent activity across all orgs
type Trailing struct {
	Events24h uint64      `json:"events_24h"`
	Events7d  uint64      `json:"events_7d"`
	ByKind24h []KindCount `json:"by_kind_24h"`
}

// WindowTotals is usage aggregated over one window
type WindowTotals struct {
	Events           uint64 `json:"events"`
	DurationMS       uint64 `json:"duration_ms"`
	PromptTokens     uint64 `json:"prompt_tokens"`
	CompletionTokens uint64 `json:"completion_tokens"`
}

// RecorderPort accepts events without blocking the request path
type RecorderPort interface {
	Record(ev Event)
}

// ReaderPort serves usage rollups for the admin surface
type ReaderPort interface {
	Trailing(ctx context.Context) (Trailing, error)
	OrgWindow(ctx context.Context, orgID string, w tw.Window) (WindowTotals, error)
}

// FlusherPort is the background loop that drains recorded events
type FlusherPort interface {
	Run(ctx context.Context) error
}
