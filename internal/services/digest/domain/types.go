// Package domain holds digest run records and worker ports
package domain

import "time"

// RunDateLayout is the civil date form runs are keyed by, org-local
const RunDateLayout = "2006-01-02"

// Run statuses recorded in digest_runs
const (
	RunStatusOK      = "ok"
	RunStatusFailed  = "failed"
	RunStatusSkipped = "skipped"
)

// Run is one digest delivery attempt for a user on an org-local date
type Run struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	UserID      string    `json:"user_id"`
	RunDate     string    `json:"run_date"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Status      string    `json:"status"`
	Model       string    `json:"model,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
