// Package domain holds the admin dashboard read models
package domain

import (
	"time"

	orgsdom "daybrief/internal/services/api/orgs/domain"
	digestdom "daybrief/internal/services/digest/domain"
	usagedom "daybrief/internal/services/usage/domain"
)

// Overview is the dashboard landing rollup
type Overview struct {
	Orgs  orgsdom.OrgCounts `json:"orgs"`
	Usage usagedom.Trailing `json:"usage"`
}

// DayBucket is one local calendar day of usage for one org. Start and End are
// the UTC bounds of that civil day in the org's zone, so buckets stay one
// local day wide across DST transitions
type DayBucket struct {
	Date   string                `json:"date"`
	Label  string                `json:"label"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Totals usagedom.WindowTotals `json:"totals"`
}

// OrgUsage is the per-day usage series for one org, oldest bucket first
type OrgUsage struct {
	OrgID string      `json:"org_id"`
	Zone  string      `json:"zone"`
	Days  []DayBucket `json:"days"`
}

// OrgDigests is one org's digest run history, newest first
type OrgDigests struct {
	OrgID string          `json:"org_id"`
	Runs  []digestdom.Run `json:"runs"`
}
