// Package domain holds org records and DTOs shared by the http and service layers
package domain

import "time"

// Org is a tenant organization record
type Org struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ProviderTenantID string    `json:"provider_tenant_id"`
	Zone             string    `json:"zone"`
	DigestHour       int       `json:"digest_hour"`
	Plan             string    `json:"plan"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrgCounts is the org tally shown on the admin overview
type OrgCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// UserSettings is a per-user override scoped to one org. Zone empty means
// "inherit the org zone"
type UserSettings struct {
	UserID        string    `json:"user_id"`
	OrgID         string    `json:"org_id"`
	Zone          string    `json:"zone,omitempty"`
	DigestEnabled bool      `json:"digest_enabled"`
	UpdatedAt     time.Time `json:"updated_at"`
}
