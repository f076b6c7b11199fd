package domain

// CreateOrgInput is the payload for registering an organization
type CreateOrgInput struct {
	Name             string `json:"name" validate:"required,min=1,max=200" example:"Fabrikam Robotics"`
	Slug             string `json:"slug,omitempty" validate:"omitempty,min=1,max=80,lowercase" example:"fabrikam-robotics"`
	ProviderTenantID string `json:"provider_tenant_id" validate:"required,min=1,max=120" example:"b7a9c1e4-33f2-4bfa-9c51-7e2d0a8f66d1"`
	Zone             string `json:"zone,omitempty" validate:"omitempty,max=64" example:"America/New_York"`
	DigestHour       *int   `json:"digest_hour,omitempty" validate:"omitempty,min=0,max=23" example:"7"`
	Plan             string `json:"plan,omitempty" validate:"omitempty,oneof=free team enterprise" example:"team"`
}

// UpdateOrgInput is a partial update; nil fields are left untouched
type UpdateOrgInput struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200" example:"Fabrikam Robotics"`
	Zone       *string `json:"zone,omitempty" validate:"omitempty,max=64" example:"America/Chicago"`
	DigestHour *int    `json:"digest_hour,omitempty" validate:"omitempty,min=0,max=23" example:"8"`
	Plan       *string `json:"plan,omitempty" validate:"omitempty,oneof=free team enterprise" example:"enterprise"`
	Active     *bool   `json:"active,omitempty" example:"true"`
}

// PutSettingsInput replaces the caller's per-org settings
type PutSettingsInput struct {
	Zone          string `json:"zone,omitempty" validate:"omitempty,max=64" example:"America/Denver"`
	DigestEnabled bool   `json:"digest_enabled" example:"true"`
}

// OrgPage is one page of orgs plus the cursor for the next one
type OrgPage struct {
	Items      []Org  `json:"items"`
	Total      int    `json:"total"`
	NextCursor string `json:"next_cursor,omitempty"`
}
