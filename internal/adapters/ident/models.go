package ident

import "time"

// UserInfo is a partial provider userinfo document with fields we use
type UserInfo struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Identity is a caller confirmed against the provider.
// ProviderTenantID is the provider's directory id, not a daybrief org id;
// the orgs service maps one to the other
type Identity struct {
	UserID           string
	ProviderTenantID string
	Email            string
	DisplayName      string
	Expiry           time.Time
}
