// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "daybrief/internal/platform/errors"
	pnet "daybrief/internal/platform/net"
)

// VerifyFunc resolves a raw bearer token into a caller identity.
// Implementations may fill OrgID with an empty string for users without an org
type VerifyFunc func(ctx context.Context, token string) (pnet.Identity, error)

// Port implements middleware.AuthPort. The browser app sends the provider
// token in a session cookie; API clients send Authorization Bearer instead.
// The cookie wins when both are present
type Port struct {
	cookie string
	verify VerifyFunc
}

// NewPortFunc builds a Port from a verifier and the session cookie name.
// cookie may be empty to accept header tokens only
func NewPortFunc(cookie string, fn VerifyFunc) *Port {
	return &Port{cookie: cookie, verify: fn}
}

// Parse extracts the bearer token and verifies it.
// returns unauthorized when no token is present, the header is malformed, or the verifier rejects it
func (p *Port) Parse(r *http.Request) (pnet.Identity, error) {
	raw := p.bearer(r)
	if raw == "" {
		return pnet.Identity{}, perrs.Unauthorizedf("missing bearer token")
	}

	if p.verify == nil {
		return pnet.Identity{}, perrs.Unauthorizedf("invalid bearer token")
	}

	id, err := p.verify(r.Context(), raw)
	if err != nil {
		return pnet.Identity{}, perrs.Unauthorizedf("invalid bearer token")
	}
	// keep the raw token so handlers can forward it upstream
	id.Token = raw
	return id, nil
}

// bearer prefers the session cookie, then falls back to Authorization Bearer
func (p *Port) bearer(r *http.Request) string {
	if p.cookie != "" {
		if c, err := r.Cookie(p.cookie); err == nil {
			if v := strings.TrimSpace(c.Value); v != "" {
				return v
			}
		}
	}

	// normalize whitespace around the whole header
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return ""
	}
	ls := strings.ToLower(s)
	const prefix = "bearer"
	if !strings.HasPrefix(ls, prefix) {
		return ""
	}
	// slice after "Bearer" (no trailing space required), then trim any spaces before token
	return strings.TrimSpace(s[len(prefix):])
}
