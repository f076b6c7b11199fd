package ident

import (
	"context"
	"crypto/sha256"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	perr "daybrief/internal/platform/errors"
)

const (
	defaultCacheTTL = 2 * time.Minute
	cacheSweepSize  = 1024
)

// tokenClaims is what we screen locally before burning a provider round trip
type tokenClaims struct {
	sub    string
	tenant string
	exp    time.Time
}

// screen pre-parses the JWT without trusting its signature.
// The provider userinfo call is the actual verification; this only rejects
// tokens that are garbled, expired, or missing the claims we need
func screen(raw string, now time.Time) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return tokenClaims{}, perr.Unauthorizedf("malformed bearer token")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return tokenClaims{}, perr.Unauthorizedf("bearer token missing expiry")
	}
	if !exp.Time.After(now) {
		return tokenClaims{}, perr.Unauthorizedf("bearer token expired")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return tokenClaims{}, perr.Unauthorizedf("bearer token missing subject")
	}
	tid, _ := claims["tid"].(string)
	return tokenClaims{sub: sub, tenant: tid, exp: exp.Time}, nil
}

type cacheEntry struct {
	id  Identity
	exp time.Time
}

// Verifier confirms bearer tokens with the provider and caches the result.
// Cache entries are keyed by token hash so raw tokens never sit in memory maps
type Verifier struct {
	c   *Client
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	cache map[[sha256.Size]byte]cacheEntry
}

// NewVerifier builds a Verifier over an ident Client.
// ttl bounds how long a confirmed token is trusted without re-asking the provider
func NewVerifier(c *Client, ttl time.Duration) *Verifier {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Verifier{
		c:     c,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[[sha256.Size]byte]cacheEntry),
	}
}

// Verify screens the token locally, then confirms it against the provider.
// Expired or garbled tokens short-circuit without a network call
func (v *Verifier) Verify(ctx context.Context, raw string) (Identity, error) {
	now := v.now()
	tc, err := screen(raw, now)
	if err != nil {
		return Identity{}, err
	}

	key := sha256.Sum256([]byte(raw))
	if id, ok := v.lookup(key, now); ok {
		return id, nil
	}

	ui, err := v.c.UserInfo(ctx, raw)
	if err != nil {
		return Identity{}, err
	}
	if ui.Subject != "" && ui.Subject != tc.sub {
		return Identity{}, perr.Unauthorizedf("token subject mismatch")
	}

	id := Identity{
		UserID:           tc.sub,
		ProviderTenantID: tc.tenant,
		Email:            ui.Email,
		DisplayName:      ui.Name,
		Expiry:           tc.exp,
	}
	v.store(key, id, now)
	return id, nil
}

func (v *Verifier) lookup(key [sha256.Size]byte, now time.Time) (Identity, bool) {
	v.mu.RLock()
	e, ok := v.cache[key]
	v.mu.RUnlock()
	if !ok || !e.exp.After(now) {
		return Identity{}, false
	}
	return e.id, true
}

func (v *Verifier) store(key [sha256.Size]byte, id Identity, now time.Time) {
	exp := now.Add(v.ttl)
	// never trust a cache entry past the token's own expiry
	if id.Expiry.Before(exp) {
		exp = id.Expiry
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.cache) >= cacheSweepSize {
		for k, e := range v.cache {
			if !e.exp.After(now) {
				delete(v.cache, k)
			}
		}
	}
	v.cache[key] = cacheEntry{id: id, exp: exp}
}
