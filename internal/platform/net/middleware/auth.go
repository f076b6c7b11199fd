package middleware

import (
	"net/http"

	pnet "daybrief/internal/platform/net"
)

// AuthPort is the seam the identity adapter implements
type AuthPort interface {
	// Parse resolves the caller's identity from the request or returns an error
	Parse(r *http.Request) (pnet.Identity, error)
}

// Auth resolves the caller through the port and stashes user, org and the raw
// bearer token on the request context. A nil port passes through untouched
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			id, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithIdentity(r.Context(), id)))
		})
	}
}
