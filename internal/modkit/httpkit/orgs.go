package httpkit

import (
	"net/http"

	pnet "daybrief/internal/platform/net"
)

// OrgPort validates the caller's org, e.g. that it exists and is active
type OrgPort interface {
	Validate(r *http.Request, orgID string) error
}

// OrgScope is middleware that validates the org id from context using the port
func OrgScope(p OrgPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			oid := pnet.OrgID(r.Context())
			if err := p.Validate(r, oid); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
