package httpkit

import (
	"net/http"

	perrs "daybrief/internal/platform/errors"
	pnet "daybrief/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Org returns the authenticated org id from the request context
func Org(r *http.Request) (string, error) {
	oid := pnet.OrgID(r.Context())
	if oid == "" {
		return "", perrs.Unauthorizedf("missing org scope")
	}
	return oid, nil
}

// MustUser returns the authenticated user id or panics
func MustUser(r *http.Request) string {
	uid, err := User(r)
	if err != nil {
		panic(err)
	}
	return uid
}

// MustOrg returns the authenticated org id or panics
func MustOrg(r *http.Request) string {
	oid, err := Org(r)
	if err != nil {
		panic(err)
	}
	return oid
}

// Token returns the raw bearer token stashed on the context by the auth middleware.
// Handlers forward it to upstream providers; it never appears in logs or responses
func Token(r *http.Request) (string, error) {
	tok := pnet.Token(r.Context())
	if tok == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}

// MustToken returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustToken(r *http.Request) string {
	tok, err := Token(r)
	if err != nil {
		panic(err)
	}
	return tok
}
