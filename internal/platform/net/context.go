// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyOrgID  ctxKey = "org_id"
	keyUserID ctxKey = "user_id"
	keyToken  ctxKey = "bearer_token"
)

// Identity is what the auth layer resolves from a request.
// Token is the raw bearer token so handlers can forward it to upstream APIs
type Identity struct {
	UserID string
	OrgID  string
	Token  string
}

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, orgID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if orgID != "" {
		ctx = context.WithValue(ctx, keyOrgID, orgID)
	}
	return ctx
}

// WithUser annotates context with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithToken annotates context with the raw bearer token
func WithToken(ctx context.Context, token string) context.Context {
	if token != "" {
		ctx = context.WithValue(ctx, keyToken, token)
	}
	return ctx
}

// WithIdentity annotates context with everything the auth layer resolved
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = WithUser(ctx, id.UserID)
	ctx = WithRequest(ctx, RequestID(ctx), id.OrgID)
	return WithToken(ctx, id.Token)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// OrgID returns the org id on the context if present
func OrgID(ctx context.Context) string {
	if v, ok := ctx.Value(keyOrgID).(string); ok {
		return v
	}
	return ""
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// Token returns the raw bearer token on the context if present
func Token(ctx context.Context) string {
	if v, ok := ctx.Value(keyToken).(string); ok {
		return v
	}
	return ""
}
