package ident

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AppCredentials configures app-only access for headless workers
type AppCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// AppTokenSource returns a self-refreshing token source using the client
// credentials grant. The digest worker uses this to send mail without a user
func AppTokenSource(ctx context.Context, c AppCredentials) oauth2.TokenSource {
	cfg := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
	return cfg.TokenSource(ctx)
}

// StaticTokenSource wraps a fixed token, handy for tests and local dev
func StaticTokenSource(tok string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
}
