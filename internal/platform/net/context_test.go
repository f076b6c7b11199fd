package net_test

import (
	"context"
	"testing"

	pnet "daybrief/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "org-abc")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.OrgID(ctx); got != "org-abc" {
			t.Fatalf("OrgID got %q want %q", got, "org-abc")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.OrgID(ctx); got != "" {
			t.Fatalf("OrgID got %q want empty", got)
		}
	})

	t.Run("sets only org id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "o-only")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.OrgID(ctx); got != "o-only" {
			t.Fatalf("OrgID got %q want %q", got, "o-only")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.OrgID(ctx); got != "" {
			t.Fatalf("OrgID got %q want empty", got)
		}
	})
}

func TestWithIdentity_SetsAllFields(t *testing.T) {
	ctx := pnet.WithIdentity(context.Background(), pnet.Identity{
		UserID: "u-1",
		OrgID:  "org-1",
		Token:  "tok-raw",
	})

	if got := pnet.UserID(ctx); got != "u-1" {
		t.Fatalf("UserID got %q want %q", got, "u-1")
	}
	if got := pnet.OrgID(ctx); got != "org-1" {
		t.Fatalf("OrgID got %q want %q", got, "org-1")
	}
	if got := pnet.Token(ctx); got != "tok-raw" {
		t.Fatalf("Token got %q want %q", got, "tok-raw")
	}
}

func TestWithToken_EmptyIsNoop(t *testing.T) {
	base := context.Background()
	if ctx := pnet.WithToken(base, ""); ctx != base {
		t.Fatalf("expected ctx unchanged for empty token")
	}
	if got := pnet.Token(base); got != "" {
		t.Fatalf("Token got %q want empty", got)
	}
}
