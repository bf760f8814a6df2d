package net_test

import (
	"context"
	"testing"

	pnet "chirp/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	ctx := pnet.WithRequest(base, "req-123")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID got %q want %q", got, "req-123")
	}

	if ctx := pnet.WithRequest(base, ""); ctx != base {
		t.Fatalf("expected ctx to be unchanged when id is empty")
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID got %q want empty", got)
	}
}

func TestWithUser(t *testing.T) {
	base := context.Background()
	if pnet.Authenticated(base) || pnet.UserID(base) != "" {
		t.Fatal("empty context must be anonymous")
	}
	if ctx := pnet.WithUser(base, ""); ctx != base {
		t.Fatal("empty user id must not touch ctx")
	}
	ctx := pnet.WithUser(base, "user_2abc")
	if pnet.UserID(ctx) != "user_2abc" || !pnet.Authenticated(ctx) {
		t.Fatalf("UserID = %q", pnet.UserID(ctx))
	}
}
