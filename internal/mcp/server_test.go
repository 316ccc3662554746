package mcp

import (
	"context"
	"testing"
)

// TestSessionKeyFromContextDefault verifies the local default when no key is
// set in the context.
func TestSessionKeyFromContextDefault(t *testing.T) {
	if key := SessionKeyFromContext(context.Background()); key != defaultSessionKey {
		t.Errorf("SessionKeyFromContext(empty) = %q, want %q", key, defaultSessionKey)
	}
}

// TestSessionKeyFromContextSet verifies the key round-trips through
// WithSessionKey.
func TestSessionKeyFromContextSet(t *testing.T) {
	ctx := WithSessionKey(context.Background(), "ts:alice@example.com")
	if key := SessionKeyFromContext(ctx); key != "ts:alice@example.com" {
		t.Errorf("SessionKeyFromContext = %q", key)
	}
}

// TestParseRPEList verifies the comma-separated RPE parsing used by the
// reflection tool.
func TestParseRPEList(t *testing.T) {
	got, err := parseRPEList("6, 7,5,8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{6, 7, 5, 8}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rpes[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got, err := parseRPEList("   "); err != nil || got != nil {
		t.Errorf("blank input = %v, %v; want nil, nil", got, err)
	}
	if _, err := parseRPEList("6,hard,5"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}
