package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestAPIKeyAuth verifies missing and wrong keys are rejected and the right
// key passes through.
func TestAPIKeyAuth(t *testing.T) {
	inner := newTestServer(t)
	s := New(inner.db, inner.composer, nil, nil, "secret", inner.log)

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"right key", "secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

// TestSessionCookieIssued verifies an anonymous first request gets a session
// cookie so later requests land in the same session.
func TestSessionCookieIssued(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			found = true
			if !c.HttpOnly {
				t.Error("session cookie should be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("no session cookie issued")
	}
}

// TestSessionCookieReused verifies a request carrying the cookie does not get
// a new one.
func TestSessionCookieReused(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "existing-session"})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			t.Errorf("unexpected new session cookie %q", c.Value)
		}
	}
}

// TestSessionIsolationAcrossHeaders verifies two X-Session-ID values see
// independent state.
func TestSessionIsolationAcrossHeaders(t *testing.T) {
	s := newTestServer(t)
	generatePlan(t, s, "alice", planRequestBoxing())

	rec := doJSON(t, s, http.MethodGet, "/api/v1/plan", "bob", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("bob sees alice's plan: status = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/v1/plan", "alice", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("alice lost her plan: status = %d", rec.Code)
	}
}

// TestCORSPreflight verifies OPTIONS requests short-circuit with the CORS
// headers set.
func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plan", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "X-Session-ID") {
		t.Error("X-Session-ID not allowed by CORS")
	}
}
