package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSynthesize verifies the request shape against a mock speech endpoint
// and that the raw audio body comes back.
func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var req speechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "gpt-4o-mini-tts" || req.Voice != "alloy" {
			t.Errorf("defaults not applied: %+v", req)
		}
		if req.Input != "nice work this week" {
			t.Errorf("input = %q", req.Input)
		}
		w.Write([]byte("ID3fake-mp3-bytes"))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	audio, err := c.Synthesize(context.Background(), "nice work this week")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "ID3fake-mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
}

// TestSynthesizeProviderError verifies non-200 responses surface as errors.
func TestSynthesizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Synthesize(context.Background(), "hello"); err == nil {
		t.Error("expected error for 429 response")
	}
}

// TestNewRequiresAPIKey verifies construction fails without a key.
func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing api key")
	}
}

// TestSynthesizeEmptyText verifies empty input is rejected before any HTTP
// call.
func TestSynthesizeEmptyText(t *testing.T) {
	c, err := New(Config{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Synthesize(context.Background(), ""); err == nil {
		t.Error("expected error for empty text")
	}
}
