// Package voice is a thin client for an OpenAI-compatible speech synthesis
// endpoint. It turns the motivational message into MP3 audio; failures are
// non-fatal and the plan renders without audio.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini-tts"
	defaultVoice   = "alloy"

	speechPath = "/v1/audio/speech"
)

// Config holds the synthesis provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

// Client calls the speech endpoint over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
}

// New creates a voice client. An API key is required; base URL, model, and
// voice fall back to the OpenAI defaults.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("voice api_key not configured")
	}
	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		voice:   cfg.Voice,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.voice == "" {
		c.voice = defaultVoice
	}
	return c, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize converts text to MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	data, err := json.Marshal(speechRequest{Model: c.model, Voice: c.voice, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+speechPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech request failed (status %d): %s", resp.StatusCode, body)
	}
	return body, nil
}
