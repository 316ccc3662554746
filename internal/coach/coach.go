// Package coach wraps the Anthropic Messages API for plan generation,
// motivational text, and plan-aware Q&A. Everything the provider returns is
// treated as untrusted input and re-validated through the rules engine; any
// provider failure degrades to rules-only output.
package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/rules"
)

// ErrProviderUnavailable marks any failure to obtain usable AI output. It is
// surfaced to the user as a non-fatal notice; the rules-based plan remains
// displayable without AI content.
var ErrProviderUnavailable = errors.New("AI provider unavailable")

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
)

// Config holds the provider settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// Client is the AI coach. It satisfies plan.Generator.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a coach client. It fails only on missing credentials; callers
// run without a coach in that case and fall back to template plans.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api_key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     model,
		maxTokens: int64(maxTokens),
		log:       log,
	}, nil
}

var _ plan.Generator = (*Client)(nil)

// Sessions asks the provider for a week of sessions and normalizes the
// response: days are deduplicated across the week, intensities are mapped to
// known tiers, durations are clamped through the rules engine, and unit
// loads are recomputed from the canonical formula.
func (c *Client) Sessions(ctx context.Context, req plan.Request) ([]plan.Session, error) {
	text, err := c.complete(ctx, planSystemPrompt, planPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	raw, err := parseSessions(text)
	if err != nil {
		c.log.Warn("unparseable plan response", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	sessions := make([]plan.Session, 0, req.SessionsPerWeek)
	usedDays := make(map[string]bool)

	for _, item := range raw {
		if len(sessions) >= req.SessionsPerWeek {
			break
		}

		day := pickDay(item.Day, usedDays)
		intensity := rules.ParseIntensity(item.Intensity)
		duration := rules.ClampDuration(item.DurationMin)

		focus := item.Focus
		if focus == "" {
			focus = fmt.Sprintf("%s session", req.Sport)
		}

		notes := item.Notes
		notes += fmt.Sprintf(
			"\n\nIf anything feels sharp, unusual or worrying, stop or reduce intensity. Context to remember: %s.",
			orNone(req.Contraindications))

		sessions = append(sessions, plan.Session{
			Day:         day,
			Focus:       focus,
			Intensity:   intensity,
			DurationMin: duration,
			UnitLoad:    rules.UnitLoad(duration, intensity),
			Notes:       notes,
		})
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: provider returned no sessions", ErrProviderUnavailable)
	}
	return sessions, nil
}

// complete performs a single-shot system+user exchange and concatenates the
// text blocks of the reply.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var out string
	for _, block := range resp.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out, nil
}

// pickDay normalizes a day name and resolves collisions by walking forward
// through the week until a free day is found.
func pickDay(day string, used map[string]bool) string {
	if plan.DayIndex(day) >= len(plan.DaysOrder) {
		day = "Mon"
	}
	base := plan.DayIndex(day)
	for offset := 0; offset < len(plan.DaysOrder); offset++ {
		candidate := plan.DaysOrder[(base+offset)%len(plan.DaysOrder)]
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
	return day
}

func orNone(s string) string {
	if s == "" {
		return "no specific issues noted"
	}
	return s
}
