package coach

import (
	"context"
	"strings"

	"github.com/claude/coachplan/internal/plan"
)

// FallbackMessage is shown whenever a motivational message cannot be
// generated. The plan itself never depends on it.
const FallbackMessage = "This week is about consistent, safe work. Focus on clean technique, " +
	"controlled breathing, and honest pacing. If anything feels sharp, " +
	"unusual or worrying, ease back or rest instead of forcing it. " +
	"Small, steady sessions will build confidence and fitness over time."

// Motivate returns a short motivational message for the week. Provider
// failures degrade to FallbackMessage; this call never fails.
func (c *Client) Motivate(ctx context.Context, p *plan.WeeklyPlan) string {
	if p == nil {
		return FallbackMessage
	}
	text, err := c.complete(ctx, motivateSystemPrompt, motivatePrompt(p))
	if err != nil {
		c.log.Warn("motivational message failed, using fallback", "error", err)
		return FallbackMessage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackMessage
	}
	return text
}

// Answer replies to a user question in the context of the current plan.
// Provider failures degrade to the canned keyword answers.
func (c *Client) Answer(ctx context.Context, question string, p *plan.WeeklyPlan) string {
	if strings.TrimSpace(question) == "" {
		return "Please type a question about your plan, training load, RPE, or safety."
	}
	text, err := c.complete(ctx, questionContext(p), question)
	if err != nil {
		c.log.Warn("question answering failed, using canned answer", "error", err)
		return CannedAnswer(question)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return CannedAnswer(question)
	}
	return text
}

// CannedAnswer is the rules-only Q&A used when no provider is configured or
// reachable. It recognizes the common RPE/load/safety questions and
// otherwise explains what the assistant can help with.
func CannedAnswer(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.TrimSpace(question) == "":
		return "Please type a question about your plan, training load, RPE, or safety."
	case strings.Contains(q, "rpe") || strings.Contains(q, "effort"):
		return "RPE stands for Rate of Perceived Exertion, from 1 (very easy) to 10 (maximum effort). " +
			"Choose the number that best matches how hard the session felt overall."
	case strings.Contains(q, "load"):
		return "Unit load combines how long and how hard you worked. Roughly: " +
			"longer sessions and harder efforts mean higher load. It helps keep weekly increases safe."
	case strings.Contains(q, "safe") || strings.Contains(q, "injury"):
		return "Sessions are kept between about 20-60 minutes and weekly increases in load are limited. " +
			"It is still important to listen to your body and stop if anything feels sharp or worrying."
	default:
		return "This coach focuses on safe training structure: sessions, effort, and weekly progression. " +
			"It cannot give medical advice. You can ask about RPE, load, why rest days appear, " +
			"or how to think about progression."
	}
}
