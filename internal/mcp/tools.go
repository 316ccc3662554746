package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/coachplan/internal/feedback"
	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/rules"
)

// --- Tool definitions ---

var toolGeneratePlan = mcp.NewTool("generate_plan",
	mcp.WithDescription("Generate a validated weekly training plan. Sessions are bounded to 20-60 minutes and total weekly load is capped at +10% over the prior week; violations are repaired, not rejected."),
	mcp.WithString("sport", mcp.Required(), mcp.Description("Sport (e.g. 'Boxing', 'Running', 'Generic conditioning')")),
	mcp.WithString("level", mcp.Description("Athlete level: novice, intermediate, or advanced. Defaults to novice."), mcp.Enum("novice", "intermediate", "advanced")),
	mcp.WithNumber("sessions_per_week", mcp.Description("Number of sessions, 1-7. Defaults to 3.")),
	mcp.WithNumber("last_week_load", mcp.Description("Prior week's total unit load. Defaults to the session's stored history.")),
	mcp.WithString("contraindications", mcp.Description("Known issues to be careful with (e.g. 'knee pain')")),
)

var toolGetCurrentPlan = mcp.NewTool("get_current_plan",
	mcp.WithDescription("Return the session's current weekly plan, or an error when none has been generated yet."),
)

var toolComputeUnitLoad = mcp.NewTool("compute_unit_load",
	mcp.WithDescription("Compute the unit load for one session: intensity factor (Easy=1, Moderate=2, Hard=3) times duration in minutes."),
	mcp.WithNumber("duration_min", mcp.Required(), mcp.Description("Session duration in minutes")),
	mcp.WithString("intensity", mcp.Required(), mcp.Description("Session intensity"), mcp.Enum("Easy", "Moderate", "Hard")),
)

var toolValidateProgression = mcp.NewTool("validate_progression",
	mcp.WithDescription("Check a proposed weekly total against the +10% progression ceiling over the prior week. Returns the ceiling and whether the proposal fits."),
	mcp.WithNumber("prior_total", mcp.Required(), mcp.Description("Prior week's total unit load (0 means no prior week)")),
	mcp.WithNumber("proposed_total", mcp.Required(), mcp.Description("Proposed week's total unit load")),
)

var toolSummarizeReflection = mcp.NewTool("summarize_reflection",
	mcp.WithDescription("Summarize a completed week: adherence percentage, mean RPE over completed sessions, and a qualitative label (on track / overreaching / off track / ready to progress)."),
	mcp.WithNumber("total_sessions", mcp.Required(), mcp.Description("Number of sessions planned for the week")),
	mcp.WithNumber("completed", mcp.Required(), mcp.Description("Number of sessions completed")),
	mcp.WithString("rpes", mcp.Description("Comma-separated RPE values (1-10) for completed sessions, e.g. '6,7,5,8'")),
)

// --- Tool handlers ---

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sport, err := req.RequireString("sport")
	if err != nil {
		return mcp.NewToolResultError("sport parameter is required"), nil
	}

	sessionKey := SessionKeyFromContext(ctx)

	planReq := plan.Request{
		Sport:             sport,
		Level:             req.GetString("level", "novice"),
		SessionsPerWeek:   req.GetInt("sessions_per_week", 3),
		LastWeekLoad:      req.GetFloat("last_week_load", 0),
		Contraindications: req.GetString("contraindications", ""),
	}

	if planReq.LastWeekLoad <= 0 {
		prior, err := h.db.LatestTotalLoad(ctx, sessionKey)
		if err != nil {
			h.log.Error("mcp generate_plan prior load", "error", err)
			return mcp.NewToolResultError("prior load lookup failed: " + err.Error()), nil
		}
		planReq.LastWeekLoad = prior
	}

	p := h.composer.Compose(ctx, planReq)
	if err := h.db.SavePlan(ctx, sessionKey, p); err != nil {
		h.log.Error("mcp generate_plan save", "error", err)
		return mcp.NewToolResultError("plan save failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := h.db.CurrentPlan(ctx, SessionKeyFromContext(ctx))
	if err != nil {
		return mcp.NewToolResultError("no plan generated yet"), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) computeUnitLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	duration := req.GetInt("duration_min", 0)
	intensityStr, err := req.RequireString("intensity")
	if err != nil {
		return mcp.NewToolResultError("intensity parameter is required"), nil
	}

	intensity := rules.ParseIntensity(intensityStr)
	clamped := rules.ClampDuration(duration)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"duration_min": clamped,
		"intensity":    intensity,
		"unit_load":    rules.UnitLoad(clamped, intensity),
		"was_clamped":  clamped != duration,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) validateProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prior := req.GetFloat("prior_total", 0)
	proposed := req.GetFloat("proposed_total", 0)

	verr := rules.ValidateProgression(prior, proposed)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"prior_total":    prior,
		"proposed_total": proposed,
		"max_allowed":    rules.MaxAllowedLoad(prior),
		"ok":             verr == nil,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) summarizeReflection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total := req.GetInt("total_sessions", 0)
	completed := req.GetInt("completed", 0)
	if total <= 0 {
		return mcp.NewToolResultError("total_sessions must be positive"), nil
	}
	if completed < 0 || completed > total {
		return mcp.NewToolResultError("completed must be between 0 and total_sessions"), nil
	}

	rpes, err := parseRPEList(req.GetString("rpes", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid rpes: " + err.Error()), nil
	}

	entries := make([]feedback.Entry, 0, total)
	for i := 0; i < total; i++ {
		e := feedback.Entry{Completed: i < completed}
		if e.Completed && i < len(rpes) {
			e.RPE = rpes[i]
		}
		entries = append(entries, e)
	}

	result, err := mcp.NewToolResultJSON(feedback.Summarize(entries))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func parseRPEList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	rpes := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		rpes = append(rpes, v)
	}
	return rpes, nil
}
