// Package mcp exposes the coaching core as MCP tools so chat assistants can
// generate and inspect plans through the same rules the HTTP API enforces.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

type contextKey int

const sessionKeyCtx contextKey = iota

// defaultSessionKey scopes state when the transport provides no identity,
// e.g. a local stdio session.
const defaultSessionKey = "mcp-local"

// SessionKeyFromContext extracts the session key injected by the transport.
func SessionKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(sessionKeyCtx).(string); ok && key != "" {
		return key
	}
	return defaultSessionKey
}

// WithSessionKey returns a context with the given session key.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyCtx, key)
}

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, composer *plan.Composer, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachPlan training plan server. Generate safety-bounded weekly training plans, check load progression, and summarize adherence reflections. Sessions stay within 20-60 minutes and weekly load grows at most 10% over the prior week."),
	)

	h := &handlers{db: db, composer: composer, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolGetCurrentPlan, Handler: h.getCurrentPlan},
		server.ServerTool{Tool: toolComputeUnitLoad, Handler: h.computeUnitLoad},
		server.ServerTool{Tool: toolValidateProgression, Handler: h.validateProgression},
		server.ServerTool{Tool: toolSummarizeReflection, Handler: h.summarizeReflection},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentPlan, Handler: h.currentPlan},
		server.ServerResource{Resource: resPlanHistory, Handler: h.planHistory},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db       *storage.DB
	composer *plan.Composer
	log      *slog.Logger
}

// --- Resource definitions ---

var resCurrentPlan = mcp.NewResource(
	"coachplan://current_plan",
	"Current Plan",
	mcp.WithResourceDescription("The session's current weekly training plan with per-session durations, intensities, and unit loads"),
	mcp.WithMIMEType("application/json"),
)

var resPlanHistory = mcp.NewResource(
	"coachplan://plan_history",
	"Plan History",
	mcp.WithResourceDescription("All weekly plans generated in this session, in chronological order"),
	mcp.WithMIMEType("application/json"),
)
