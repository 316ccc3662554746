// coachplan-mcp runs the CoachPlan MCP server over stdio so local assistants
// can generate plans against their own in-memory store.
package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/coachplan/internal/coach"
	"github.com/claude/coachplan/internal/config"
	"github.com/claude/coachplan/internal/mcp"
	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	storeDSN := flag.String("store-dsn", config.DefaultStoreDSN, "SQLite DSN for the session store")
	model := flag.String("model", "", "Anthropic model override (ANTHROPIC_API_KEY enables the AI coach)")
	flag.Parse()

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("CoachPlan MCP starting", "version", Version)

	db, err := storage.New(*storeDSN)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var generator plan.Generator
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		client, err := coach.New(coach.Config{APIKey: key, Model: *model}, log)
		if err != nil {
			log.Error("failed to create coach client", "error", err)
			os.Exit(1)
		}
		generator = client
		log.Info("AI coach enabled")
	} else {
		log.Info("AI coach disabled, plans are rules-only")
	}

	composer := plan.NewComposer(generator, log)
	s := mcp.New(db, composer, Version, log)

	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
