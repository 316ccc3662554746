package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	coachplan "github.com/claude/coachplan"
	"github.com/claude/coachplan/internal/coach"
	"github.com/claude/coachplan/internal/config"
	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/server"
	"github.com/claude/coachplan/internal/storage"
	"github.com/claude/coachplan/internal/voice"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("CoachPlan starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open session store (in-memory by default; discarded on shutdown)
	db, err := storage.New(cfg.Store.DSN)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("session store ready", "dsn", cfg.Store.DSN)

	// AI coach is optional; without it every plan is rules-only.
	var coachClient *coach.Client
	var generator plan.Generator
	var coachIface server.Coach
	if cfg.Anthropic.APIKey != "" {
		coachClient, err = coach.New(coach.Config{
			APIKey:    cfg.Anthropic.APIKey,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
		}, log)
		if err != nil {
			log.Error("failed to create coach client", "error", err)
			os.Exit(1)
		}
		generator = coachClient
		coachIface = coachClient
		log.Info("AI coach enabled", "model", cfg.Anthropic.Model)
	} else {
		log.Info("AI coach disabled, plans are rules-only")
	}

	var voiceIface server.Synthesizer
	if cfg.Voice.Enabled {
		voiceClient, err := voice.New(voice.Config{
			APIKey:  cfg.Voice.APIKey,
			BaseURL: cfg.Voice.BaseURL,
			Model:   cfg.Voice.Model,
			Voice:   cfg.Voice.Voice,
		})
		if err != nil {
			log.Error("failed to create voice client", "error", err)
			os.Exit(1)
		}
		voiceIface = voiceClient
		log.Info("voice synthesis enabled")
	}

	composer := plan.NewComposer(generator, log)

	// Create server
	srv := server.New(db, composer, coachIface, voiceIface, cfg.Auth.APIKey, log)

	// Serve embedded frontend
	webDist, err := fs.Sub(coachplan.WebFS, "web/dist")
	if err != nil {
		log.Error("failed to load embedded frontend", "error", err)
		os.Exit(1)
	}
	srv.SetFrontend(webDist)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
