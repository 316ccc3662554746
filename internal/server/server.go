package server

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale/apitype"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

// Coach is the AI surface the handlers use. It is nil when no provider is
// configured; every handler degrades to rules-only output in that case.
type Coach interface {
	Motivate(ctx context.Context, p *plan.WeeklyPlan) string
	Answer(ctx context.Context, question string, p *plan.WeeklyPlan) string
}

// Synthesizer converts text to audio. Nil when voice is not configured.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// WhoIsClient is the subset of the tsnet local client used to identify
// callers on the tailnet.
type WhoIsClient interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	composer *plan.Composer
	coach    Coach
	voice    Synthesizer
	ts       WhoIsClient
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. coach and voice may
// be nil.
func New(db *storage.DB, composer *plan.Composer, coach Coach, voice Synthesizer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		composer: composer,
		coach:    coach,
		voice:    voice,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale enables identity resolution through the tsnet local client.
// Must be called before serving.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.ts = lc
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Use(s.tailscaleIdentity)
		r.Use(s.sessionMiddleware)

		r.Post("/plan", s.handleGeneratePlan)
		r.Get("/plan", s.handleCurrentPlan)
		r.Get("/plan/history", s.handlePlanHistory)
		r.Get("/plan/pdf", s.handlePlanPDF)

		r.Get("/coach/message", s.handleCoachMessage)
		r.Post("/coach/ask", s.handleAsk)
		r.Post("/coach/voice", s.handleVoice)

		r.Post("/reflection", s.handleReflection)
		r.Get("/reflection", s.handleGetReflection)

		r.Delete("/session", s.handleDeleteSession)
		r.Get("/me", s.handleMe)
	})
}

// SetFrontend mounts the embedded static filesystem. Unmatched routes serve
// index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
