package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/papersum/internal/config"
	"github.com/dgallion1/papersum/internal/pipeline"
	"github.com/dgallion1/papersum/internal/summarize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const serviceName = "paper-summarizer-api"

// Server is the HTTP API server for papersum.
type Server struct {
	router     chi.Router
	pipeline   *pipeline.Pipeline
	simplifier summarize.Simplifier
	stats      *summarize.LLMStats
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server. simplifier and stats may
// be nil when no collaborator is configured.
func NewServer(p *pipeline.Pipeline, simplifier summarize.Simplifier, stats *summarize.LLMStats, log *slog.Logger, cfg config.Config) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		pipeline:   p,
		simplifier: simplifier,
		stats:      stats,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Public endpoints.
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/favicon.ico", s.handleFavicon)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/summarize", s.handleSummarize)
		r.Get("/summarize-get", s.handleSummarizeGet)
		r.Post("/extract", s.handleExtract)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Paper Summarizer API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/summarize":     "POST - Summarize a research paper from URL",
			"/summarize-get": "GET - Summarize a research paper from URL (browser-friendly)",
			"/extract":       "POST - Summarize an uploaded XML or HTML document",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": serviceName})
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
