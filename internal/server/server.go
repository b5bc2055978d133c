// Package server exposes the narration session and the configured providers
// over an HTTP API.
//
// The API has two halves: editor endpoints under /api/session/ that read and
// mutate the working text and voice settings, and provider endpoints
// (/api/analyze-files, /api/generate-audio, /api/generate-music,
// /api/available-voices) that call out to external services. Errors use a
// uniform JSON envelope: {"error":{"code","message","details"}}.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awaaz-ai/awaaz/internal/config"
	"github.com/awaaz-ai/awaaz/internal/health"
	"github.com/awaaz-ai/awaaz/internal/observe"
	"github.com/awaaz-ai/awaaz/internal/session"
	"github.com/awaaz-ai/awaaz/internal/voice"
	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
	"github.com/awaaz-ai/awaaz/pkg/provider/music"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

// Config holds everything the HTTP API needs. Session and Catalogs are
// required; a nil provider disables its endpoints with a 503 response.
type Config struct {
	// Session is the narration session all endpoints operate on.
	Session *session.Session

	// Catalogs backs the /api/available-voices listing.
	Catalogs voice.CatalogSet

	// Analyze handles document analysis. Nil disables /api/analyze-files.
	Analyze analyze.Provider

	// TTS handles speech synthesis. Nil disables /api/generate-audio.
	TTS tts.Provider

	// Music handles background track generation. Nil disables
	// /api/generate-music.
	Music *music.Client

	// AnalyzeName, TTSName and MusicName are the configured provider names,
	// used as metric attributes.
	AnalyzeName string
	TTSName     string
	MusicName   string

	// Uploads bounds the analyze-files multipart input.
	Uploads config.UploadsConfig

	// Health, when set, registers /healthz and /readyz on the handler.
	Health *health.Handler

	// Metrics records request instrumentation. Nil falls back to the
	// globally registered meter provider.
	Metrics *observe.Metrics
}

// Server is the HTTP API. Construct with [New]; the zero value is not usable.
type Server struct {
	cfg     Config
	metrics *observe.Metrics

	mu      sync.Mutex
	blocked bool
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	m := cfg.Metrics
	if m == nil {
		m = observe.DefaultMetrics()
	}
	return &Server{cfg: cfg, metrics: m}
}

// Handler returns the complete HTTP handler: all API routes, the health
// endpoints when configured, the Prometheus /metrics endpoint, and the
// observability middleware wrapped around everything.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	if s.cfg.Health != nil {
		s.cfg.Health.Register(mux)
	}
	mux.Handle("GET /metrics", promhttp.Handler())
	return observe.Middleware(s.metrics)(mux)
}

// Register adds all API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze-files", s.handleAnalyzeFiles)
	mux.HandleFunc("GET /api/available-voices", s.handleAvailableVoices)
	mux.HandleFunc("POST /api/generate-audio", s.handleGenerateAudio)
	mux.HandleFunc("POST /api/generate-music", s.handleGenerateMusic)

	mux.HandleFunc("PUT /api/session/text", s.handleSetText)
	mux.HandleFunc("GET /api/session/tokens", s.handleTokens)
	mux.HandleFunc("GET /api/session/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/session/replace", s.handleReplace)
	mux.HandleFunc("PUT /api/session/settings/{field}", s.handleUpdateSetting)
	mux.HandleFunc("POST /api/session/reset", s.handleReset)
	mux.HandleFunc("GET /api/session/warnings", s.handleWarnings)
}

// syncBlockedGauge reconciles the blocked-sessions gauge with the session's
// gender state. Called after every operation that can change it.
func (s *Server) syncBlockedGauge(ctx context.Context) {
	blocked := s.cfg.Session.GenderState() == voice.GenderBlocked

	s.mu.Lock()
	prev := s.blocked
	s.blocked = blocked
	s.mu.Unlock()

	switch {
	case blocked && !prev:
		s.metrics.BlockedSessions.Add(ctx, 1)
	case !blocked && prev:
		s.metrics.BlockedSessions.Add(ctx, -1)
	}
}
