// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver endpoints: assist sessions, one-shot play, word of the day.
//   - Auth endpoints and the gated evaluation endpoint; run history.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The dictionary and global letter table are read-only and shared by every request;
//     each solver session or game owns its own player state.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/player"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config holds the server's tunables; see the root config for env names.
type Config struct {
	Strategy       player.Config
	Extended       bool          // play past the round budget in /solver/play and /daily
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	SecureCookies  bool
	DailySalt      string
	EvalWorkers    int
	EvalTimeout    time.Duration
	EvalMaxGames   int
	RequestTimeout time.Duration
}

func (c *Config) defaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
	}
	if c.JWTExpiresDays <= 0 {
		c.JWTExpiresDays = 14
	}
	if c.CookieName == "" {
		c.CookieName = "solver_token"
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.DailySalt == "" {
		c.DailySalt = "local_dev_salt"
	}
	if c.EvalTimeout <= 0 {
		c.EvalTimeout = 2 * time.Minute
	}
	if c.EvalMaxGames <= 0 {
		c.EvalMaxGames = 500
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.Strategy == (player.Config{}) {
		c.Strategy = player.DefaultConfig()
	}
}

// Deps are the server's collaborators. DB may be nil: auth, evaluation, run
// history and the daily cache are then unavailable.
type Deps struct {
	Dict     *words.Dictionary
	Global   *rubric.Table // built from Dict.Allowed when nil
	Sessions *store.Sessions
	DB       *store.SQLite
}

// Server bundles router and dependencies.
type Server struct {
	r        *chi.Mux
	cfg      Config
	dict     *words.Dictionary
	global   *rubric.Table
	sessions *store.Sessions
	runs     store.Runs
	users    store.Users
	daily    store.Daily
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, deps Deps) *Server {
	cfg.defaults()
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		dict:     deps.Dict,
		global:   deps.Global,
		sessions: deps.Sessions,
	}
	if s.global == nil {
		s.global = rubric.Build(deps.Dict.Allowed)
	}
	if s.sessions == nil {
		s.sessions = store.NewSessions()
	}
	if deps.DB != nil {
		s.runs, s.users, s.daily = deps.DB, deps.DB, deps.DB
	} else {
		s.runs = store.NewMemoryRuns()
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog()...)  // zerolog request logger
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "wordle-solver",
				"endpoints": []string{
					"/health", "POST /solver/sessions", "POST /solver/sessions/{id}/feedback",
					"POST /solver/play", "/daily", "/auth/*", "POST /evaluate", "/runs",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.dict.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
		})

		s.mountSolver(r)
		s.mountDaily(r)
		s.mountAuthRoutes(r)
		s.mountRuns(r)
	})

	// Evaluation manages its own deadline and returns partial reports.
	s.r.With(s.requireAuth()).Post("/evaluate", s.handleEvaluate)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decode reads a JSON body into v; an empty body leaves v unchanged.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
