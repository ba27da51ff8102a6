// internal/httpserver/routes_runs.go
//
// Evaluation runs.
//   - POST /evaluate   (auth) → evaluate the strategy over the first {limit} answers, store the run
//   - GET  /runs       → newest runs; ?mine=1 restricts to the caller
//   - GET  /runs/{id}  → one run with per-game results
//
// An evaluation that hits its deadline still stores and returns the games it finished.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-solver/internal/evaluate"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/store"
)

const (
	defaultEvalGames = 50
	strategyName     = "staged"
)

func (s *Server) mountRuns(r chi.Router) {
	r.With(s.withOptionalAuth()).Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
}

type evaluateReq struct {
	Limit   int `json:"limit"`
	Workers int `json:"workers"`
}

type evaluateRes struct {
	Run     *store.Run `json:"run"`
	Partial bool       `json:"partial"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answers := s.dict.Answers()
	limit := req.Limit
	if limit <= 0 {
		limit = defaultEvalGames
	}
	limit = min(limit, s.cfg.EvalMaxGames, len(answers))
	workers := req.Workers
	if workers <= 0 {
		workers = s.cfg.EvalWorkers
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.EvalTimeout)
	defer cancel()

	rep, err := evaluate.Run(ctx, s.dict.Allowed, answers[:limit],
		func() game.Player { return s.newStrategy() },
		evaluate.Options{RoundsPerGame: s.cfg.Strategy.RoundsPerGame, Extended: true, Workers: workers})
	partial := errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
	if err != nil && !partial {
		s.solverError(w, r, err)
		return
	}

	run := &store.Run{UserID: currentUser(r).ID, Strategy: strategyName, Report: rep}
	// detached from the request so a client hang-up still keeps the partial run
	if err := s.runs.SaveRun(context.WithoutCancel(r.Context()), run); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save run")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	hlog.FromRequest(r).Info().Str("run", run.ID).Int("games", rep.Games).Bool("partial", partial).Msg("evaluation stored")
	writeJSON(w, http.StatusOK, evaluateRes{Run: run, Partial: partial})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if r.URL.Query().Get("mine") != "" {
		me := currentUser(r)
		if me == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		userID = me.ID
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.ListRuns(r.Context(), userID, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("get run")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, run)
}
