// internal/httpserver/routes_daily.go
//
// GET /daily → the solver's game on today's word.
//
// The word is picked deterministically from date + salt. With a database the
// first result of the day is cached and served to every later caller.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/store"
)

type dailyRes struct {
	Date   string            `json:"date"`
	Cached bool              `json:"cached"`
	Daily  store.DailyResult `json:"daily"`
}

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	date := daily.DateKey(now)

	if s.daily != nil {
		d, err := s.daily.GetDaily(r.Context(), date)
		if err == nil {
			writeJSON(w, http.StatusOK, dailyRes{Date: date, Cached: true, Daily: *d})
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			hlog.FromRequest(r).Warn().Err(err).Str("date", date).Msg("read daily")
		}
	}

	word, idx := daily.Word(now, s.cfg.DailySalt, s.dict.Answers())
	res, err := s.play(r, word)
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	d := store.DailyResult{Date: date, WordIndex: idx, Result: res, CreatedAt: now}
	if s.daily != nil {
		if err := s.daily.SaveDaily(r.Context(), d); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("date", date).Msg("save daily")
		}
	}
	writeJSON(w, http.StatusOK, dailyRes{Date: date, Daily: d})
}
