// internal/httpserver/routes_solver.go
//
// Solver endpoints.
//   - POST /solver/sessions               → start an assist session, first suggestion
//   - POST /solver/sessions/{id}/feedback → report marks for a guess, next suggestion
//   - GET  /solver/sessions/{id}          → history and the best remaining candidates
//   - POST /solver/play                   → let the solver play a whole game
//
// An assist session is a live Strategy held in memory: the caller plays a real
// game elsewhere and types back the colours it got.

package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/player"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

const topCandidates = 10

func (s *Server) mountSolver(r chi.Router) {
	r.Route("/solver", func(r chi.Router) {
		r.Post("/sessions", s.handleNewSession)
		r.Post("/sessions/{id}/feedback", s.handleFeedback)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/play", s.handlePlay)
	})
}

// suggestion is the response of the session endpoints.
type suggestion struct {
	SessionID  string  `json:"sessionId"`
	Round      int     `json:"round"`
	Guess      string  `json:"guess,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Candidates int     `json:"candidates"`
	Deviation  float64 `json:"deviation"`
	Solved     bool    `json:"solved"`
}

func (s *Server) newStrategy() *player.Strategy {
	return player.NewStrategy(s.dict.Allowed, s.global, s.cfg.Strategy)
}

// suggest asks the session's player for its next word and records it.
func (s *Server) suggest(sess *store.Session) (suggestion, error) {
	g, err := sess.Player.Guess()
	if err != nil {
		return suggestion{}, err
	}
	sess.Rounds = append(sess.Rounds, store.Round{Guess: g})
	rank, err := solver.RankSolutions(sess.Player.Potential(), s.global)
	if err != nil {
		return suggestion{}, err
	}
	return suggestion{
		SessionID:  sess.ID,
		Round:      len(sess.Rounds),
		Guess:      g.Word,
		Reason:     g.Reason,
		Candidates: g.Candidates,
		Deviation:  rank.Deviation,
	}, nil
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := &store.Session{Player: s.newStrategy()}
	s.sessions.Create(sess)

	var res suggestion
	err := s.sessions.Update(sess.ID, func(sess *store.Session) error {
		var err error
		res, err = s.suggest(sess)
		return err
	})
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	hlog.FromRequest(r).Debug().Str("session", sess.ID).Str("guess", res.Guess).Msg("session started")
	writeJSON(w, http.StatusCreated, res)
}

// feedbackReq carries the marks for the last suggestion, or for Guess if the
// caller played a different word.
type feedbackReq struct {
	Guess string `json:"guess"`
	Marks string `json:"marks"` // e.g. "gybbg"; see game.ParseMarks
}

var errSessionSolved = errors.New("session already solved")

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res suggestion
	err := s.sessions.Update(chi.URLParam(r, "id"), func(sess *store.Session) error {
		if sess.Solved {
			return errSessionSolved
		}
		last := &sess.Rounds[len(sess.Rounds)-1]
		if last.Marks != nil {
			// the previous feedback left nothing to suggest
			return player.ErrNoCandidates
		}
		guess := strings.ToLower(strings.TrimSpace(req.Guess))
		if guess == "" {
			guess = last.Guess.Word
		}
		if len(guess) != s.dict.Allowed.LettersPerWord() {
			return game.ErrInvalidGuess
		}
		marks, err := game.ParseMarks(req.Marks)
		if err != nil {
			return err
		}
		fb, err := game.FeedbackFromMarks(guess, marks)
		if err != nil {
			return err
		}

		record := func() {
			if guess != last.Guess.Word {
				last.Guess = game.Guess{Word: guess, Reason: "entered", Candidates: last.Guess.Candidates}
			}
			last.Marks = marks
		}
		if allHit(marks) {
			record()
			sess.Solved = true
			res = suggestion{SessionID: sess.ID, Round: len(sess.Rounds), Guess: guess, Candidates: 1, Solved: true}
			return nil
		}
		if err := sess.Player.CheckLetters(fb); err != nil {
			return err
		}
		record()
		res, err = s.suggest(sess)
		return err
	})
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// sessionView is the GET /solver/sessions/{id} response.
type sessionView struct {
	SessionID  string        `json:"sessionId"`
	Rounds     []store.Round `json:"rounds"`
	Candidates int           `json:"candidates"`
	Deviation  float64       `json:"deviation"`
	Top        []string      `json:"top"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var view sessionView
	err := s.sessions.View(chi.URLParam(r, "id"), func(sess *store.Session) error {
		pool, err := solver.Solutions(sess.Player.Potential(), sess.Player.State())
		if err != nil {
			return err
		}
		rank, err := solver.RankSolutions(pool, s.global)
		if err != nil {
			return err
		}
		top := rank.Words
		if len(top) > topCandidates {
			top = top[:topCandidates]
		}
		view = sessionView{
			SessionID:  sess.ID,
			Rounds:     append([]store.Round(nil), sess.Rounds...),
			Candidates: rank.Count,
			Deviation:  rank.Deviation,
			Top:        top,
		}
		return nil
	})
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type playReq struct {
	Answer string `json:"answer"` // random answer when empty
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if answer == "" {
		answer = s.dict.RandomAnswer()
	}
	res, err := s.play(r, answer)
	if err != nil {
		s.solverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) play(r *http.Request, answer string) (game.Result, error) {
	return game.Play(r.Context(), s.dict.Allowed, answer, s.newStrategy(), game.PlayOptions{
		RoundsPerGame: s.cfg.Strategy.RoundsPerGame,
		Extended:      s.cfg.Extended,
	})
}

// solverError maps domain errors onto HTTP statuses.
func (s *Server) solverError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidGuess), errors.Is(err, constraint.ErrInvalidFeedback):
		writeError(w, http.StatusBadRequest, "invalid_feedback")
	case errors.Is(err, game.ErrSolutionNotInWordlist):
		writeError(w, http.StatusBadRequest, "answer_not_in_wordlist")
	case errors.Is(err, constraint.ErrContradiction):
		writeError(w, http.StatusUnprocessableEntity, "contradiction")
	case errors.Is(err, player.ErrNoCandidates):
		writeError(w, http.StatusUnprocessableEntity, "no_candidates")
	case errors.Is(err, errSessionSolved):
		writeError(w, http.StatusConflict, "solved")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("solver")
		writeError(w, http.StatusInternalServerError, "solver_error")
	}
}

func allHit(marks []game.Mark) bool {
	for _, m := range marks {
		if m != game.MarkHit {
			return false
		}
	}
	return len(marks) > 0
}
