// internal/player/strategy.go
//
// Staged solving strategy.
//
//   round 1                          → best probe over the full list ("reduce initial")
//   pool small enough to brute-force → top-ranked candidate ("guess")
//   round < ReduceUntilRound         → probe scored by a pool-weighted table ("reduce from guess")
//   round ≤ GuessAndReduceUntilRound → best consistent unique-letter word ("guess and reduce")
//   otherwise                        → top-ranked candidate ("guess final")
//
// A stage that yields nothing falls through to the next one.

package player

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Reasons reported with each guess.
const (
	ReasonReduceInitial   = "reduce initial"
	ReasonGuess           = "guess"
	ReasonReduceFromGuess = "reduce from guess"
	ReasonGuessAndReduce  = "guess and reduce"
	ReasonGuessFinal      = "guess final"
)

// Config tunes the Strategy stages.
type Config struct {
	RoundsPerGame            int
	ReduceUntilRound         int // probe with a pool-weighted table before this round
	GuessAndReduceUntilRound int // last round for unique-letter guesses
	CandidatesMultiplier     int // pool table weight in the merge
	GlobalMultiplier         int // global table weight in the merge
}

// DefaultConfig returns the stage boundaries the strategy was tuned with.
func DefaultConfig() Config {
	return Config{
		RoundsPerGame:            game.DefaultRows,
		ReduceUntilRound:         3,
		GuessAndReduceUntilRound: 5,
		CandidatesMultiplier:     1,
		GlobalMultiplier:         1,
	}
}

// Strategy is the staged heuristic player.
type Strategy struct {
	*Computer
	cfg Config
}

// NewStrategy returns a Strategy for one game over ws.
func NewStrategy(ws *words.WordSet, global *rubric.Table, cfg Config) *Strategy {
	if cfg.CandidatesMultiplier+cfg.GlobalMultiplier <= 0 {
		cfg.CandidatesMultiplier, cfg.GlobalMultiplier = 1, 1
	}
	return &Strategy{Computer: NewComputer(ws, global, cfg.RoundsPerGame), cfg: cfg}
}

// Guess proposes the next word.
func (s *Strategy) Guess() (game.Guess, error) {
	s.round++

	if s.round == 1 {
		r, err := solver.Reduce(s.wordlist, s.global, s.state, 0)
		if err != nil {
			return game.Guess{}, err
		}
		if r.Found() {
			return s.propose(r.Top(), ReasonReduceInitial), nil
		}
	}

	pool, err := solver.Solutions(s.potential, s.state)
	if err != nil {
		return game.Guess{}, err
	}
	ranked, err := solver.RankSolutions(pool, s.global)
	if err != nil {
		return game.Guess{}, err
	}
	s.potential = pool
	if ranked.Count == 0 {
		return game.Guess{}, fmt.Errorf("round %d: %w", s.round, ErrNoCandidates)
	}

	if ranked.Count <= s.roundsPerGame-s.round+1 {
		return s.propose(ranked.Top(), ReasonGuess), nil
	}

	if s.round < s.cfg.ReduceUntilRound {
		merged, err := rubric.Merge(rubric.Build(pool), s.global,
			s.cfg.CandidatesMultiplier, s.cfg.GlobalMultiplier)
		if err != nil {
			return game.Guess{}, err
		}
		r, err := solver.Reduce(s.wordlist, merged, s.state, 0)
		if err != nil {
			return game.Guess{}, err
		}
		if r.Found() {
			return s.propose(r.Top(), ReasonReduceFromGuess), nil
		}
	}

	if s.round <= s.cfg.GuessAndReduceUntilRound {
		g, err := solver.Guess(s.uniqueWords(), s.global, s.state)
		if err != nil {
			return game.Guess{}, err
		}
		if g.Count > 0 {
			return s.propose(g.Top(), ReasonGuessAndReduce), nil
		}
	}

	return s.propose(ranked.Top(), ReasonGuessFinal), nil
}

func (s *Strategy) propose(w, reason string) game.Guess {
	return game.Guess{Word: w, Reason: reason, Candidates: s.potential.Len()}
}
