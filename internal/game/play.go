// internal/game/play.go
//
// The round loop: ask the player for a word, score it against the solution,
// feed the result back, until the word is found or the budget runs out.

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// PlayOptions configures one game.
type PlayOptions struct {
	RoundsPerGame int // budget for a win; DefaultRows if <= 0
	// Extended keeps playing past the budget (up to the word set size) so
	// that slow solvers still report how many rounds they needed.
	Extended bool
}

// Play runs a full game of p against solution. A random answer from ws is
// used when solution is empty.
func Play(ctx context.Context, ws *words.WordSet, solution string, p Player, opts PlayOptions) (Result, error) {
	budget := opts.RoundsPerGame
	if budget <= 0 {
		budget = DefaultRows
	}
	if solution == "" && ws.Len() > 0 {
		solution = ws.At(int(randomIndex(ws.Len())))
	}
	rows := budget
	if opts.Extended && ws.Len() > rows {
		rows = ws.Len()
	}

	g, err := New(ws, solution, rows)
	if err != nil {
		return Result{}, err
	}
	res := Result{Solution: g.Answer}

	for !g.Finished {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		guess, err := p.Guess()
		if err != nil {
			return res, fmt.Errorf("round %d: %w", len(g.Guesses)+1, err)
		}
		marks, state, err := g.ApplyGuess(guess.Word)
		if err != nil {
			return res, fmt.Errorf("round %d: %w", len(g.Guesses)+1, err)
		}
		res.Guesses = append(res.Guesses, guess)

		log.Debug().
			Str("gameId", g.ID).
			Int("round", len(g.Guesses)).
			Str("guess", guess.Word).
			Str("reason", guess.Reason).
			Int("candidates", guess.Candidates).
			Str("marks", MarkString(marks)).
			Msg("round")

		if state == StateWon {
			res.Rounds = len(g.Guesses)
			res.Won = res.Rounds <= budget
			res.PotentialSolutions = guess.Candidates
			return res, nil
		}
		if state == StateLost {
			break
		}

		fb, err := FeedbackFromMarks(g.Guesses[len(g.Guesses)-1], marks)
		if err != nil {
			return res, err
		}
		if err := p.CheckLetters(fb); err != nil {
			return res, fmt.Errorf("round %d feedback: %w", len(g.Guesses), err)
		}
	}

	res.Rounds = rows + 1
	return res, nil
}
