// internal/evaluate/evaluate.go
//
// Evaluation harness: plays a player against a list of solutions and scores it.
// Responsibilities:
//   - Run one game per solution with a fresh player (one constraint state per game).
//   - Spread games over a bounded worker pool (errgroup with SetLimit).
//   - Aggregate average rounds, win rate and certainty, rounded to 2 decimals.
//
// Notes:
//   - Cancelling ctx stops scheduling; games already finished still make up the
//     returned (partial) report, alongside ctx.Err().
//   - The word set and any shared letter table are read-only, so the factory may
//     hand them to every player without locking.

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/stats"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Factory builds a fresh player for one game.
type Factory func() game.Player

// Options configures a run.
type Options struct {
	RoundsPerGame int
	Extended      bool
	Workers       int       // <= 0 uses GOMAXPROCS
	Progress      io.Writer // progress bar destination; nil disables it
}

// Report aggregates a run.
type Report struct {
	AvgRounds float64       `json:"avgRounds"`
	WinRate   float64       `json:"winRate"`   // percent of games won within the budget
	Certainty float64       `json:"certainty"` // mean of 100/candidates at the winning round
	Games     int           `json:"games"`
	Elapsed   time.Duration `json:"elapsed"`
	Results   []game.Result `json:"results,omitempty"`
}

// Run plays every solution and returns the report.
func Run(ctx context.Context, ws *words.WordSet, solutions []string, newPlayer Factory, opts Options) (Report, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(solutions),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("evaluating"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)
	}

	results := make([]game.Result, len(solutions))
	done := make([]bool, len(solutions))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, sol := range solutions {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res, err := game.Play(ctx, ws, sol, newPlayer(), game.PlayOptions{
				RoundsPerGame: opts.RoundsPerGame,
				Extended:      opts.Extended,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return fmt.Errorf("solution %q: %w", sol, err)
			}
			results[i], done[i] = res, true
			log.Debug().
				Str("solution", sol).
				Int("rounds", res.Rounds).
				Bool("won", res.Won).
				Int("candidates", res.PotentialSolutions).
				Msg("game")
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	finished := make([]game.Result, 0, len(results))
	for i, ok := range done {
		if ok {
			finished = append(finished, results[i])
		}
	}
	rep := Summarize(finished)
	rep.Elapsed = time.Since(start)

	if err == nil {
		err = ctx.Err()
	}
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Int("games", rep.Games).
		Int("requested", len(solutions)).
		Float64("avgRounds", rep.AvgRounds).
		Float64("winRate", rep.WinRate).
		Float64("certainty", rep.Certainty).
		Dur("elapsed", rep.Elapsed).
		Msg("evaluation finished")
	return rep, err
}

// Summarize aggregates already played games.
func Summarize(results []game.Result) Report {
	rep := Report{Games: len(results), Results: results}
	if len(results) == 0 {
		return rep
	}
	rounds := make([]int, len(results))
	certainty := make([]float64, len(results))
	wins := 0
	for i, r := range results {
		rounds[i] = r.Rounds
		if r.Won {
			wins++
		}
		if solved(r) && r.PotentialSolutions > 0 {
			certainty[i] = 100 / float64(r.PotentialSolutions)
		}
	}
	rep.AvgRounds = stats.Round2(stats.Mean(rounds))
	rep.WinRate = stats.Round2(float64(wins) / float64(len(results)) * 100)
	rep.Certainty = stats.Round2(stats.Mean(certainty))
	return rep
}

func solved(r game.Result) bool {
	n := len(r.Guesses)
	return n > 0 && r.Guesses[n-1].Word == r.Solution
}
