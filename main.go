// main.go
//
// Command-line entry point.
//
//	solver serve                               HTTP API
//	solver solve [-answer W]                   watch the solver play one game
//	solver assist                              get suggestions for a game played elsewhere
//	solver play [-answer W]                    play yourself in the terminal
//	solver evaluate [-limit N] [-workers K] [-save]
//	solver daily                               the solver's game on today's word

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/evaluate"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/player"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const usage = `usage: solver <command> [flags]

commands:
  serve      run the HTTP API
  solve      let the solver play one game (-answer to fix the word)
  assist     suggest guesses for a game played elsewhere
  play       play a game yourself (-answer to fix the word)
  evaluate   score the solver over the answers list (-limit, -workers, -save)
  daily      the solver's game on today's word
`

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func setupLogging(cfg Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func run(ctx context.Context, cfg Config, cmd string, args []string) error {
	dict, err := words.Load(cfg.Words)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	a, g := dict.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	global := rubric.Build(dict.Allowed)

	switch cmd {
	case "serve":
		return serve(ctx, cfg, dict, global)
	case "solve":
		return solve(ctx, cfg, dict, global, args)
	case "assist":
		return assist(cfg, dict, global, os.Stdin, os.Stdout)
	case "play":
		return play(ctx, cfg, dict, args)
	case "evaluate":
		return evaluateCmd(ctx, cfg, dict, global, args)
	case "daily":
		return dailyCmd(ctx, cfg, dict, global)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serve(ctx context.Context, cfg Config, dict *words.Dictionary, global *rubric.Table) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	sessions := store.NewSessions()
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := sessions.Prune(time.Hour); n > 0 {
					log.Info().Int("sessions", n).Msg("pruned idle sessions")
				}
			}
		}
	}()

	srv := httpserver.New(cfg.Server, httpserver.Deps{Dict: dict, Global: global, Sessions: sessions, DB: db})
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting solver server")
	return srv.Start(":" + cfg.Port)
}

func solve(ctx context.Context, cfg Config, dict *words.Dictionary, global *rubric.Table, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	answer := fs.String("answer", "", "word to solve (random answer when empty)")
	_ = fs.Parse(args)

	if *answer == "" {
		*answer = dict.RandomAnswer()
	}
	res, err := game.Play(ctx, dict.Allowed, *answer, player.NewStrategy(dict.Allowed, global, cfg.Strategy),
		game.PlayOptions{RoundsPerGame: cfg.Strategy.RoundsPerGame, Extended: cfg.Extended})
	if err != nil {
		return err
	}
	printTranscript(os.Stdout, res)
	return nil
}

func printTranscript(w io.Writer, res game.Result) {
	for i, g := range res.Guesses {
		fmt.Fprintf(w, "%2d  %s  %-18s %d candidates\n", i+1,
			player.Tiles(g.Word, game.DeriveFeedback(g.Word, res.Solution)), g.Reason, g.Candidates)
	}
	status := "lost"
	if res.Won {
		status = "won"
	}
	fmt.Fprintf(w, "%s: %s in %d rounds\n", res.Solution, status, res.Rounds)
}

// assist reads "marks" or "word marks" lines for each suggestion.
func assist(cfg Config, dict *words.Dictionary, global *rubric.Table, in io.Reader, out io.Writer) error {
	s := player.NewStrategy(dict.Allowed, global, cfg.Strategy)
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, "Enter the colours you got (g=green, y=yellow, b=grey), optionally after the word you played.")

	for {
		g, err := s.Guess()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Try %s (%s, %d candidates)\n> ", strings.ToUpper(g.Word), g.Reason, g.Candidates)

		for {
			if !sc.Scan() {
				return sc.Err()
			}
			fields := strings.Fields(sc.Text())
			word, marksText := g.Word, ""
			switch len(fields) {
			case 1:
				marksText = fields[0]
			case 2:
				word, marksText = strings.ToLower(fields[0]), fields[1]
			default:
				fmt.Fprint(out, "expected: [word] marks\n> ")
				continue
			}
			marks, err := game.ParseMarks(marksText)
			if err == nil && len(word) != dict.Allowed.LettersPerWord() {
				err = game.ErrInvalidGuess
			}
			if err != nil {
				fmt.Fprintf(out, "%v\n> ", err)
				continue
			}
			fb, err := game.FeedbackFromMarks(word, marks)
			if err != nil {
				fmt.Fprintf(out, "%v\n> ", err)
				continue
			}
			fmt.Fprintln(out, player.Tiles(word, fb))
			if game.MarkString(marks) == strings.Repeat("g", len(word)) {
				fmt.Fprintf(out, "Solved in %d rounds.\n", s.Round())
				return nil
			}
			if err := s.CheckLetters(fb); err != nil {
				fmt.Fprintf(out, "%v\n> ", err)
				continue
			}
			break
		}
	}
}

func play(ctx context.Context, cfg Config, dict *words.Dictionary, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	answer := fs.String("answer", "", "word to guess (random answer when empty)")
	_ = fs.Parse(args)

	if *answer == "" {
		*answer = dict.RandomAnswer()
	}
	h := player.NewHuman(dict.Allowed, os.Stdin, os.Stdout)
	res, err := game.Play(ctx, dict.Allowed, *answer, h,
		game.PlayOptions{RoundsPerGame: cfg.Strategy.RoundsPerGame})
	if errors.Is(err, io.EOF) {
		fmt.Println()
		return nil
	}
	if err != nil {
		return err
	}
	if res.Won {
		fmt.Printf("You got it in %d!\n", res.Rounds)
	} else {
		fmt.Printf("The word was %s.\n", strings.ToUpper(res.Solution))
	}
	return nil
}

func evaluateCmd(ctx context.Context, cfg Config, dict *words.Dictionary, global *rubric.Table, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	limit := fs.Int("limit", 0, "evaluate only the first N answers (0 = all)")
	workers := fs.Int("workers", cfg.Workers, "concurrent games (0 = GOMAXPROCS)")
	save := fs.Bool("save", false, "store the run in the database")
	_ = fs.Parse(args)

	answers := dict.Answers()
	if *limit > 0 && *limit < len(answers) {
		answers = answers[:*limit]
	}
	factory := func() game.Player { return player.NewStrategy(dict.Allowed, global, cfg.Strategy) }

	rep, err := evaluate.Run(ctx, dict.Allowed, answers, factory, evaluate.Options{
		RoundsPerGame: cfg.Strategy.RoundsPerGame,
		Extended:      cfg.Extended,
		Workers:       *workers,
		Progress:      os.Stderr,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if *save {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		run := &store.Run{Strategy: "staged", Report: rep}
		if err := db.SaveRun(context.WithoutCancel(ctx), run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Info().Str("run", run.ID).Msg("run saved")
	}

	rep.Results = nil
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func dailyCmd(ctx context.Context, cfg Config, dict *words.Dictionary, global *rubric.Table) error {
	now := time.Now()
	word, idx := daily.Word(now, cfg.Server.DailySalt, dict.Answers())
	res, err := game.Play(ctx, dict.Allowed, word, player.NewStrategy(dict.Allowed, global, cfg.Strategy),
		game.PlayOptions{RoundsPerGame: cfg.Strategy.RoundsPerGame, Extended: cfg.Extended})
	if err != nil {
		return err
	}
	fmt.Printf("Daily %s (#%d)\n", daily.DateKey(now), idx)
	printTranscript(os.Stdout, res)
	return nil
}
