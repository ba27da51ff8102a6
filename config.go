// config.go
//
// Process configuration.
//
// Precedence (lowest first):
//   1. Built-in defaults.
//   2. Optional YAML file named by SOLVER_CONFIG (strategy tuning).
//   3. Environment variables (a .env file is loaded into the environment by main).

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/player"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config is everything the subcommands need.
type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string // "json" | "console"

	Words    words.LoadOptions
	Strategy player.Config
	Extended bool
	Workers  int

	Server httpserver.Config
}

// fileConfig is the YAML layout of SOLVER_CONFIG.
type fileConfig struct {
	LettersPerWord           int   `yaml:"letters_per_word"`
	RoundsPerGame            int   `yaml:"rounds_per_game"`
	Extended                 *bool `yaml:"extended"`
	ReduceUntilRound         int   `yaml:"reduce_until_round"`
	GuessAndReduceUntilRound int   `yaml:"guess_and_reduce_until_round"`
	MergeMultipliers         struct {
		Candidates int `yaml:"candidates"`
		Global     int `yaml:"global"`
	} `yaml:"merge_multipliers"`
	StrictWords bool `yaml:"strict_words"`
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:      "5175",
		DBPath:    "./data/solver.db",
		LogLevel:  "info",
		LogFormat: "json",
		Words:     words.LoadOptions{LettersPerWord: words.DefaultLettersPerWord},
		Strategy:  player.DefaultConfig(),
		Extended:  true,
	}

	if path := os.Getenv("SOLVER_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Words.AnswersFile = getEnv("WORDS_ANSWERS_FILE", "")
	cfg.Words.AllowedFile = getEnv("WORDS_ALLOWED_FILE", "")
	cfg.Words.Strict = getEnvBool("WORDS_STRICT", cfg.Words.Strict)
	cfg.Workers = getEnvInt("EVAL_WORKERS", 0)

	cfg.Server = httpserver.Config{
		Strategy:       cfg.Strategy,
		Extended:       cfg.Extended,
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "solver_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SecureCookies:  os.Getenv("NODE_ENV") == "production",
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		EvalWorkers:    cfg.Workers,
		EvalTimeout:    getEnvDuration("EVAL_TIMEOUT", 2*time.Minute),
	}
	return cfg, nil
}

// applyFile overrides defaults with the non-zero values of a YAML file.
func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	setInt(&c.Words.LettersPerWord, f.LettersPerWord)
	setInt(&c.Strategy.RoundsPerGame, f.RoundsPerGame)
	setInt(&c.Strategy.ReduceUntilRound, f.ReduceUntilRound)
	setInt(&c.Strategy.GuessAndReduceUntilRound, f.GuessAndReduceUntilRound)
	setInt(&c.Strategy.CandidatesMultiplier, f.MergeMultipliers.Candidates)
	setInt(&c.Strategy.GlobalMultiplier, f.MergeMultipliers.Global)
	if f.Extended != nil {
		c.Extended = *f.Extended
	}
	c.Words.Strict = c.Words.Strict || f.StrictWords
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getEnvBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k))); err == nil {
		return b
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
