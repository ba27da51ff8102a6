// internal/store/store.go
//
// Persistence interfaces and records.
// Responsibilities:
//   - Runs: evaluation reports, optionally owned by a user.
//   - Users: accounts for the HTTP API.
//   - Daily: one cached solver result per date.
//
// Implementations: SQLite (durable, sqlite.go) and memory (runs only, memory.go).

package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/robalobadob/wordle-solver/internal/evaluate"
	"github.com/robalobadob/wordle-solver/internal/game"
)

var (
	// ErrNotFound is returned for unknown IDs, usernames and dates.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by CreateUser for a duplicate (case-insensitive) name.
	ErrUsernameTaken = errors.New("username taken")
)

// Run is one persisted evaluation.
type Run struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	Strategy  string          `json:"strategy"`
	CreatedAt time.Time       `json:"createdAt"`
	Report    evaluate.Report `json:"report"`
}

// Runs persists evaluation runs.
type Runs interface {
	// SaveRun stores r, assigning ID and CreatedAt when empty.
	SaveRun(ctx context.Context, r *Run) error
	// GetRun returns a run including its per-game results.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns the newest runs first, without per-game results.
	// An empty userID lists every run.
	ListRuns(ctx context.Context, userID string, limit int) ([]Run, error)
}

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Users persists accounts.
type Users interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
}

// DailyResult is the solver's game on one date's word.
type DailyResult struct {
	Date      string      `json:"date"`
	WordIndex int         `json:"wordIndex"`
	Result    game.Result `json:"result"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Daily caches the solver's daily results.
type Daily interface {
	// SaveDaily inserts d; a second result for the same date is ignored.
	SaveDaily(ctx context.Context, d DailyResult) error
	GetDaily(ctx context.Context, date string) (*DailyResult, error)
}

// NewID creates a 22-char URL-safe, crypto-random identifier (no padding).
func NewID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
