// internal/store/sqlite.go
//
// SQLite-backed Runs, Users and Daily.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Reading and writing runs (summary row + one row per game), users and daily results.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite implements Runs, Users and Daily.
type SQLite struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at dsn and migrates it.
// ":memory:" gives a private in-memory database.
func Open(dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/solver.db, etc.
	if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// migrate applies the embedded migrations in lexical order.
//
//   - Uses a _migrations table to track applied files.
//   - Scripts that manage their own transaction (BEGIN TRANSACTION or
//     PRAGMA FOREIGN_KEYS=OFF) run outside of an outer transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		name := filepath.Base(f)
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		sqlText := string(sqlBytes)

		upper := strings.ToUpper(sqlText)
		selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

		if selfManaged {
			if _, err := db.Exec(sqlText); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("record %s: %w", name, err)
			}
			log.Info().Str("migration", name).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(sqlText); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// ------------------------------- runs --------------------------------------

func (s *SQLite) SaveRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	rep := r.Report

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs (id, user_id, strategy, created_at, games, avg_rounds, win_rate, certainty, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullable(r.UserID), r.Strategy, r.CreatedAt.Format(time.RFC3339),
		rep.Games, rep.AvgRounds, rep.WinRate, rep.Certainty, rep.Elapsed.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO run_games (run_id, seq, solution, rounds, won, candidates, guesses)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, g := range rep.Results {
		guesses, err := json.Marshal(g.Guesses)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, r.ID, i, g.Solution, g.Rounds, g.Won, g.PotentialSolutions, string(guesses)); err != nil {
			return fmt.Errorf("insert run game %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, COALESCE(user_id,''), strategy, created_at, games, avg_rounds, win_rate, certainty, elapsed_ms
        FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT solution, rounds, won, candidates, guesses
        FROM run_games WHERE run_id=? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	r.Report.Results = []game.Result{}
	for rows.Next() {
		var g game.Result
		var guesses string
		if err := rows.Scan(&g.Solution, &g.Rounds, &g.Won, &g.PotentialSolutions, &guesses); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guesses), &g.Guesses); err != nil {
			return nil, fmt.Errorf("decode guesses for %q: %w", g.Solution, err)
		}
		r.Report.Results = append(r.Report.Results, g)
	}
	return r, rows.Err()
}

func (s *SQLite) ListRuns(ctx context.Context, userID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT id, COALESCE(user_id,''), strategy, created_at, games, avg_rounds, win_rate, certainty, elapsed_ms
          FROM runs`
	args := []any{}
	if userID != "" {
		q += ` WHERE user_id=?`
		args = append(args, userID)
	}
	q += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	var created string
	var elapsedMs int64
	if err := row.Scan(&r.ID, &r.UserID, &r.Strategy, &created,
		&r.Report.Games, &r.Report.AvgRounds, &r.Report.WinRate, &r.Report.Certainty, &elapsedMs); err != nil {
		return nil, err
	}
	r.CreatedAt = parseTime(created)
	r.Report.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &r, nil
}

// ------------------------------- users -------------------------------------

func (s *SQLite) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	u := &User{
		ID:           NewID(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLite) UserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at
	                                  FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (s *SQLite) UserByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at
	                                  FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row scanner) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	u.CreatedAt = parseTime(created)
	return &u, nil
}

// ------------------------------- daily -------------------------------------

func (s *SQLite) SaveDaily(ctx context.Context, d DailyResult) error {
	res, err := json.Marshal(d.Result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (date, word_index, result)
        VALUES (?, ?, ?)`, d.Date, d.WordIndex, string(res))
	return err
}

func (s *SQLite) GetDaily(ctx context.Context, date string) (*DailyResult, error) {
	var d DailyResult
	var res, created string
	err := s.db.QueryRowContext(ctx, `
        SELECT date, word_index, result, created_at FROM daily_results WHERE date=?`, date,
	).Scan(&d.Date, &d.WordIndex, &res, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(res), &d.Result); err != nil {
		return nil, fmt.Errorf("decode daily %s: %w", date, err)
	}
	d.CreatedAt = parseTime(created)
	return &d, nil
}

// --------------------------------- util ------------------------------------

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
