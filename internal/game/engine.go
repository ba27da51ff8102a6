// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new games for a known answer and round budget.
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The allowed list is the dictionary's WordSet; the answer must be in it,
//     otherwise a win is unachievable.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultRows is the classic number of guesses.
const DefaultRows = 6

var (
	ErrSolutionNotInWordlist = errors.New("solution not in wordlist, win is unachievable")
	ErrGameFinished          = errors.New("game finished")
	ErrInvalidGuess          = errors.New("invalid guess")
	ErrNotInWordList         = errors.New("not in word list")
)

// New constructs a new game instance over the allowed word set.
// rows <= 0 selects DefaultRows.
func New(allowed *words.WordSet, answer string, rows int) (*Game, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if !allowed.Contains(answer) {
		return nil, fmt.Errorf("%w: %q", ErrSolutionNotInWordlist, answer)
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		ID:      randomID(),
		Answer:  answer,
		Rows:    rows,
		Cols:    allowed.LettersPerWord(),
		Guesses: []string{},
		allowed: allowed,
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the per‑letter marks, the new state ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters and alphabetic a–z.
//   - Guess must be present in the allowed list.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]Mark, string, error) {
	if g.Finished {
		return nil, g.state(), ErrGameFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.state(), fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	if !g.allowed.Contains(guess) {
		return nil, g.state(), fmt.Errorf("%w: %q", ErrNotInWordList, guess)
	}

	marks := Marks(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.state(), nil
}

// state reports a coarse string representation of the current game state.
func (g *Game) state() string {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Marks implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non‑hit) answer letters.
//
// Pass 2:
//   - For each non‑hit guess letter, left to right: if there is remaining count
//     for that letter, mark Present and decrement the count; otherwise mark Miss.
//
// This ensures correct behavior with repeated letters in both answer and guess.
// Both words must have the same length and be lowercase a–z.
func Marks(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)

	// Letter frequency for the non‑hit positions (a–z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]-'a']++
		}
	}

	// Second pass: resolve presents/misses for non‑hit tiles.
	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// randomIndex returns a uniform index in [0, n).
func randomIndex(n int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return nBig.Int64()
}
