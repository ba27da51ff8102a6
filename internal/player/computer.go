// internal/player/computer.go
//
// Shared state for automated players.
// Responsibilities:
//   - Own the guessable word set and the global letter table (built once, shareable).
//   - Own one constraint.State per game and fold every round's feedback into it.
//   - Track the round counter and the current potential-solution pool.
//
// A Computer by itself never guesses; strategies embed it and add Guess.

package player

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrNoCandidates is returned when the feedback so far rules out every word.
var ErrNoCandidates = errors.New("no candidate words left")

// Computer holds the bookkeeping common to every automated player.
type Computer struct {
	wordlist      *words.WordSet
	unique        *words.WordSet
	global        *rubric.Table
	state         *constraint.State
	potential     *words.WordSet
	round         int
	roundsPerGame int
}

// NewComputer prepares a fresh game over ws. A nil global table is built from ws;
// pass a prebuilt one to share it between many games.
func NewComputer(ws *words.WordSet, global *rubric.Table, roundsPerGame int) *Computer {
	if global == nil {
		global = rubric.Build(ws)
	}
	if roundsPerGame <= 0 {
		roundsPerGame = game.DefaultRows
	}
	return &Computer{
		wordlist:      ws,
		global:        global,
		state:         constraint.New(ws.LettersPerWord()),
		potential:     ws,
		roundsPerGame: roundsPerGame,
	}
}

// CheckLetters folds one round of feedback into the player's state.
func (c *Computer) CheckLetters(f constraint.Feedback) error {
	if err := c.state.ApplyFeedback(f); err != nil {
		return fmt.Errorf("check letters: %w", err)
	}
	return nil
}

// Round is the number of guesses made so far.
func (c *Computer) Round() int { return c.round }

// State exposes the accumulated constraints (read-only use).
func (c *Computer) State() *constraint.State { return c.state }

// Potential is the candidate pool as of the last guess.
func (c *Computer) Potential() *words.WordSet { return c.potential }

// Wordlist is the full guessable word set.
func (c *Computer) Wordlist() *words.WordSet { return c.wordlist }

// uniqueWords lazily derives the unique-letter subset of the word list.
func (c *Computer) uniqueWords() *words.WordSet {
	if c.unique == nil {
		c.unique = c.wordlist.UniqueLetters()
	}
	return c.unique
}
