// internal/game/types.go
//
// Core type definitions for the game loop.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Game: state for a single in-progress or finished game.
//   - Guess, Player, Result: what a player proposes and what a played game reports.

package game

import (
	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer (or all its copies are used up).
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Game states reported by ApplyGuess.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

// Game holds the state of a single game session.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed.
	Cols     int      // Number of letters per word.
	Guesses  []string // List of guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	allowed *words.WordSet
}

// Guess is a player's proposal for one round.
type Guess struct {
	Word   string `json:"word"`
	Reason string `json:"reason,omitempty"` // which heuristic produced it
	// Candidates is the number of potential solutions the player still
	// considered when guessing; -1 when unknown (human players).
	Candidates int `json:"candidates"`
}

// Player is anything that can take part in a game: propose a word each round
// and learn from the feedback.
type Player interface {
	Guess() (Guess, error)
	CheckLetters(f constraint.Feedback) error
}

// Result summarises a played game.
type Result struct {
	Solution string `json:"solution"`
	// Rounds is the winning round, or the round budget + 1 for an unsolved game.
	Rounds int  `json:"rounds"`
	Won    bool `json:"won"`
	// PotentialSolutions is the winning guess's candidate count (0 if unsolved).
	PotentialSolutions int     `json:"potentialSolutions"`
	Guesses            []Guess `json:"guesses"`
}
