// internal/player/human.go
//
// Interactive player reading guesses from a terminal (or any io.Reader).
// Invalid input is reported and re-prompted; feedback is echoed as coloured tiles.

package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Human is a game.Player driven by text input.
type Human struct {
	ws    *words.WordSet
	in    *bufio.Scanner
	out   io.Writer
	guess string
}

// NewHuman reads guesses from in and writes prompts and tiles to out.
func NewHuman(ws *words.WordSet, in io.Reader, out io.Writer) *Human {
	return &Human{ws: ws, in: bufio.NewScanner(in), out: out}
}

// Guess prompts until a valid dictionary word is entered.
// Running out of input returns io.EOF.
func (h *Human) Guess() (game.Guess, error) {
	n := h.ws.LettersPerWord()
	for {
		fmt.Fprint(h.out, "Guess the word: ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Guess{}, fmt.Errorf("reading guess: %w", err)
			}
			return game.Guess{}, io.EOF
		}
		q := strings.ToLower(strings.TrimSpace(h.in.Text()))

		switch {
		case !isLetters(q):
			fmt.Fprintln(h.out, "Words can only include letters. Try again.")
		case len(q) != n:
			fmt.Fprintf(h.out, "The word must have %d letters. Try again.\n", n)
		case !h.ws.Contains(q):
			fmt.Fprintf(h.out, "%s is not in wordlist. Try again.\n", q)
		default:
			h.guess = q
			return game.Guess{Word: q, Candidates: -1}, nil
		}
	}
}

// CheckLetters prints the feedback for the last guess as tiles.
func (h *Human) CheckLetters(f constraint.Feedback) error {
	fmt.Fprintln(h.out, Tiles(h.guess, f))
	return nil
}

// Tiles renders feedback as coloured letter tiles. Positions missing from
// f render plain.
func Tiles(guess string, f constraint.Feedback) string {
	colours := make([]string, len(guess))
	paint := func(m map[byte][]int, c string) {
		for _, ps := range m {
			for _, p := range ps {
				if p >= 1 && p <= len(colours) {
					colours[p-1] = c
				}
			}
		}
	}
	paint(f.Excluded, color.Gray)
	paint(f.Included, color.Yellow)
	paint(f.Correct, color.Green)

	var b strings.Builder
	for i := 0; i < len(guess); i++ {
		tile := " " + strings.ToUpper(guess[i:i+1]) + " "
		if colours[i] == "" {
			b.WriteString(tile)
			continue
		}
		b.WriteString(color.Ize(colours[i], tile))
	}
	return b.String()
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
