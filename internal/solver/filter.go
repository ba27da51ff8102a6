// internal/solver/filter.go
//
// Candidate filter: derives the words still consistent with a constraint state.
//
// A word survives when
//   - for every letter, its count in the word lies within [min, max] and every
//     position it occupies is still allowed for it;
//   - for every position with a confirmed letter, the word has that letter there.
//
// Letters absent from the word are checked too (count 0 against min), so a word
// missing a known-present letter is dropped.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Solutions returns, as a new sorted set, every word of ws consistent with state.
func Solutions(ws *words.WordSet, state *constraint.State) (*words.WordSet, error) {
	if ws.LettersPerWord() != state.LettersPerWord() {
		return nil, fmt.Errorf("solutions (%d vs %d): %w",
			ws.LettersPerWord(), state.LettersPerWord(), words.ErrShapeMismatch)
	}
	out := words.NewWordSet(ws.LettersPerWord())
	for i := 0; i < ws.Len(); i++ {
		if w := ws.At(i); Consistent(w, state) {
			out.Add(w)
		}
	}
	return out, nil
}

// Consistent reports whether a single word satisfies every constraint in state.
// w must have state.LettersPerWord() lowercase letters.
func Consistent(w string, state *constraint.State) bool {
	var counts [26]int
	for p := 1; p <= len(w); p++ {
		c := w[p-1]
		counts[c-'a']++
		if !state.AllowedAt(c, p) {
			return false
		}
		if state.HasConfirmed(p) && !state.ConfirmedAt(c, p) {
			return false
		}
	}
	for l, n := range counts {
		lo, hi := state.Bounds(byte('a' + l))
		if n < lo || n > hi {
			return false
		}
	}
	return true
}
