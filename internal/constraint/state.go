// internal/constraint/state.go
//
// Accumulated knowledge about the hidden word, built up round by round.
//
// Per letter:   [min count, max count, allowed positions, confirmed positions]
// Per position: [allowed letters, confirmed letters]
//
// A fresh letter is min=0, max=N, allowed=1..N, confirmed=∅. Feedback only ever
// raises min, lowers max and removes from "allowed"; nothing is widened again.
// One State belongs to exactly one game.

package constraint

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/words"
)

const alphabet = 26

var (
	// ErrInvalidFeedback: letter outside a–z or position outside 1..N.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrContradiction: feedback conflicts with what is already known.
	ErrContradiction = errors.New("feedback contradicts known constraints")
)

type letterState struct {
	min, max  int
	allowed   *bitset.BitSet // bits 1..N
	confirmed *bitset.BitSet // bits 1..N
}

type positionState struct {
	allowed   *bitset.BitSet // bits 0..25
	confirmed *bitset.BitSet // bits 0..25
}

// State is the per-game constraint accumulator.
type State struct {
	lettersPerWord int
	letters        [alphabet]letterState
	positions      []positionState // index = position-1
}

// New returns an unconstrained State for words of length lettersPerWord.
func New(lettersPerWord int) *State {
	if lettersPerWord <= 0 {
		lettersPerWord = words.DefaultLettersPerWord
	}
	s := &State{
		lettersPerWord: lettersPerWord,
		positions:      make([]positionState, lettersPerWord),
	}
	all := bitset.New(uint(lettersPerWord + 1))
	for p := 1; p <= lettersPerWord; p++ {
		all.Set(uint(p))
	}
	for l := range s.letters {
		s.letters[l] = letterState{
			max:       lettersPerWord,
			allowed:   all.Clone(),
			confirmed: bitset.New(uint(lettersPerWord + 1)),
		}
	}
	for p := range s.positions {
		s.positions[p] = positionState{
			allowed:   bitset.New(alphabet).Complement(),
			confirmed: bitset.New(alphabet),
		}
	}
	return s
}

// Clone returns an independent deep copy.
func (s *State) Clone() *State {
	c := &State{
		lettersPerWord: s.lettersPerWord,
		positions:      make([]positionState, len(s.positions)),
	}
	for l, ls := range s.letters {
		c.letters[l] = letterState{
			min:       ls.min,
			max:       ls.max,
			allowed:   ls.allowed.Clone(),
			confirmed: ls.confirmed.Clone(),
		}
	}
	for p, ps := range s.positions {
		c.positions[p] = positionState{allowed: ps.allowed.Clone(), confirmed: ps.confirmed.Clone()}
	}
	return c
}

// LettersPerWord is the word length this state tracks.
func (s *State) LettersPerWord() int { return s.lettersPerWord }

// ApplyFeedback folds one round into the state: included letters first, then
// correct, then excluded. On error the state is left untouched.
func (s *State) ApplyFeedback(f Feedback) error {
	if err := s.validate(f); err != nil {
		return err
	}
	next := s.Clone()

	roundCount := func(c byte) int { return len(f.Included[c]) + len(f.Correct[c]) }

	for c, ps := range f.Included {
		ls := &next.letters[c-'a']
		ls.min = max(ls.min, roundCount(c))
		for _, p := range ps {
			ls.allowed.Clear(uint(p))
			next.positions[p-1].allowed.Clear(uint(c - 'a'))
		}
	}

	for c, ps := range f.Correct {
		ls := &next.letters[c-'a']
		ls.min = max(ls.min, roundCount(c))
		for _, p := range ps {
			ls.confirmed.Set(uint(p))
			next.positions[p-1].confirmed.Set(uint(c - 'a'))
		}
	}

	for c, ps := range f.Excluded {
		ls := &next.letters[c-'a']
		if len(ps) > 0 {
			// full multiplicity is now known
			ls.max = ls.min
		}
		for _, p := range ps {
			ls.allowed.Clear(uint(p))
			next.positions[p-1].allowed.Clear(uint(c - 'a'))
		}
	}

	if err := next.consistent(); err != nil {
		return err
	}
	*s = *next
	return nil
}

func (s *State) validate(f Feedback) error {
	for _, m := range []map[byte][]int{f.Included, f.Correct, f.Excluded} {
		for c, ps := range m {
			if c < 'a' || c > 'z' {
				return fmt.Errorf("%w: letter %q", ErrInvalidFeedback, c)
			}
			for _, p := range ps {
				if p < 1 || p > s.lettersPerWord {
					return fmt.Errorf("%w: position %d for %q", ErrInvalidFeedback, p, c)
				}
			}
		}
	}
	return nil
}

func (s *State) consistent() error {
	for l, ls := range s.letters {
		c := byte('a' + l)
		if ls.min > ls.max {
			return fmt.Errorf("%w: %q needs at least %d but at most %d", ErrContradiction, c, ls.min, ls.max)
		}
		if !ls.allowed.IsSuperSet(ls.confirmed) {
			return fmt.Errorf("%w: %q confirmed at an excluded position", ErrContradiction, c)
		}
	}
	for p, ps := range s.positions {
		if ps.confirmed.Count() > 1 {
			return fmt.Errorf("%w: position %d confirmed for several letters", ErrContradiction, p+1)
		}
	}
	return nil
}

// IsResolved reports whether anything is known about letter c, i.e. its state
// differs from the fresh default.
func (s *State) IsResolved(c byte) bool {
	ls := s.letters[c-'a']
	n := s.lettersPerWord
	return ls.min != 0 ||
		ls.max != n ||
		int(ls.allowed.Count()) != n ||
		ls.confirmed.Count() != 0
}

// Resolved returns every resolved letter in alphabetical order.
func (s *State) Resolved() []byte {
	var out []byte
	for c := byte('a'); c <= 'z'; c++ {
		if s.IsResolved(c) {
			out = append(out, c)
		}
	}
	return out
}

// Bounds returns the known [min, max] occurrence count of letter c.
func (s *State) Bounds(c byte) (minCount, maxCount int) {
	ls := s.letters[c-'a']
	return ls.min, ls.max
}

// AllowedAt reports whether letter c may still stand at 1-based position pos.
func (s *State) AllowedAt(c byte, pos int) bool {
	return s.letters[c-'a'].allowed.Test(uint(pos))
}

// AllowedPositions lists the positions letter c may still occupy.
func (s *State) AllowedPositions(c byte) []int {
	return setPositions(s.letters[c-'a'].allowed)
}

// ConfirmedPositions lists the positions where letter c is known to stand.
func (s *State) ConfirmedPositions(c byte) []int {
	return setPositions(s.letters[c-'a'].confirmed)
}

// HasConfirmed reports whether some letter is confirmed at pos.
func (s *State) HasConfirmed(pos int) bool {
	return s.positions[pos-1].confirmed.Any()
}

// ConfirmedAt reports whether letter c is confirmed at pos.
func (s *State) ConfirmedAt(c byte, pos int) bool {
	return s.positions[pos-1].confirmed.Test(uint(c - 'a'))
}

// AllowedLetters lists the letters still allowed at pos.
func (s *State) AllowedLetters(pos int) []byte {
	return setLetters(s.positions[pos-1].allowed)
}

// ConfirmedLetters lists the letters confirmed at pos.
func (s *State) ConfirmedLetters(pos int) []byte {
	return setLetters(s.positions[pos-1].confirmed)
}

func setPositions(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

func setLetters(b *bitset.BitSet) []byte {
	out := make([]byte, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, byte('a'+i))
	}
	return out
}
