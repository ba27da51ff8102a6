// internal/words/wordset.go
//
// WordSet: an ordered, de-duplicated collection of fixed-length words.
// Responsibilities:
//   - Keep words sorted lexicographically after every insertion.
//   - Reject (silently) anything that is not exactly LettersPerWord a–z letters,
//     or that is already present. AddStrict exposes the same rule as errors.
//   - Binary-search lookups.
//
// There is deliberately no Remove/InsertAt/Reverse: the set is build-only so the
// sort order can never be broken by a caller.

package words

import (
	"errors"
	"slices"
	"sort"
)

// DefaultLettersPerWord is the classic Wordle word length.
const DefaultLettersPerWord = 5

var (
	// ErrShapeMismatch is returned whenever structures built for different
	// word lengths are combined.
	ErrShapeMismatch = errors.New("letters per word mismatch")

	// ErrMalformedWord and ErrDuplicateWord are only reported by AddStrict.
	ErrMalformedWord = errors.New("malformed word")
	ErrDuplicateWord = errors.New("duplicate word")
)

// WordSet holds sorted unique words of equal length.
type WordSet struct {
	lettersPerWord int
	words          []string            // sorted
	index          map[string]struct{} // membership
}

// NewWordSet builds a set for words of length lettersPerWord (DefaultLettersPerWord
// if <= 0) and adds every entry of list, dropping malformed ones.
func NewWordSet(lettersPerWord int, list ...string) *WordSet {
	if lettersPerWord <= 0 {
		lettersPerWord = DefaultLettersPerWord
	}
	ws := &WordSet{
		lettersPerWord: lettersPerWord,
		words:          make([]string, 0, len(list)),
		index:          make(map[string]struct{}, len(list)),
	}
	ws.Extend(list)
	return ws
}

// Add inserts w if it is well-formed and new. Reports whether w was inserted.
func (ws *WordSet) Add(w string) bool {
	return ws.AddStrict(w) == nil
}

// AddStrict behaves like Add but says why a word was refused.
func (ws *WordSet) AddStrict(w string) error {
	if !ws.wellFormed(w) {
		return ErrMalformedWord
	}
	if _, ok := ws.index[w]; ok {
		return ErrDuplicateWord
	}
	i := sort.SearchStrings(ws.words, w)
	ws.words = slices.Insert(ws.words, i, w)
	ws.index[w] = struct{}{}
	return nil
}

// Extend adds every word of list, dropping malformed entries.
func (ws *WordSet) Extend(list []string) {
	for _, w := range list {
		ws.Add(w)
	}
}

func (ws *WordSet) wellFormed(w string) bool {
	return len(w) == ws.lettersPerWord && isAlpha(w)
}

// Find returns the index of w, or -1.
func (ws *WordSet) Find(w string) int {
	i := sort.SearchStrings(ws.words, w)
	if i < len(ws.words) && ws.words[i] == w {
		return i
	}
	return -1
}

// Contains reports whether w is in the set.
func (ws *WordSet) Contains(w string) bool {
	_, ok := ws.index[w]
	return ok
}

// Len is the number of words.
func (ws *WordSet) Len() int { return len(ws.words) }

// At returns the i-th word in sorted order.
func (ws *WordSet) At(i int) string { return ws.words[i] }

// LettersPerWord is the fixed word length of the set.
func (ws *WordSet) LettersPerWord() int { return ws.lettersPerWord }

// Words returns a copy of the sorted words.
func (ws *WordSet) Words() []string { return slices.Clone(ws.words) }

// UniqueLetters returns a new set holding only words whose letters are all distinct.
func (ws *WordSet) UniqueLetters() *WordSet {
	out := NewWordSet(ws.lettersPerWord)
	for _, w := range ws.words {
		if HasUniqueLetters(w) {
			// already sorted and unique: append directly
			out.words = append(out.words, w)
			out.index[w] = struct{}{}
		}
	}
	return out
}

// HasUniqueLetters reports whether no letter of w repeats.
func HasUniqueLetters(w string) bool {
	var seen uint32
	for i := 0; i < len(w); i++ {
		bit := uint32(1) << (w[i] - 'a')
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
