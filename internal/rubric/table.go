// internal/rubric/table.go
//
// Letter scoring table built from a word set.
//
// For every letter a–z the table holds LettersPerWord+1 weights:
//   - [0]   overall frequency, scaled so the rarest letter that occurs at all is 1.0
//   - [1..N] share of that letter's occurrences found at position i (sums to 1.0)
//
// Tables are read-only once built and may be shared between games.

package rubric

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/words"
)

const alphabet = 26

// Table is a per-letter frequency/position weight table.
type Table struct {
	lettersPerWord int
	weights        [alphabet][]float64
}

// ErrInvalidMultiplier is returned by Merge when the multipliers cannot form an average.
var ErrInvalidMultiplier = errors.New("merge multipliers must be non-negative with a positive sum")

func newTable(lettersPerWord int) *Table {
	t := &Table{lettersPerWord: lettersPerWord}
	for i := range t.weights {
		t.weights[i] = make([]float64, lettersPerWord+1)
	}
	return t
}

// Build computes the table for ws. An empty set yields an all-zero table.
func Build(ws *words.WordSet) *Table {
	n := ws.LettersPerWord()
	t := newTable(n)
	if ws.Len() == 0 {
		return t
	}

	// Count total number of occurrences
	for i := 0; i < ws.Len(); i++ {
		w := ws.At(i)
		for p := 0; p < n; p++ {
			l := w[p] - 'a'
			t.weights[l][0]++
			t.weights[l][p+1]++
		}
	}

	// Position weights become shares of the letter's own count,
	// the overall weight becomes a share of all letter slots.
	total := float64(ws.Len() * n)
	for l := range t.weights {
		row := t.weights[l]
		for p := 1; p <= n; p++ {
			if row[0] != 0 {
				row[p] /= row[0]
			} else {
				row[p] = 0
			}
		}
		row[0] /= total
	}

	t.rescale()
	return t
}

// Merge returns the weighted average of master and slave.
// Position weights are renormalised to sum to 1.0 per letter; overall weights are
// turned into a ratio distribution and rescaled by the new minimum.
func Merge(master, slave *Table, masterMul, slaveMul int) (*Table, error) {
	if master.lettersPerWord != slave.lettersPerWord {
		return nil, fmt.Errorf("merge tables (%d vs %d): %w",
			master.lettersPerWord, slave.lettersPerWord, words.ErrShapeMismatch)
	}
	if masterMul < 0 || slaveMul < 0 || masterMul+slaveMul == 0 {
		return nil, ErrInvalidMultiplier
	}

	n := master.lettersPerWord
	merged := newTable(n)
	mm, sm := float64(masterMul), float64(slaveMul)
	div := mm + sm

	var totalScore float64
	for l := range merged.weights {
		row := merged.weights[l]
		row[0] = (master.weights[l][0]*mm + slave.weights[l][0]*sm) / div
		totalScore += row[0]

		var totalWeight float64
		for p := 1; p <= n; p++ {
			row[p] = (master.weights[l][p]*mm + slave.weights[l][p]*sm) / div
			totalWeight += row[p]
		}
		if totalWeight == 0 {
			continue
		}
		for p := 1; p <= n; p++ {
			row[p] /= totalWeight
		}
	}

	if totalScore == 0 {
		return merged, nil
	}
	for l := range merged.weights {
		merged.weights[l][0] /= totalScore
	}
	merged.rescale()
	return merged, nil
}

// rescale divides every overall weight by the smallest non-zero one.
func (t *Table) rescale() {
	lowest := 0.0
	for l := range t.weights {
		if v := t.weights[l][0]; v != 0 && (lowest == 0 || v < lowest) {
			lowest = v
		}
	}
	if lowest == 0 {
		return
	}
	for l := range t.weights {
		t.weights[l][0] /= lowest
	}
}

// LettersPerWord is the word length the table was built for.
func (t *Table) LettersPerWord() int { return t.lettersPerWord }

// Frequency returns the overall weight of letter c (a–z).
func (t *Table) Frequency(c byte) float64 { return t.weights[c-'a'][0] }

// Position returns the weight of letter c at 1-based position pos.
func (t *Table) Position(c byte, pos int) float64 { return t.weights[c-'a'][pos] }

// Weights returns a copy of letter c's weight vector.
func (t *Table) Weights(c byte) []float64 {
	return append([]float64(nil), t.weights[c-'a']...)
}
