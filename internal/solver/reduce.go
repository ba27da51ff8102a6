// internal/solver/reduce.go
//
// Reduce picks probe words: guesses meant to test letters we know nothing about
// rather than to hit the answer.
//
// Algorithm:
//   1. Collect the resolved letters (anything the state already knows about).
//   2. Build exclusion groups. With commonLetters == 0 there is one group holding
//      every resolved letter. Otherwise each size-k combination of resolved letters
//      is allowed back in, and the rest of the resolved letters form the group.
//   3. Per group: drop words containing any group letter, keep words with all
//      distinct letters, and take the best by letter score (position score breaks ties).
//   4. Nothing found: retry with k+1, up to LettersPerWord, then give up with the
//      zero Reduction.
//
// Word membership is tracked with bitsets over the word set's index so a group
// costs a handful of set differences.

package solver

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Reduction is the result of Reduce. The zero value means "no probe available".
type Reduction struct {
	Words           []string `json:"words"`
	TotalCandidates int      `json:"totalCandidates"`
	CommonLetters   int      `json:"commonLetters"`
}

// Found reports whether Reduce produced at least one probe word.
func (r Reduction) Found() bool { return len(r.Words) > 0 }

// Top returns the best probe word, or "".
func (r Reduction) Top() string {
	if !r.Found() {
		return ""
	}
	return r.Words[0]
}

// wordIndex caches per-word data for one word set.
type wordIndex struct {
	ws       *words.WordSet
	unique   *bitset.BitSet     // words with all-distinct letters
	contains [26]*bitset.BitSet // contains[l]: words containing letter l
	letters  []float64          // LetterScore per word
	position []float64          // PositionScore per word
}

func newWordIndex(ws *words.WordSet, t *rubric.Table) *wordIndex {
	n := uint(ws.Len())
	idx := &wordIndex{
		ws:       ws,
		unique:   bitset.New(n),
		letters:  make([]float64, ws.Len()),
		position: make([]float64, ws.Len()),
	}
	for l := range idx.contains {
		idx.contains[l] = bitset.New(n)
	}
	for i := 0; i < ws.Len(); i++ {
		w := ws.At(i)
		if words.HasUniqueLetters(w) {
			idx.unique.Set(uint(i))
		}
		for j := 0; j < len(w); j++ {
			idx.contains[w[j]-'a'].Set(uint(i))
		}
		idx.letters[i] = LetterScore(w, t)
		idx.position[i] = PositionScore(w, t)
	}
	return idx
}

// better reports whether word i beats word j (letter score, then position score).
func (idx *wordIndex) better(i, j int) bool {
	if idx.letters[i] != idx.letters[j] {
		return idx.letters[i] > idx.letters[j]
	}
	return idx.position[i] > idx.position[j]
}

// Reduce returns probe words ranked best first, the size of the union of every
// group's probe pool, and the common-letter count that produced them.
func Reduce(ws *words.WordSet, t *rubric.Table, state *constraint.State, commonLetters int) (Reduction, error) {
	n := ws.LettersPerWord()
	if n != t.LettersPerWord() || n != state.LettersPerWord() {
		return Reduction{}, fmt.Errorf("reduce (%d/%d/%d): %w",
			n, t.LettersPerWord(), state.LettersPerWord(), words.ErrShapeMismatch)
	}
	if commonLetters < 0 {
		commonLetters = 0
	}

	idx := newWordIndex(ws, t)
	resolved := state.Resolved()
	for k := commonLetters; ; k++ {
		if r := idx.reduce(resolved, k); r.Found() {
			return r, nil
		}
		if k >= n {
			return Reduction{}, nil
		}
	}
}

func (idx *wordIndex) reduce(resolved []byte, k int) Reduction {
	pool := bitset.New(uint(idx.ws.Len()))
	winners := map[int]struct{}{}

	for _, group := range exclusionGroups(resolved, k) {
		mask := idx.unique.Clone()
		for _, c := range group {
			mask.InPlaceDifference(idx.contains[c-'a'])
		}
		pool.InPlaceUnion(mask)

		best := -1
		for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
			if best < 0 || idx.better(int(i), best) {
				best = int(i)
			}
		}
		if best >= 0 {
			winners[best] = struct{}{}
		}
	}
	if len(winners) == 0 {
		return Reduction{}
	}

	ranked := make([]int, 0, len(winners))
	for i := range winners {
		ranked = append(ranked, i)
	}
	sort.Slice(ranked, func(a, b int) bool {
		i, j := ranked[a], ranked[b]
		if idx.letters[i] != idx.letters[j] || idx.position[i] != idx.position[j] {
			return idx.better(i, j)
		}
		return i < j
	})

	out := Reduction{
		Words:           make([]string, len(ranked)),
		TotalCandidates: int(pool.Count()),
		CommonLetters:   k,
	}
	for n, i := range ranked {
		out.Words[n] = idx.ws.At(i)
	}
	return out
}

// exclusionGroups lists the letter groups to exclude for common-letter count k.
// Group order follows the lexicographic order of the re-allowed combinations.
func exclusionGroups(resolved []byte, k int) [][]byte {
	if k == 0 || len(resolved) < k {
		return [][]byte{resolved}
	}
	var groups [][]byte
	combinations(len(resolved), k, func(keep []int) {
		group := make([]byte, 0, len(resolved)-k)
		j := 0
		for i, c := range resolved {
			if j < len(keep) && keep[j] == i {
				j++
				continue
			}
			group = append(group, c)
		}
		groups = append(groups, group)
	})
	return groups
}

// combinations calls fn with every size-k index combination of 0..n-1, in
// lexicographic order. The slice passed to fn is reused between calls.
func combinations(n, k int, fn func([]int)) {
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	for {
		fn(comb)
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}
