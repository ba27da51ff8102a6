// internal/constraint/feedback.go
//
// Round feedback: the classification of one guess's letters against the hidden
// solution, as 1-based position lists per letter.
//   - Excluded: letter proven absent at these positions (grey)
//   - Included: letter present but not at these positions (yellow)
//   - Correct:  letter present exactly at these positions (green)

package constraint

import (
	"fmt"
	"slices"
	"strings"
)

// Feedback is one round's per-letter position sets.
type Feedback struct {
	Excluded map[byte][]int
	Included map[byte][]int
	Correct  map[byte][]int
}

// NewFeedback returns an empty Feedback ready for Add* calls.
func NewFeedback() Feedback {
	return Feedback{
		Excluded: map[byte][]int{},
		Included: map[byte][]int{},
		Correct:  map[byte][]int{},
	}
}

// AddExcluded records letter c as absent at pos.
func (f Feedback) AddExcluded(c byte, pos int) { f.Excluded[c] = addPos(f.Excluded[c], pos) }

// AddIncluded records letter c as present elsewhere than pos.
func (f Feedback) AddIncluded(c byte, pos int) { f.Included[c] = addPos(f.Included[c], pos) }

// AddCorrect records letter c as present at pos.
func (f Feedback) AddCorrect(c byte, pos int) { f.Correct[c] = addPos(f.Correct[c], pos) }

func addPos(ps []int, pos int) []int {
	i, found := slices.BinarySearch(ps, pos)
	if found {
		return ps
	}
	return slices.Insert(ps, i, pos)
}

// String renders the feedback as e.g. "correct[a:3 e:5] included[] excluded[l:2 s:1 t:4]".
func (f Feedback) String() string {
	var b strings.Builder
	section := func(name string, m map[byte][]int) {
		keys := make([]byte, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteString(name)
		b.WriteByte('[')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%c:", k)
			for j, p := range m[k] {
				if j > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, "%d", p)
			}
		}
		b.WriteByte(']')
	}
	section("correct", f.Correct)
	b.WriteByte(' ')
	section("included", f.Included)
	b.WriteByte(' ')
	section("excluded", f.Excluded)
	return b.String()
}
