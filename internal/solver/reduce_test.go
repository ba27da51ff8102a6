package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// bestUnique finds the best word by letter score (position score second)
// among unique-letter words avoiding every letter in avoid.
func bestUnique(ws *words.WordSet, tbl *rubric.Table, avoid string) string {
	best := ""
	var bl, bp float64
next:
	for i := 0; i < ws.Len(); i++ {
		w := ws.At(i)
		if !words.HasUniqueLetters(w) {
			continue
		}
		for j := 0; j < len(avoid); j++ {
			for k := 0; k < len(w); k++ {
				if w[k] == avoid[j] {
					continue next
				}
			}
		}
		l, p := LetterScore(w, tbl), PositionScore(w, tbl)
		if best == "" || l > bl || (l == bl && p > bp) {
			best, bl, bp = w, l, p
		}
	}
	return best
}

func TestReduce_FreshState(t *testing.T) {
	ws := answers(t)
	tbl := rubric.Build(ws)

	r, err := Reduce(ws, tbl, constraint.New(5), 0)
	require.NoError(t, err)
	require.True(t, r.Found())
	assert.Equal(t, bestUnique(ws, tbl, ""), r.Top())
	assert.Equal(t, 0, r.CommonLetters)
	assert.Equal(t, ws.UniqueLetters().Len(), r.TotalCandidates)
	assert.True(t, words.HasUniqueLetters(r.Top()))
}

func TestReduce_AvoidsResolvedLetters(t *testing.T) {
	ws := answers(t)
	tbl := rubric.Build(ws)
	state := constraint.New(5)
	require.NoError(t, state.ApplyFeedback(game.DeriveFeedback("slate", "crane")))

	r, err := Reduce(ws, tbl, state, 0)
	require.NoError(t, err)
	require.True(t, r.Found())
	assert.Equal(t, 0, r.CommonLetters)
	assert.Equal(t, bestUnique(ws, tbl, "aelst"), r.Top())
	assert.NotContains(t, r.Top(), "a")
	assert.NotContains(t, r.Top(), "e")
}

func TestReduce_RaisesCommonLetters(t *testing.T) {
	ws := words.NewWordSet(5, "crane", "slate")
	tbl := rubric.Build(ws)
	state := constraint.New(5)
	require.NoError(t, state.ApplyFeedback(game.DeriveFeedback("slate", "crane")))

	// Only crane avoids l, s and t, and it needs both a and e let back in.
	r, err := Reduce(ws, tbl, state, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, r.Words)
	assert.Equal(t, 2, r.CommonLetters)
	assert.Equal(t, 1, r.TotalCandidates)
}

func TestReduce_NothingFound(t *testing.T) {
	ws := words.NewWordSet(5, "aaaaa", "bbbbb")
	r, err := Reduce(ws, rubric.Build(ws), constraint.New(5), 0)
	require.NoError(t, err)
	assert.False(t, r.Found())
	assert.Equal(t, Reduction{}, r)
	assert.Equal(t, "", r.Top())
}

func TestReduce_ShapeMismatch(t *testing.T) {
	ws := words.NewWordSet(5, "crane")
	_, err := Reduce(ws, rubric.Build(ws), constraint.New(6), 0)
	assert.ErrorIs(t, err, words.ErrShapeMismatch)
}

func TestExclusionGroups(t *testing.T) {
	resolved := []byte("abc")
	assert.Equal(t, [][]byte{[]byte("abc")}, exclusionGroups(resolved, 0))
	assert.Equal(t, [][]byte{[]byte("bc"), []byte("ac"), []byte("ab")}, exclusionGroups(resolved, 1))
	assert.Equal(t, [][]byte{[]byte("c"), []byte("b"), []byte("a")}, exclusionGroups(resolved, 2))
	assert.Equal(t, [][]byte{[]byte("abc")}, exclusionGroups(resolved, 4))
}

func TestCombinations(t *testing.T) {
	var got [][]int
	combinations(4, 2, func(c []int) {
		got = append(got, append([]int(nil), c...))
	})
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)
}
