package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/stats"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func TestScores(t *testing.T) {
	ws := words.NewWordSet(5, "crane", "slate", "trace", "route", "adieu")
	tbl := rubric.Build(ws)

	// overall weights: e=5 a=4 r=3 t=3 c=2 ... rarest 1
	assert.InDelta(t, 2+3+4+1+5, LetterScore("crane", tbl), 1e-9)

	var want float64
	for i, c := range []byte("crane") {
		want += tbl.Frequency(c) * tbl.Position(c, i+1)
	}
	assert.InDelta(t, want, PositionScore("crane", tbl), 1e-9)

	scored, err := Score(ws, tbl)
	require.NoError(t, err)
	require.Len(t, scored, ws.Len())
	for i, s := range scored {
		assert.Equal(t, ws.At(i), s.Word)
		assert.InDelta(t, LetterScore(s.Word, tbl), s.Letters, 1e-9)
	}
}

func TestRankSolutions_Ordered(t *testing.T) {
	ws := answers(t)
	tbl := rubric.Build(ws)

	r, err := RankSolutions(ws, tbl)
	require.NoError(t, err)
	require.Equal(t, ws.Len(), r.Count)
	require.Len(t, r.Words, r.Count)

	scores := make([]float64, len(r.Words))
	for i, w := range r.Words {
		scores[i] = PositionScore(w, tbl)
		if i == 0 {
			continue
		}
		assert.GreaterOrEqual(t, scores[i-1], scores[i])
		if scores[i-1] == scores[i] {
			assert.Less(t, r.Words[i-1], r.Words[i], "ties stay alphabetical")
		}
	}
	assert.InDelta(t, stats.StdDev(scores), r.Deviation, 1e-9)
	assert.Greater(t, r.Deviation, 0.0)
}

func TestRankSolutions_Small(t *testing.T) {
	tbl := rubric.Build(words.NewWordSet(5, "crane", "slate"))

	r, err := RankSolutions(words.NewWordSet(5, "crane"), tbl)
	require.NoError(t, err)
	assert.Equal(t, "crane", r.Top())
	assert.Zero(t, r.Deviation)

	r, err = RankSolutions(words.NewWordSet(5), tbl)
	require.NoError(t, err)
	assert.Zero(t, r.Count)
	assert.Equal(t, "", r.Top())
}

func TestGuess(t *testing.T) {
	ws := words.NewWordSet(5, "crane", "slate", "trace", "route", "adieu")
	tbl := rubric.Build(ws)

	r, err := Guess(ws, tbl, constraint.New(5))
	require.NoError(t, err)
	assert.Equal(t, 5, r.Count)

	state := constraint.New(5)
	require.NoError(t, state.ApplyFeedback(game.DeriveFeedback("slate", "crane")))
	r, err = Guess(ws, tbl, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, r.Words)

	_, err = Guess(ws, rubric.Build(words.NewWordSet(4, "abcd")), state)
	assert.ErrorIs(t, err, words.ErrShapeMismatch)
}
