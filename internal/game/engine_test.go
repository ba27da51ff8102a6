package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/words"
)

func testWords() *words.WordSet {
	return words.NewWordSet(5, "crane", "slate", "trace", "route", "adieu", "speed", "abide", "eerie", "there")
}

func TestMarks(t *testing.T) {
	tests := []struct {
		answer, guess string
		want          string
	}{
		{"crane", "slate", "bbgbg"},
		{"crane", "crane", "ggggg"},
		{"crane", "trace", "bggyg"},
		{"abide", "speed", "bbyby"},
		{"there", "eerie", "ybybg"},
		{"eerie", "there", "bbyyg"},
	}
	for _, tt := range tests {
		t.Run(tt.answer+"_"+tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkString(Marks(tt.answer, tt.guess)))
		})
	}
}

func TestNew_SolutionMustBeAllowed(t *testing.T) {
	_, err := New(testWords(), "zebra", 6)
	assert.ErrorIs(t, err, ErrSolutionNotInWordlist)

	g, err := New(testWords(), " CRANE ", 0)
	require.NoError(t, err)
	assert.Equal(t, "crane", g.Answer)
	assert.Equal(t, DefaultRows, g.Rows)
	assert.Equal(t, 5, g.Cols)
	assert.Len(t, g.ID, 16)
}

func TestApplyGuess(t *testing.T) {
	g, err := New(testWords(), "crane", 2)
	require.NoError(t, err)

	_, _, err = g.ApplyGuess("abc")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, _, err = g.ApplyGuess("zzzzz")
	assert.ErrorIs(t, err, ErrNotInWordList)
	assert.Empty(t, g.Guesses)

	marks, state, err := g.ApplyGuess("Slate")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, []Mark{MarkMiss, MarkMiss, MarkHit, MarkMiss, MarkHit}, marks)

	_, state, err = g.ApplyGuess("route")
	require.NoError(t, err)
	assert.Equal(t, StateLost, state)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)

	_, _, err = g.ApplyGuess("crane")
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestApplyGuess_Win(t *testing.T) {
	g, err := New(testWords(), "crane", 6)
	require.NoError(t, err)
	_, state, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
	assert.True(t, g.Won)
}
