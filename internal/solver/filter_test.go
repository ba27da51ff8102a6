package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func answers(t *testing.T) *words.WordSet {
	t.Helper()
	d, err := words.Load(words.LoadOptions{})
	require.NoError(t, err)
	return words.NewWordSet(5, d.Answers()...)
}

func TestSolutions_SlateVsCrane(t *testing.T) {
	ws := words.NewWordSet(5, "crane", "slate", "trace", "route", "adieu")
	state := constraint.New(5)
	require.NoError(t, state.ApplyFeedback(game.DeriveFeedback("slate", "crane")))

	got, err := Solutions(ws, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, got.Words())
}

func TestSolutions_FreshStateKeepsEverything(t *testing.T) {
	ws := words.NewWordSet(5, "crane", "slate", "eerie")
	got, err := Solutions(ws, constraint.New(5))
	require.NoError(t, err)
	assert.Equal(t, ws.Words(), got.Words())
}

// After one round the survivors are exactly the words that would have
// produced the same marks for that guess.
func TestSolutions_MatchesMarkEquivalence(t *testing.T) {
	ws := answers(t)
	for _, guess := range []string{"slate", "eerie", "speed"} {
		for _, solution := range []string{"crane", "there", "abide", ws.At(0), ws.At(ws.Len() - 1)} {
			state := constraint.New(5)
			require.NoError(t, state.ApplyFeedback(game.DeriveFeedback(guess, solution)))
			got, err := Solutions(ws, state)
			require.NoError(t, err)

			want := game.MarkString(game.Marks(solution, guess))
			var expected []string
			for i := 0; i < ws.Len(); i++ {
				if w := ws.At(i); game.MarkString(game.Marks(w, guess)) == want {
					expected = append(expected, w)
				}
			}
			assert.Equal(t, expected, got.Words(), "guess %s solution %s", guess, solution)
		}
	}
}

func TestSolutions_ShrinksAndKeepsSolution(t *testing.T) {
	ws := answers(t)
	probes := []string{"slate", "crony", "adieu", "route", "crane"}

	for i := 0; i < ws.Len(); i += 17 {
		solution := ws.At(i)
		state := constraint.New(5)
		prev := ws.Len()
		for _, guess := range probes {
			require.NoError(t, state.ApplyFeedback(game.DeriveFeedback(guess, solution)), solution)
			got, err := Solutions(ws, state)
			require.NoError(t, err)
			assert.True(t, got.Contains(solution), "%s dropped after %s", solution, guess)
			assert.LessOrEqual(t, got.Len(), prev)
			prev = got.Len()
		}
	}
}

func TestSolutions_ShapeMismatch(t *testing.T) {
	_, err := Solutions(words.NewWordSet(5, "crane"), constraint.New(4))
	assert.ErrorIs(t, err, words.ErrShapeMismatch)
}

func TestConsistent_CountBounds(t *testing.T) {
	state := constraint.New(5)
	// "eerie" vs answer "there": one e is green, one yellow, one excluded.
	require.NoError(t, state.ApplyFeedback(game.DeriveFeedback("eerie", "there")))

	lo, hi := state.Bounds('e')
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)
	assert.True(t, Consistent("there", state))
	assert.False(t, Consistent("crane", state), "missing a known-present letter")
}
