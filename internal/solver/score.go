// internal/solver/score.go
//
// Word scoring and ranking against a letter table.
//   - LetterScore:   Σ overall weight of each letter (coarse, "which letters")
//   - PositionScore: Σ overall weight × position weight (fine, "which letters where")
//
// RankSolutions orders candidates by PositionScore and reports the spread of the
// scores as a certainty signal; Guess chains it after the candidate filter.

package solver

import (
	"fmt"
	"sort"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/rubric"
	"github.com/robalobadob/wordle-solver/internal/stats"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Scored is a word with both of its scores.
type Scored struct {
	Word     string  `json:"word"`
	Letters  float64 `json:"letters"`
	Position float64 `json:"position"`
}

// Ranking is an ordered candidate list.
type Ranking struct {
	Words     []string `json:"words"`
	Count     int      `json:"count"`
	Deviation float64  `json:"deviation"`
}

// Top returns the best word, or "" for an empty ranking.
func (r Ranking) Top() string {
	if len(r.Words) == 0 {
		return ""
	}
	return r.Words[0]
}

// LetterScore sums the overall weights of w's letters.
func LetterScore(w string, t *rubric.Table) float64 {
	var s float64
	for i := 0; i < len(w); i++ {
		s += t.Frequency(w[i])
	}
	return s
}

// PositionScore sums overall × position weight for each letter of w.
func PositionScore(w string, t *rubric.Table) float64 {
	var s float64
	for i := 0; i < len(w); i++ {
		s += t.Frequency(w[i]) * t.Position(w[i], i+1)
	}
	return s
}

// Score returns both scores for every word of ws, in ws order.
func Score(ws *words.WordSet, t *rubric.Table) ([]Scored, error) {
	if ws.LettersPerWord() != t.LettersPerWord() {
		return nil, fmt.Errorf("score (%d vs %d): %w",
			ws.LettersPerWord(), t.LettersPerWord(), words.ErrShapeMismatch)
	}
	out := make([]Scored, ws.Len())
	for i := range out {
		w := ws.At(i)
		out[i] = Scored{Word: w, Letters: LetterScore(w, t), Position: PositionScore(w, t)}
	}
	return out, nil
}

// RankSolutions orders candidates by descending position score (stable, so ties
// keep alphabetical order) and reports the sample standard deviation of the scores.
func RankSolutions(candidates *words.WordSet, t *rubric.Table) (Ranking, error) {
	scored, err := Score(candidates, t)
	if err != nil {
		return Ranking{}, err
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Position > scored[j].Position
	})

	r := Ranking{Words: make([]string, len(scored)), Count: len(scored)}
	values := make([]float64, len(scored))
	for i, s := range scored {
		r.Words[i] = s.Word
		values[i] = s.Position
	}
	r.Deviation = stats.StdDev(values)
	return r, nil
}

// Guess ranks every word of ws still consistent with state.
// An empty ranking (Count 0) means nothing is left.
func Guess(ws *words.WordSet, t *rubric.Table, state *constraint.State) (Ranking, error) {
	if ws.LettersPerWord() != t.LettersPerWord() {
		return Ranking{}, fmt.Errorf("guess (%d vs %d): %w",
			ws.LettersPerWord(), t.LettersPerWord(), words.ErrShapeMismatch)
	}
	sols, err := Solutions(ws, state)
	if err != nil {
		return Ranking{}, err
	}
	return RankSolutions(sols, t)
}
