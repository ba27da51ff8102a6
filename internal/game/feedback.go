// internal/game/feedback.go
//
// Turning marks into round feedback.
//
// For each guessed letter present in the answer, its non-green guessed positions
// go to "included" left to right, up to the number of answer copies not already
// matched by greens; any remainder is "excluded". That is exactly what the
// two-pass Marks produces, so DeriveFeedback is Marks followed by FeedbackFromMarks.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/constraint"
)

// FeedbackFromMarks converts per-position marks for guess into round feedback.
func FeedbackFromMarks(guess string, marks []Mark) (constraint.Feedback, error) {
	if len(marks) != len(guess) {
		return constraint.Feedback{}, fmt.Errorf("%w: %d marks for %q", ErrInvalidGuess, len(marks), guess)
	}
	f := constraint.NewFeedback()
	for i := 0; i < len(guess); i++ {
		c, pos := guess[i], i+1
		switch marks[i] {
		case MarkHit:
			f.AddCorrect(c, pos)
		case MarkPresent:
			f.AddIncluded(c, pos)
		case MarkMiss:
			f.AddExcluded(c, pos)
		default:
			return constraint.Feedback{}, fmt.Errorf("%w: unknown mark %q", ErrInvalidGuess, marks[i])
		}
	}
	return f, nil
}

// DeriveFeedback scores guess against solution and returns the round feedback.
func DeriveFeedback(guess, solution string) constraint.Feedback {
	f, _ := FeedbackFromMarks(guess, Marks(solution, guess))
	return f
}

// ParseMarks reads a compact mark string such as "gybbg".
// Accepted per tile: g/2/+ (hit), y/1/~ (present), b/x/0/-/. (miss).
func ParseMarks(s string) ([]Mark, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	out := make([]Mark, 0, len(s))
	for _, r := range s {
		switch r {
		case 'g', '2', '+':
			out = append(out, MarkHit)
		case 'y', '1', '~':
			out = append(out, MarkPresent)
		case 'b', 'x', '0', '-', '.':
			out = append(out, MarkMiss)
		default:
			return nil, fmt.Errorf("%w: bad mark %q in %q", ErrInvalidGuess, r, s)
		}
	}
	return out, nil
}

// MarksFromInts converts 0/1/2 (miss/present/hit) codes.
func MarksFromInts(codes []int) ([]Mark, error) {
	out := make([]Mark, len(codes))
	for i, c := range codes {
		switch c {
		case 2:
			out[i] = MarkHit
		case 1:
			out[i] = MarkPresent
		case 0:
			out[i] = MarkMiss
		default:
			return nil, fmt.Errorf("%w: bad mark code %d", ErrInvalidGuess, c)
		}
	}
	return out, nil
}

// Int returns the 0/1/2 code of m.
func (m Mark) Int() int {
	switch m {
	case MarkHit:
		return 2
	case MarkPresent:
		return 1
	default:
		return 0
	}
}

// MarkString renders marks as g/y/b tiles.
func MarkString(marks []Mark) string {
	var b strings.Builder
	for _, m := range marks {
		switch m {
		case MarkHit:
			b.WriteByte('g')
		case MarkPresent:
			b.WriteByte('y')
		default:
			b.WriteByte('b')
		}
	}
	return b.String()
}
