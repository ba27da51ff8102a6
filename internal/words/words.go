// internal/words/words.go
//
// Provides dictionary loading for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to embedded defaults.
//   - Build the allowed WordSet (answers ∪ guesses) used for guessing and probing.
//   - Keep the answers list in file order (evaluation runs are reproducible by order).
//
// Word Lists:
//   - "answers": candidate solutions.
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. If AnswersFile and AllowedFile are both set,
//      load answers from the first and allowed guesses from the second.
//   2. If only AllowedFile is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If neither is set, fall back to the embedded lists in the assets package.
//
// Malformed lines (wrong length, non-alphabetic) are dropped, never reported,
// unless Strict is set.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle-solver/assets"
)

// LoadOptions selects where word lists come from.
type LoadOptions struct {
	LettersPerWord int
	AnswersFile    string
	AllowedFile    string
	// Strict turns malformed or duplicate entries into load errors.
	Strict bool
}

// Dictionary is the loaded word data for one word length.
type Dictionary struct {
	Allowed *WordSet // answers ∪ guesses, sorted
	answers []string // answers in source order, all members of Allowed
}

// Load reads the word lists described by opts.
// Returns an error if the answers list ends up empty.
func Load(opts LoadOptions) (*Dictionary, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case opts.AnswersFile != "" && opts.AllowedFile != "":
		if ansList, err = readWordFile(opts.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(opts.AllowedFile); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case opts.AllowedFile != "":
		if allowList, err = readWordFile(opts.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}
	return NewDictionary(opts.LettersPerWord, ansList, allowList, opts.Strict)
}

// NewDictionary builds a Dictionary from in-memory lists.
func NewDictionary(lettersPerWord int, answers, allowed []string, strict bool) (*Dictionary, error) {
	d := &Dictionary{Allowed: NewWordSet(lettersPerWord)}

	add := func(w string) error {
		err := d.Allowed.AddStrict(w)
		if err == nil || !strict || errors.Is(err, ErrDuplicateWord) {
			return nil
		}
		return fmt.Errorf("%w: %q", err, w)
	}

	// Ensure all answers are also allowed
	seen := make(map[string]struct{}, len(answers))
	for _, w := range answers {
		if err := add(w); err != nil {
			return nil, fmt.Errorf("answers: %w", err)
		}
		if _, dup := seen[w]; dup {
			if strict {
				return nil, fmt.Errorf("answers: %w: %q", ErrDuplicateWord, w)
			}
			continue
		}
		if d.Allowed.Contains(w) {
			seen[w] = struct{}{}
			d.answers = append(d.answers, w)
		}
	}
	for _, w := range allowed {
		if err := add(w); err != nil {
			return nil, fmt.Errorf("allowed: %w", err)
		}
	}

	if len(d.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return d, nil
}

// Answers returns a copy of the answers list in source order.
func (d *Dictionary) Answers() []string {
	return append([]string(nil), d.answers...)
}

// RandomAnswer returns a cryptographically random answer.
func (d *Dictionary) RandomAnswer() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	if err != nil {
		return d.answers[0]
	}
	return d.answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (d *Dictionary) IsAllowed(w string) bool {
	return d.Allowed.Contains(strings.ToLower(w))
}

// Stats returns counts of loaded words: (answers, allowed).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), d.Allowed.Len()
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word file: %w", err)
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadWords reads one word per line, lowercased and trimmed.
// Blank lines and '#' comments are skipped; shape checks happen on insertion.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word file: %w", err)
	}
	return out, nil
}
