package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Embedded(t *testing.T) {
	d, err := Load(LoadOptions{LettersPerWord: 5})
	require.NoError(t, err)

	answers, allowed := d.Stats()
	assert.Greater(t, answers, 100)
	assert.GreaterOrEqual(t, allowed, answers)
	for _, w := range d.Answers() {
		assert.True(t, d.IsAllowed(w), "answer %q must be allowed", w)
	}
	assert.True(t, d.IsAllowed("CRANE"))
	assert.True(t, d.IsAllowed("xylem"))
}

func TestLoad_Files(t *testing.T) {
	ans := writeFile(t, "answers.txt", "Crane\nslate\n\n# comment\nbad\nslate\n")
	all := writeFile(t, "allowed.txt", "adieu\nroute\n12345\n")

	d, err := Load(LoadOptions{AnswersFile: ans, AllowedFile: all})
	require.NoError(t, err)

	assert.Equal(t, []string{"crane", "slate"}, d.Answers())
	assert.Equal(t, []string{"adieu", "crane", "route", "slate"}, d.Allowed.Words())
}

func TestLoad_OnlyAllowedFile(t *testing.T) {
	all := writeFile(t, "allowed.txt", "trace\ncrane\n")
	d, err := Load(LoadOptions{AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"trace", "crane"}, d.Answers())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(LoadOptions{AllowedFile: "/path/that/does/not/exist/words.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening word file")
}

func TestNewDictionary_Strict(t *testing.T) {
	_, err := NewDictionary(5, []string{"crane", "oops"}, nil, true)
	assert.ErrorIs(t, err, ErrMalformedWord)

	_, err = NewDictionary(5, []string{"crane", "crane"}, nil, true)
	assert.ErrorIs(t, err, ErrDuplicateWord)

	d, err := NewDictionary(5, []string{"crane", "oops", "crane"}, []string{"crane"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, d.Answers())
}

func TestNewDictionary_EmptyAnswers(t *testing.T) {
	_, err := NewDictionary(5, []string{"toolong"}, []string{"crane"}, false)
	assert.Error(t, err)
}

func TestDictionary_RandomAnswer(t *testing.T) {
	d, err := NewDictionary(5, []string{"crane", "slate"}, nil, false)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Contains(t, []string{"crane", "slate"}, d.RandomAnswer())
	}
}

func TestReadWords(t *testing.T) {
	got, err := ReadWords(strings.NewReader("  CRANE \n#x\n\nslate\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, got)
}
