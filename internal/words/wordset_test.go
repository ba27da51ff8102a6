package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordSet_SortedAndUnique(t *testing.T) {
	ws := NewWordSet(5, "trace", "crane", "slate", "crane", "adieu", "route", "slate")

	require.Equal(t, 5, ws.Len())
	assert.Equal(t, []string{"adieu", "crane", "route", "slate", "trace"}, ws.Words())

	for i := 1; i < ws.Len(); i++ {
		assert.Less(t, ws.At(i-1), ws.At(i), "words must be strictly increasing")
	}
}

func TestWordSet_SortedAfterEveryInsertion(t *testing.T) {
	input := []string{"zesty", "apple", "mango", "apple", "lemon", "baker", "yacht", "crane", "alpha"}
	ws := NewWordSet(5)
	for _, w := range input {
		ws.Add(w)
		got := ws.Words()
		for i := 1; i < len(got); i++ {
			require.Less(t, got[i-1], got[i], "after adding %q", w)
		}
	}
	assert.Equal(t, 8, ws.Len())
}

func TestWordSet_DropsMalformed(t *testing.T) {
	tests := []struct {
		name string
		word string
	}{
		{"too_short", "abcd"},
		{"too_long", "abcdef"},
		{"digits", "ab1de"},
		{"uppercase", "Crane"},
		{"punctuation", "cr-ne"},
		{"empty", ""},
		{"non_ascii", "crâne"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWordSet(5)
			assert.False(t, ws.Add(tt.word))
			assert.ErrorIs(t, ws.AddStrict(tt.word), ErrMalformedWord)
			assert.Equal(t, 0, ws.Len())
		})
	}
}

func TestWordSet_AddStrictDuplicate(t *testing.T) {
	ws := NewWordSet(5, "crane")
	assert.ErrorIs(t, ws.AddStrict("crane"), ErrDuplicateWord)
	assert.NoError(t, ws.AddStrict("slate"))
	assert.Equal(t, 2, ws.Len())
}

func TestWordSet_Find(t *testing.T) {
	ws := NewWordSet(5, "crane", "slate", "trace", "route", "adieu")

	tests := []struct {
		word string
		want int
	}{
		{"adieu", 0},
		{"crane", 1},
		{"route", 2},
		{"slate", 3},
		{"trace", 4},
		{"aaaaa", -1},
		{"zzzzz", -1},
		{"dingo", -1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, ws.Find(tt.word))
			assert.Equal(t, tt.want >= 0, ws.Contains(tt.word))
		})
	}

	assert.Equal(t, -1, NewWordSet(5).Find("crane"))
}

func TestWordSet_OtherLengths(t *testing.T) {
	ws := NewWordSet(4, "word", "words", "game", "xy")
	assert.Equal(t, []string{"game", "word"}, ws.Words())
	assert.Equal(t, 4, ws.LettersPerWord())

	def := NewWordSet(0)
	assert.Equal(t, DefaultLettersPerWord, def.LettersPerWord())
}

func TestWordSet_UniqueLetters(t *testing.T) {
	ws := NewWordSet(5, "apple", "crane", "geese", "slate", "llama", "adieu")
	u := ws.UniqueLetters()

	assert.Equal(t, []string{"adieu", "crane", "slate"}, u.Words())
	assert.True(t, u.Contains("crane"))
	assert.False(t, u.Contains("apple"))
	assert.Equal(t, 5, u.LettersPerWord())
	// source set untouched
	assert.Equal(t, 6, ws.Len())
}

func TestWordSet_WordsIsCopy(t *testing.T) {
	ws := NewWordSet(5, "crane", "slate")
	got := ws.Words()
	got[0] = "zzzzz"
	assert.Equal(t, "crane", ws.At(0))
}

func TestHasUniqueLetters(t *testing.T) {
	assert.True(t, HasUniqueLetters("crane"))
	assert.False(t, HasUniqueLetters("geese"))
	assert.True(t, HasUniqueLetters(""))
}
