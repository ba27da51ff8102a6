package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2024-03-01", DateKey(time.Date(2024, 3, 2, 5, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 500)
	assert.Equal(t, a, WordIndex(day.Add(5*time.Hour), "salt", 500), "same day, same word")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 500)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[WordIndex(day.AddDate(0, 0, d), "salt", 500)] = true
	}
	assert.Greater(t, len(seen), 20, "indices should spread across days")
}

func TestWord(t *testing.T) {
	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	answers := []string{"crane", "slate", "trace"}

	w, i := Word(day, "salt", answers)
	assert.Equal(t, answers[i], w)
	assert.Equal(t, WordIndex(day, "salt", 3), i)

	w, i = Word(day, "salt", nil)
	assert.Equal(t, "", w)
	assert.Equal(t, -1, i)
}
