// internal/daily/daily.go
//
// Deterministic word of the day.
// The same date and salt always pick the same answer, so every caller (CLI,
// HTTP, cached results) agrees on today's word without shared state.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Word picks the date's answer from answers; "" and -1 for an empty list.
func Word(date time.Time, salt string, answers []string) (string, int) {
	if len(answers) == 0 {
		return "", -1
	}
	i := WordIndex(date, salt, len(answers))
	return answers[i], i
}
