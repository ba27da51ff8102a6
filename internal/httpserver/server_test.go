package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var testAnswers = []string{"crane", "slate", "trace", "route", "adieu", "pious", "lymph", "dwarf"}

func newTestServer(t *testing.T, withDB bool) *Server {
	t.Helper()
	dict, err := words.NewDictionary(5, testAnswers, []string{"xylem"}, false)
	require.NoError(t, err)

	deps := Deps{Dict: dict}
	if withDB {
		db, err := store.Open(filepath.Join(t.TempDir(), "solver.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		deps.DB = db
	}
	return New(Config{JWTSecret: "test", DailySalt: "salt", Extended: true}, deps)
}

func do(t *testing.T, s *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", nil)
	assert.JSONEq(t, `{"answers":8,"allowed":9}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, s, http.MethodOptions, "/health", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSolverSession_SolvesGame(t *testing.T) {
	s := newTestServer(t, false)
	const answer = "crane"

	rec := do(t, s, http.MethodPost, "/solver/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sug := decodeBody[suggestion](t, rec)
	require.NotEmpty(t, sug.SessionID)
	assert.Equal(t, 1, sug.Round)

	solved := false
	for i := 0; i < 9 && !solved; i++ {
		marks := game.MarkString(game.Marks(answer, sug.Guess))
		rec = do(t, s, http.MethodPost, "/solver/sessions/"+sug.SessionID+"/feedback", feedbackReq{Marks: marks})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		sug = decodeBody[suggestion](t, rec)
		solved = sug.Solved
	}
	require.True(t, solved)
	assert.Equal(t, answer, sug.Guess)

	rec = do(t, s, http.MethodPost, "/solver/sessions/"+sug.SessionID+"/feedback", feedbackReq{Marks: "ggggg"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/solver/sessions/"+sug.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[sessionView](t, rec)
	assert.Len(t, view.Rounds, sug.Round)
	assert.Contains(t, view.Top, answer)
}

func TestSolverSession_EnteredGuess(t *testing.T) {
	s := newTestServer(t, false)
	sug := decodeBody[suggestion](t, do(t, s, http.MethodPost, "/solver/sessions", nil))

	rec := do(t, s, http.MethodPost, "/solver/sessions/"+sug.SessionID+"/feedback",
		feedbackReq{Guess: "SLATE", Marks: "bbgbg"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := decodeBody[suggestion](t, rec)
	assert.Equal(t, "crane", next.Guess, "only crane fits s,l,t absent with a and e placed")
	assert.Equal(t, 1, next.Candidates)

	view := decodeBody[sessionView](t, do(t, s, http.MethodGet, "/solver/sessions/"+sug.SessionID, nil))
	assert.Equal(t, "slate", view.Rounds[0].Guess.Word)
	assert.Equal(t, "entered", view.Rounds[0].Guess.Reason)
}

func TestSolverSession_Errors(t *testing.T) {
	s := newTestServer(t, false)
	sug := decodeBody[suggestion](t, do(t, s, http.MethodPost, "/solver/sessions", nil))
	path := "/solver/sessions/" + sug.SessionID + "/feedback"

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, path, feedbackReq{Marks: "gg"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, path, feedbackReq{Marks: "qqqqq"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, path, feedbackReq{Guess: "abc", Marks: "ggg"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/solver/sessions/missing/feedback", feedbackReq{Marks: "bbbbb"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/solver/sessions/missing", nil).Code)

	// contradictory colours for the same letter in the same place
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, path, feedbackReq{Guess: "slate", Marks: "bbgbg"}).Code)
	rec := do(t, s, http.MethodPost, path, feedbackReq{Guess: "slate", Marks: "gbbbb"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"contradiction"}`, rec.Body.String())
}

func TestPlay(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/solver/play", playReq{Answer: "route"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[game.Result](t, rec)
	assert.Equal(t, "route", res.Solution)
	assert.Equal(t, "route", res.Guesses[len(res.Guesses)-1].Word)

	rec = do(t, s, http.MethodPost, "/solver/play", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, testAnswers, decodeBody[game.Result](t, rec).Solution)

	rec = do(t, s, http.MethodPost, "/solver/play", playReq{Answer: "zebra"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, true)

	first := decodeBody[dailyRes](t, do(t, s, http.MethodGet, "/daily", nil))
	assert.False(t, first.Cached)
	assert.Equal(t, testAnswers[first.Daily.WordIndex], first.Daily.Result.Solution)

	second := decodeBody[dailyRes](t, do(t, s, http.MethodGet, "/daily", nil))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Daily.Result, second.Daily.Result)

	// without a database every call plays again, same word
	noDB := newTestServer(t, false)
	again := decodeBody[dailyRes](t, do(t, noDB, http.MethodGet, "/daily", nil))
	assert.Equal(t, first.Daily.WordIndex, again.Daily.WordIndex)
}
