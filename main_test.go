package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Cameron-Kurotori/pessimist/sdk"
	"github.com/Cameron-Kurotori/pessimist/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moveRequest = `{
  "game": {"id": "game-1", "ruleset": {"name": "standard", "version": "v1.0.0"}, "timeout": 40},
  "turn": 3,
  "board": {
    "height": 7,
    "width": 7,
    "food": [{"x": 5, "y": 5}],
    "hazards": [],
    "snakes": [
      {"id": "me", "name": "me", "health": 90, "body": [{"x": 1, "y": 1}, {"x": 1, "y": 2}, {"x": 1, "y": 3}], "head": {"x": 1, "y": 1}, "length": 3}
    ]
  },
  "you": {"id": "me", "name": "me", "health": 90, "body": [{"x": 1, "y": 1}, {"x": 1, "y": 2}, {"x": 1, "y": 3}], "head": {"x": 1, "y": 1}, "length": 3}
}`

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	h := testServer(t).routes()
	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	info := sdk.BattlesnakeInfoResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1", info.APIVersion)
	assert.Equal(t, "cameron-kurotori", info.Author)
}

func TestHandleGame(t *testing.T) {
	s := testServer(t)
	h := s.routes()

	rec := do(t, h, http.MethodPost, "/start", moveRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.session.Summary().Running)

	rec = do(t, h, http.MethodPost, "/move", moveRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	response := sdk.BattlesnakeMoveResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	// Up is the neck.
	assert.Contains(t, []sdk.BattlesnakeMove{sdk.BattlesnakeMove_Left, sdk.BattlesnakeMove_Right, sdk.BattlesnakeMove_Down}, response.Move)
	assert.NotEmpty(t, response.Shout)

	rec = do(t, h, http.MethodPost, "/end", moveRequest)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := stats.Summary{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, stats.Summary{Games: 1, Wins: 1, WinRatio: 1, AverageTurns: 3}, summary)
}

func TestHandleMoveInvalidBody(t *testing.T) {
	h := testServer(t).routes()
	rec := do(t, h, http.MethodPost, "/move", "{not json")
	require.Equal(t, http.StatusOK, rec.Code)

	response := sdk.BattlesnakeMoveResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, sdk.BattlesnakeMove_Up, response.Move)
}

func TestHandleInvalidBody(t *testing.T) {
	h := testServer(t).routes()
	for _, path := range []string{"/start", "/end"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, path, "{not json")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleStatsMethod(t *testing.T) {
	h := testServer(t).routes()
	rec := do(t, h, http.MethodPost, "/stats", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
