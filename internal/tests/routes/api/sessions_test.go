package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/stephentim/Reversi/internal"
	"github.com/stephentim/Reversi/internal/models"
)

const (
	openingBoard   = "00000008100000000000001008000000"
	fullBlackBoard = "ffffffffffffffff0000000000000000"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	if payload == nil {
		req, err := http.NewRequest(method, target, nil)
		require.NoError(t, err)
		return req
	}

	var buffer bytes.Buffer
	require.NoError(t, json.NewEncoder(&buffer).Encode(payload))

	req, err := http.NewRequest(method, target, &buffer)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeSession(t *testing.T, resp *http.Response) models.SessionResponse {
	t.Helper()

	var session models.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	return session
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()

	var response models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return response
}

func createSession(t *testing.T, app *fiber.App, payload any) models.SessionResponse {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/sessions", payload))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeSession(t, resp)
}

func TestCreateSession(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	require.NotEmpty(t, created.ID)
	require.Equal(t, openingBoard, created.Board)
	require.Equal(t, "black", created.CurrentPlayer)
	require.Equal(t, "human", created.BlackPlayer)
	require.Equal(t, "human", created.WhitePlayer)
	require.Equal(t, models.CountsResponse{Empty: 60, Black: 2, White: 2}, created.Counts)
	require.False(t, created.GameOver)
	require.Empty(t, created.Winner)
}

func TestCreateSessionWithPlayers(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, models.CreateSessionRequest{
		PlayersRequest: models.PlayersRequest{BlackPlayer: "human", WhitePlayer: "ai-4"},
	})

	require.Equal(t, "human", created.BlackPlayer)
	require.Equal(t, "ai-4", created.WhitePlayer)
}

func TestCreateSessionCustomBoard(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, models.CreateSessionRequest{
		Board: openingBoard,
		Turn:  "white",
	})

	require.Equal(t, openingBoard, created.Board)
	require.Equal(t, "white", created.CurrentPlayer)
}

func TestCreateSessionInvalid(t *testing.T) {
	app, _, _ := internal.SetupApp()

	tests := []struct {
		name    string
		payload models.CreateSessionRequest
	}{
		{
			name: "unknown player",
			payload: models.CreateSessionRequest{
				PlayersRequest: models.PlayersRequest{BlackPlayer: "cat"},
			},
		},
		{
			name:    "malformed board",
			payload: models.CreateSessionRequest{Board: "zz"},
		},
		{
			name:    "unknown turn",
			payload: models.CreateSessionRequest{Board: openingBoard, Turn: "green"},
		},
		{
			name:    "turn is not a player",
			payload: models.CreateSessionRequest{Board: openingBoard, Turn: "empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/sessions", tt.payload))
			require.NoError(t, err)

			defer resp.Body.Close()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.NotEmpty(t, decodeError(t, resp).Error)
		})
	}
}

func TestGetSession(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/"+created.ID, nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	fetched := decodeSession(t, resp)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, openingBoard, fetched.Board)
}

func TestGetSessionUnknownID(t *testing.T) {
	app, _, _ := internal.SetupApp()

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/unknown-id", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotEmpty(t, decodeError(t, resp).Error)
}

func TestListSessions(t *testing.T) {
	app, _, _ := internal.SetupApp()

	first := createSession(t, app, nil)
	second := createSession(t, app, nil)

	// Touching a session moves it to the front of the list.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/"+first.ID, nil))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/sessions", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list models.SessionListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, []string{first.ID, second.ID}, list.Sessions)
}

func TestPlayMove(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/"+created.ID+"/moves", models.MoveRequest{Row: 2, Col: 3},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decodeSession(t, resp)
	require.Equal(t, "white", state.CurrentPlayer)
	require.Equal(t, models.CountsResponse{Empty: 59, Black: 4, White: 1}, state.Counts)
	require.Equal(t, "black", state.Grid[2][3])
}

func TestPlayMoveFieldNotation(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/"+created.ID+"/moves", models.MoveRequest{Field: "d3"},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, models.CountsResponse{Empty: 59, Black: 4, White: 1}, decodeSession(t, resp).Counts)
}

func TestPlayMoveIllegal(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	// d4 is already occupied.
	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/"+created.ID+"/moves", models.MoveRequest{Row: 3, Col: 3},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotEmpty(t, decodeError(t, resp).Error)

	// The session is unchanged.
	getResp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/"+created.ID, nil))
	require.NoError(t, err)

	defer getResp.Body.Close()

	require.Equal(t, openingBoard, decodeSession(t, getResp).Board)
}

func TestPlayMoveGameOver(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, models.CreateSessionRequest{Board: fullBlackBoard})
	require.True(t, created.GameOver)
	require.Equal(t, "black", created.Winner)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/"+created.ID+"/moves", models.MoveRequest{Row: 2, Col: 3},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPlayMoveBadBody(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	req, err := http.NewRequest(
		http.MethodPost, "/api/sessions/"+created.ID+"/moves", bytes.NewBufferString("{"),
	)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlayMoveUnknownSession(t *testing.T) {
	app, _, _ := internal.SetupApp()

	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/unknown-id/moves", models.MoveRequest{Row: 2, Col: 3},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResetSession(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPost, "/api/sessions/"+created.ID+"/moves", models.MoveRequest{Field: "d3"},
	))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/sessions/"+created.ID+"/reset", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decodeSession(t, resp)
	require.Equal(t, openingBoard, state.Board)
	require.Equal(t, "black", state.CurrentPlayer)
}

func TestSetPlayers(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPut, "/api/sessions/"+created.ID+"/players",
		models.PlayersRequest{BlackPlayer: "human", WhitePlayer: "ai-5"},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decodeSession(t, resp)
	require.Equal(t, "human", state.BlackPlayer)
	require.Equal(t, "ai-5", state.WhitePlayer)
}

func TestSetPlayersInvalid(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodPut, "/api/sessions/"+created.ID+"/players",
		models.PlayersRequest{BlackPlayer: "cat"},
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetHints(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/"+created.ID+"/hints", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hints models.HintsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hints))
	require.Len(t, hints.Moves, 4)
	require.Equal(t, models.MoveResponse{Row: 2, Col: 3, Field: "d3"}, hints.Moves[0])
}

func TestGetHintsForPlayer(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(
		t, http.MethodGet, "/api/sessions/"+created.ID+"/hints?player=white", nil,
	))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hints models.HintsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hints))
	require.Len(t, hints.Moves, 4)
	require.Equal(t, models.MoveResponse{Row: 2, Col: 4, Field: "e3"}, hints.Moves[0])

	badResp, err := app.Test(jsonRequest(
		t, http.MethodGet, "/api/sessions/"+created.ID+"/hints?player=bogus", nil,
	))
	require.NoError(t, err)

	defer badResp.Body.Close()

	require.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	app, _, _ := internal.SetupApp()

	created := createSession(t, app, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/sessions/"+created.ID, nil))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/sessions/"+created.ID, nil))
	require.NoError(t, err)

	defer getResp.Body.Close()

	require.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// Deleting twice fails the same way.
	again, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/sessions/"+created.ID, nil))
	require.NoError(t, err)

	defer again.Body.Close()

	require.Equal(t, http.StatusNotFound, again.StatusCode)
}
