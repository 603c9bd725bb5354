package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lacosa-game/lacosa-server-go/internal/game"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	engine := game.NewEngine(4, 12, logger)
	gateway := NewGateway(1024, 1024, logger)
	engine.SetNotifier(gateway)
	return New(engine, gateway, nil, logger).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthRoute(t *testing.T) {
	router := testRouter()
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetGame(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"name":        "cabin",
		"player_name": "host",
		"min_players": 4,
		"max_players": 6,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	gameID, _ := body["game_id"].(string)
	playerID, _ := body["player_id"].(string)
	require.NotEmpty(t, gameID)
	require.NotEmpty(t, playerID)

	w = doJSON(t, router, http.MethodGet, "/games/"+gameID+"?player_id="+playerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/games", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := decodeBody(t, w)
	games, _ := listing["games"].([]interface{})
	assert.Len(t, games, 1)
}

func TestCreateGame_MissingFields(t *testing.T) {
	router := testRouter()
	w := doJSON(t, router, http.MethodPost, "/games", gin.H{"name": "cabin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	router := testRouter()

	// Unknown game ids map to 404.
	w := doJSON(t, router, http.MethodPost, "/games/missing/join", gin.H{"player_name": "guest"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(game.ErrInvalidGame), body["kind"])

	// Rule violations map to 400.
	w = doJSON(t, router, http.MethodPost, "/games", gin.H{
		"name":        "cabin",
		"player_name": "host",
		"min_players": 4,
		"max_players": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	gameID := created["game_id"].(string)
	hostID := created["player_id"].(string)

	w = doJSON(t, router, http.MethodPost, "/games/"+gameID+"/start", gin.H{"player_id": hostID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, string(game.ErrInsufficientPlayers), body["kind"])
}

func TestFullLobbyFlowOverHTTP(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/games", gin.H{
		"name":        "cabin",
		"player_name": "host",
		"min_players": 4,
		"max_players": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	gameID := created["game_id"].(string)
	hostID := created["player_id"].(string)

	for i := 0; i < 3; i++ {
		w = doJSON(t, router, http.MethodPost, "/games/"+gameID+"/join",
			gin.H{"player_name": fmt.Sprintf("guest%d", i)})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/games/"+gameID+"/start", gin.H{"player_id": hostID})
	require.Equal(t, http.StatusOK, w.Code)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.InGame)
	assert.Len(t, snap.Players, 4)

	// A started game no longer shows up as joinable.
	w = doJSON(t, router, http.MethodGet, "/games", nil)
	listing := decodeBody(t, w)
	games, _ := listing["games"].([]interface{})
	assert.Empty(t, games)
}

func TestResultsRouteWithoutDatabase(t *testing.T) {
	router := testRouter()
	w := doJSON(t, router, http.MethodGet, "/results", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
