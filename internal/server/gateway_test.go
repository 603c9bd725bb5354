package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lacosa-game/lacosa-server-go/internal/game"
)

// fakeClient registers a client without a live socket; Broadcast only
// touches the send channel.
func fakeClient(gw *Gateway, userID, gameID string) *wsClient {
	c := &wsClient{
		send:   make(chan []byte, 4),
		userID: userID,
		gameID: gameID,
	}
	gw.mu.Lock()
	gw.clients[c] = struct{}{}
	gw.mu.Unlock()
	return c
}

func receivedSnapshot(t *testing.T, c *wsClient) *game.Snapshot {
	t.Helper()
	select {
	case payload := <-c.send:
		var snap game.Snapshot
		require.NoError(t, json.Unmarshal(payload, &snap))
		return &snap
	default:
		return nil
	}
}

func TestGatewayBroadcast_PicksViewerSpecificSnapshot(t *testing.T) {
	gw := NewGateway(1024, 1024, zap.NewNop())
	player := fakeClient(gw, "p1", "g1")
	spectator := fakeClient(gw, "", "g1")
	elsewhere := fakeClient(gw, "p1", "g2")

	views := map[string]*game.Snapshot{
		"p1": {GameID: "g1", LastEvent: "private"},
		"":   {GameID: "g1", LastEvent: "public"},
	}
	gw.Broadcast("g1", views)

	got := receivedSnapshot(t, player)
	require.NotNil(t, got)
	assert.Equal(t, "private", got.LastEvent)

	got = receivedSnapshot(t, spectator)
	require.NotNil(t, got)
	assert.Equal(t, "public", got.LastEvent)

	assert.Nil(t, receivedSnapshot(t, elsewhere), "client in another game received a frame")
}

func TestGatewayBroadcast_UnknownViewerFallsBackToSpectator(t *testing.T) {
	gw := NewGateway(1024, 1024, zap.NewNop())
	stranger := fakeClient(gw, "p9", "g1")

	gw.Broadcast("g1", map[string]*game.Snapshot{
		"": {GameID: "g1", LastEvent: "public"},
	})

	got := receivedSnapshot(t, stranger)
	require.NotNil(t, got)
	assert.Equal(t, "public", got.LastEvent)
}

func TestGatewayBroadcast_DropsFramesForSlowClients(t *testing.T) {
	gw := NewGateway(1024, 1024, zap.NewNop())
	c := fakeClient(gw, "p1", "g1")
	c.send = make(chan []byte) // unbuffered and never drained

	// Must not block.
	gw.Broadcast("g1", map[string]*game.Snapshot{
		"p1": {GameID: "g1"},
	})
}

func TestGatewayMoveSubscriber(t *testing.T) {
	gw := NewGateway(1024, 1024, zap.NewNop())
	c := fakeClient(gw, "p1", "")

	gw.MoveSubscriber("p1", "", "g1")
	assert.Equal(t, "g1", c.game())

	gw.Broadcast("g1", map[string]*game.Snapshot{
		"p1": {GameID: "g1", LastEvent: "hello"},
	})
	got := receivedSnapshot(t, c)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.LastEvent)

	// Moving away stops further frames.
	gw.MoveSubscriber("p1", "g1", "")
	gw.Broadcast("g1", map[string]*game.Snapshot{
		"p1": {GameID: "g1"},
	})
	assert.Nil(t, receivedSnapshot(t, c))
}
