package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lacosa-game/lacosa-server-go/internal/game"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Gateway fans game snapshots out to websocket subscribers. It
// implements game.Notifier; the core hands it redacted per-viewer
// snapshots and never touches sockets itself.
type Gateway struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string

	mu     sync.Mutex
	gameID string
}

func (c *wsClient) game() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

func (c *wsClient) setGame(gameID string) {
	c.mu.Lock()
	c.gameID = gameID
	c.mu.Unlock()
}

// NewGateway creates a websocket gateway.
func NewGateway(readBuf, writeBuf int, logger *zap.Logger) *Gateway {
	return &Gateway{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Broadcast sends each subscriber of the game its own redacted view.
// Spectators and unknown viewers get the fully redacted view.
func (gw *Gateway) Broadcast(gameID string, views map[string]*game.Snapshot) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	for c := range gw.clients {
		if c.game() != gameID {
			continue
		}

		snap, ok := views[c.userID]
		if !ok {
			snap = views[""]
		}
		if snap == nil {
			continue
		}

		payload, err := json.Marshal(snap)
		if err != nil {
			gw.logger.Warn("failed to marshal snapshot",
				zap.String("game_id", gameID),
				zap.Error(err),
			)
			continue
		}

		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop the frame rather than block the
			// broadcast for everyone else.
			gw.logger.Debug("dropped snapshot for slow client",
				zap.String("game_id", gameID),
				zap.String("user_id", c.userID),
			)
		}
	}
}

// MoveSubscriber repoints all of a user's connections to another game.
func (gw *Gateway) MoveSubscriber(userID, fromGameID, toGameID string) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	for c := range gw.clients {
		if c.userID == userID && c.game() == fromGameID {
			c.setGame(toGameID)
		}
	}
}

// HandleWS upgrades an HTTP request to a websocket subscription.
// Query parameters: game_id (required), player_id (optional; absent
// means spectator).
func (gw *Gateway) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id is required"})
		return
	}
	playerID := c.Query("player_id")

	conn, err := gw.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		gw.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 32),
		userID: playerID,
		gameID: gameID,
	}

	gw.mu.Lock()
	gw.clients[client] = struct{}{}
	gw.mu.Unlock()

	gw.logger.Info("websocket client connected",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
	)

	go gw.writePump(client)
	go gw.readPump(client)
}

func (gw *Gateway) remove(c *wsClient) {
	gw.mu.Lock()
	if _, ok := gw.clients[c]; ok {
		delete(gw.clients, c)
		close(c.send)
	}
	gw.mu.Unlock()
}

// readPump drains inbound frames. Clients submit actions over HTTP, so
// inbound websocket traffic only keeps the connection alive.
func (gw *Gateway) readPump(c *wsClient) {
	defer func() {
		gw.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				gw.logger.Debug("websocket read error",
					zap.String("user_id", c.userID),
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (gw *Gateway) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
