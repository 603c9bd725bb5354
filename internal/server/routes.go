package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lacosa-game/lacosa-server-go/internal/game"
	"github.com/lacosa-game/lacosa-server-go/internal/repository"
	"go.uber.org/zap"
)

// Server exposes the core over thin HTTP routes. All rules live in the
// engine; handlers only bind payloads and translate error kinds.
type Server struct {
	engine  *game.Engine
	gateway *Gateway
	results *repository.ResultRepository
	logger  *zap.Logger
}

// New creates the HTTP server facade. results may be nil when
// persistence is disabled.
func New(engine *game.Engine, gateway *Gateway, results *repository.ResultRepository, logger *zap.Logger) *Server {
	return &Server{engine: engine, gateway: gateway, results: results, logger: logger}
}

// Router builds the gin route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", s.gateway.HandleWS)

	r.GET("/games", s.handleListGames)
	r.POST("/games", s.handleCreateGame)
	r.GET("/games/:id", s.handleGetGame)
	r.POST("/games/:id/join", s.handleJoinGame)
	r.POST("/games/:id/leave", s.handleLeaveGame)
	r.POST("/games/:id/start", s.handleStartGame)
	r.GET("/games/:id/targets", s.handleTargets)
	r.POST("/games/:id/actions", s.handleAction)

	r.GET("/results", s.handleResults)

	return r
}

type createGameRequest struct {
	Name       string `json:"name" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
	Password   string `json:"password"`
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hostID, snap, err := s.engine.CreateGame(req.Name, req.PlayerName, req.Password, req.MinPlayers, req.MaxPlayers)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game_id":   snap.GameID,
		"player_id": hostID,
		"game":      snap,
	})
}

func (s *Server) handleListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": s.engine.ListJoinableGames()})
}

func (s *Server) handleGetGame(c *gin.Context) {
	snap, err := s.engine.GameSnapshot(c.Param("id"), c.Query("player_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type joinGameRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
	Password   string `json:"password"`
}

func (s *Server) handleJoinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID, snap, err := s.engine.JoinGame(c.Param("id"), req.PlayerName, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player_id": playerID, "game": snap})
}

type playerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

func (s *Server) handleLeaveGame(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.engine.LeaveGame(c.Param("id"), req.PlayerID); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"left": true})
}

func (s *Server) handleStartGame(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.engine.StartGame(c.Param("id"), req.PlayerID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleTargets(c *gin.Context) {
	targets, err := s.engine.TargetablePlayers(c.Param("id"), c.Query("player_id"), c.Query("card_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

type actionRequest struct {
	PlayerID string      `json:"player_id" binding:"required"`
	Action   game.Action `json:"action" binding:"required"`
}

func (s *Server) handleAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.engine.SubmitAction(c.Param("id"), req.PlayerID, req.Action)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleResults(c *gin.Context) {
	if s.results == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results persistence not configured"})
		return
	}

	rows, err := s.results.RecentResults(c.Request.Context(), 20)
	if err != nil {
		s.logger.Error("failed to load recent results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": rows})
}

// writeError maps core error kinds to HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch game.KindOf(err) {
	case game.ErrInvalidGame, game.ErrInvalidPlayer, game.ErrInvalidCard:
		status = http.StatusNotFound
	case game.ErrCardNotOwned, game.ErrNotYourTurn, game.ErrWrongPhase,
		game.ErrInvalidTarget, game.ErrInvalidPlay, game.ErrInvalidExchange,
		game.ErrInfectionLocked, game.ErrInsufficientPlayers,
		game.ErrGameInProgress, game.ErrInvalidSettings:
		status = http.StatusBadRequest
	case game.ErrDeckExhausted:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("unhandled core error", zap.Error(err))
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  string(game.KindOf(err)),
	})
}
