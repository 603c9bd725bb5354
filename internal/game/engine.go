package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ActionKind names an inbound player action.
type ActionKind string

const (
	ActionPlayCard         ActionKind = "PLAY_CARD"
	ActionDiscard          ActionKind = "DISCARD"
	ActionDraw             ActionKind = "DRAW"
	ActionExchangeOffer    ActionKind = "EXCHANGE_OFFER"
	ActionExchangeResponse ActionKind = "EXCHANGE_RESPONSE"
)

// Action is an inbound player action. The payload fields used depend on
// the kind: playing a card takes a card id plus an optional target,
// everything else takes a card id only.
type Action struct {
	Kind           ActionKind `json:"kind"`
	CardID         string     `json:"card_id,omitempty"`
	TargetPlayerID string     `json:"target_player_id,omitempty"`
}

// GameListing is one row of the joinable-games list.
type GameListing struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MinPlayers      int    `json:"min_players"`
	MaxPlayers      int    `json:"max_players"`
	NumberOfPlayers int    `json:"number_of_players"`
	HasPassword     bool   `json:"has_password"`
}

// session pairs a game aggregate with the lock that serializes all
// mutations for it. Actions for different games run in parallel;
// actions for the same game queue FIFO on the mutex.
type session struct {
	mu   sync.Mutex
	game *Game
}

// Engine is the authority over all running game sessions. It owns the
// session map; each session's aggregate is only ever touched under that
// session's lock.
type Engine struct {
	logger     *zap.Logger
	minPlayers int
	maxPlayers int

	mu       sync.RWMutex
	sessions map[string]*session

	notifier Notifier
	results  ResultRecorder

	// seedFn produces per-game RNG seeds; replaceable in tests.
	seedFn func() int64
}

// NewEngine creates an engine enforcing the given table-size bounds.
func NewEngine(minPlayers, maxPlayers int, logger *zap.Logger) *Engine {
	return &Engine{
		logger:     logger,
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		sessions:   make(map[string]*session),
		notifier:   NopNotifier{},
		seedFn:     func() int64 { return time.Now().UnixNano() },
	}
}

// SetNotifier wires the connection-layer collaborator that receives
// snapshot broadcasts.
func (e *Engine) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// SetResultRecorder wires the optional persistence collaborator for
// finished-game results.
func (e *Engine) SetResultRecorder(r ResultRecorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results = r
}

// SetSeedFunc replaces the per-game RNG seed source. Tests use this to
// make shuffles and deals deterministic.
func (e *Engine) SetSeedFunc(fn func() int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seedFn = fn
}

func (e *Engine) getSession(gameID string) (*session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.sessions[gameID]
	if !ok {
		return nil, newError(ErrInvalidGame, "game %s not found", gameID)
	}
	return s, nil
}

func (e *Engine) getNotifier() Notifier {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.notifier
}

func (e *Engine) getResults() ResultRecorder {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.results
}

// CreateGame opens a new session with the creator seated as host.
// Returns the host's player id and the host-redacted snapshot.
func (e *Engine) CreateGame(name, hostName, password string, minPlayers, maxPlayers int) (string, *Snapshot, error) {
	if name == "" || hostName == "" {
		return "", nil, newError(ErrInvalidSettings, "game and host names are required")
	}
	if minPlayers < e.minPlayers || maxPlayers > e.maxPlayers || minPlayers > maxPlayers {
		return "", nil, newError(ErrInvalidSettings,
			"player bounds %d..%d outside supported range %d..%d",
			minPlayers, maxPlayers, e.minPlayers, e.maxPlayers)
	}

	var passwordHash []byte
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", nil, fmt.Errorf("failed to hash game password: %w", err)
		}
		passwordHash = hash
	}

	host := &Player{ID: uuid.NewString(), Name: hostName}
	g := &Game{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: passwordHash,
		HostID:       host.ID,
		MinPlayers:   minPlayers,
		MaxPlayers:   maxPlayers,
		Players:      []*Player{host},
		TurnPhase:    PhaseBegin,
		CreatedAt:    time.Now(),
	}

	e.mu.Lock()
	g.rng = rand.New(rand.NewSource(e.seedFn()))
	e.sessions[g.ID] = &session{game: g}
	e.mu.Unlock()

	e.getNotifier().MoveSubscriber(host.ID, "", g.ID)

	e.logger.Info("game created",
		zap.String("game_id", g.ID),
		zap.String("name", name),
		zap.String("host", hostName),
		zap.Bool("has_password", g.hasPassword()),
	)

	return host.ID, g.snapshotFor(host.ID, fmt.Sprintf("%s created game %s", hostName, name)), nil
}

// JoinGame seats a new player in a waiting game.
func (e *Engine) JoinGame(gameID, playerName, password string) (string, *Snapshot, error) {
	s, err := e.getSession(gameID)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	g := s.game

	if g.InGame || g.IsDone {
		s.mu.Unlock()
		return "", nil, newError(ErrGameInProgress, "game %s already started", gameID)
	}
	if len(g.Players) >= g.MaxPlayers {
		s.mu.Unlock()
		return "", nil, newError(ErrInvalidSettings, "game %s is full", gameID)
	}
	if g.hasPassword() {
		if bcrypt.CompareHashAndPassword(g.PasswordHash, []byte(password)) != nil {
			s.mu.Unlock()
			return "", nil, newError(ErrInvalidSettings, "incorrect password for game %s", gameID)
		}
	}

	p := &Player{ID: uuid.NewString(), Name: playerName}
	g.Players = append(g.Players, p)

	event := fmt.Sprintf("%s joined game %s", playerName, g.Name)
	views := g.snapshotViews(event)
	own := g.snapshotFor(p.ID, event)
	s.mu.Unlock()

	e.getNotifier().MoveSubscriber(p.ID, "", gameID)
	e.getNotifier().Broadcast(gameID, views)

	e.logger.Info("player joined",
		zap.String("game_id", gameID),
		zap.String("player_id", p.ID),
		zap.String("player", playerName),
	)

	return p.ID, own, nil
}

// LeaveGame removes a player from a waiting game. The host leaving
// cancels the whole session.
func (e *Engine) LeaveGame(gameID, playerID string) error {
	s, err := e.getSession(gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	g := s.game

	if g.InGame {
		s.mu.Unlock()
		return newError(ErrGameInProgress, "cannot leave a running game")
	}
	p := g.playerByID(playerID)
	if p == nil {
		s.mu.Unlock()
		return newError(ErrInvalidPlayer, "player %s not in game %s", playerID, gameID)
	}

	if p.ID == g.HostID {
		g.IsDone = true
		g.TurnPhase = PhaseFinished
		views := g.snapshotViews(fmt.Sprintf("host %s closed game %s", p.Name, g.Name))
		s.mu.Unlock()

		e.mu.Lock()
		delete(e.sessions, gameID)
		e.mu.Unlock()

		e.getNotifier().Broadcast(gameID, views)
		e.logger.Info("game cancelled by host", zap.String("game_id", gameID))
		return nil
	}

	for i, other := range g.Players {
		if other.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			break
		}
	}
	views := g.snapshotViews(fmt.Sprintf("%s left game %s", p.Name, g.Name))
	s.mu.Unlock()

	e.getNotifier().MoveSubscriber(playerID, gameID, "")
	e.getNotifier().Broadcast(gameID, views)

	e.logger.Info("player left",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
	)
	return nil
}

// StartGame seats, shuffles, deals and opens the first turn. Host only.
func (e *Engine) StartGame(gameID, playerID string) (*Snapshot, error) {
	s, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	g := s.game

	if playerID != g.HostID {
		s.mu.Unlock()
		return nil, newError(ErrInvalidPlayer, "only the host may start the game")
	}
	if g.InGame || g.IsDone {
		s.mu.Unlock()
		return nil, newError(ErrGameInProgress, "game %s already started", gameID)
	}
	if len(g.Players) < g.MinPlayers {
		s.mu.Unlock()
		return nil, newError(ErrInsufficientPlayers,
			"game %s has %d of %d required players", gameID, len(g.Players), g.MinPlayers)
	}

	if err := g.assignSeating(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := g.buildDeck(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := g.dealInitialHands(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	g.InGame = true
	g.StartedAt = time.Now()
	g.startingPlayers = g.LiveCount()
	g.TurnPhase = PhaseBegin

	event := fmt.Sprintf("game %s started", g.Name)
	views := g.snapshotViews(event)
	own := g.snapshotFor(playerID, event)
	playerCount := len(g.Players)
	total := g.totalCards
	s.mu.Unlock()

	e.getNotifier().Broadcast(gameID, views)

	e.logger.Info("game started",
		zap.String("game_id", gameID),
		zap.Int("players", playerCount),
		zap.Int("deck_size", total),
	)

	return own, nil
}

// ListJoinableGames lists waiting games that still have open seats.
func (e *Engine) ListJoinableGames() []GameListing {
	e.mu.RLock()
	sessions := make([]*session, 0, len(e.sessions))
	for _, s := range e.sessions {
		sessions = append(sessions, s)
	}
	e.mu.RUnlock()

	listings := make([]GameListing, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		g := s.game
		if !g.InGame && !g.IsDone && len(g.Players) < g.MaxPlayers {
			listings = append(listings, GameListing{
				ID:              g.ID,
				Name:            g.Name,
				MinPlayers:      g.MinPlayers,
				MaxPlayers:      g.MaxPlayers,
				NumberOfPlayers: len(g.Players),
				HasPassword:     g.hasPassword(),
			})
		}
		s.mu.Unlock()
	}
	return listings
}

// GameSnapshot returns the current state redacted for the viewer.
func (e *Engine) GameSnapshot(gameID, viewerID string) (*Snapshot, error) {
	s, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.snapshotFor(viewerID, ""), nil
}

// TargetablePlayers returns the ids of players a hand card may legally
// target right now, so clients can pre-filter before submitting a play.
func (e *Engine) TargetablePlayers(gameID, playerID, cardID string) ([]string, error) {
	s, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	if !g.InGame {
		return nil, newError(ErrWrongPhase, "game %s has not started", gameID)
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, newError(ErrInvalidPlayer, "player %s not in game %s", playerID, gameID)
	}
	c := p.cardInHand(cardID)
	if c == nil {
		return nil, newError(ErrCardNotOwned, "player %s does not hold card %s", playerID, cardID)
	}

	targets := g.EligibleTargets(p, c)
	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// SubmitAction validates and applies one player action under the
// session lock. Rejected actions leave the aggregate untouched; the
// phase and turn pointer never move on a rejection.
func (e *Engine) SubmitAction(gameID, playerID string, action Action) (*Snapshot, error) {
	s, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	g := s.game

	p := g.playerByID(playerID)
	if p == nil {
		s.mu.Unlock()
		return nil, newError(ErrInvalidPlayer, "player %s not in game %s", playerID, gameID)
	}
	if !g.InGame || g.IsDone || g.TurnPhase == PhaseFinished {
		s.mu.Unlock()
		return nil, newError(ErrWrongPhase, "game %s is not accepting actions", gameID)
	}
	if p.IsDead {
		s.mu.Unlock()
		return nil, newError(ErrInvalidPlayer, "player %s is dead", playerID)
	}

	var event string
	switch action.Kind {
	case ActionDraw:
		event, err = g.applyDraw(p)
	case ActionPlayCard:
		event, err = g.applyPlayCard(p, action.CardID, action.TargetPlayerID)
	case ActionDiscard:
		event, err = g.applyDiscard(p, action.CardID)
	case ActionExchangeOffer:
		event, err = g.applyExchangeOffer(p, action.CardID)
	case ActionExchangeResponse:
		event, err = g.applyExchangeResponse(p, action.CardID)
	default:
		err = newError(ErrInvalidPlay, "unknown action kind %q", action.Kind)
	}

	if err != nil {
		if IsFatal(err) {
			// A broken conservation invariant cannot be repaired in
			// place; flag the session and stop accepting actions.
			g.IsDone = true
			g.TurnPhase = PhaseFinished
			e.logger.Error("aborting game session",
				zap.String("game_id", gameID),
				zap.Error(err),
			)
		}
		s.mu.Unlock()
		return nil, err
	}

	var result *GameResult
	if win, over := EvaluateWinner(g); over {
		result = g.finish(win)
	}

	views := g.snapshotViews(event)
	own := g.snapshotFor(playerID, event)
	s.mu.Unlock()

	e.getNotifier().Broadcast(gameID, views)

	if result != nil {
		e.recordResult(*result)
		e.logger.Info("game finished",
			zap.String("game_id", gameID),
			zap.String("winning_side", string(result.Side)),
			zap.Int("turns", result.TurnsTaken),
		)
	}

	e.logger.Debug("action applied",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("action", string(action.Kind)),
		zap.String("phase", own.TurnPhase),
	)

	return own, nil
}

// finish closes the game: winners are recorded and every card is
// destroyed. Must be called under the session lock.
func (g *Game) finish(win WinResult) *GameResult {
	g.IsDone = true
	g.InGame = false
	g.TurnPhase = PhaseFinished
	g.GameOverStatus = win.Side
	g.WinnerIDs = win.Winners

	g.Deck = nil
	g.Discarded = nil
	for _, p := range g.Players {
		p.Hand = nil
		p.Reveals = nil
		p.ExchangeOffer = ""
	}
	g.totalCards = 0

	return &GameResult{
		GameID:      g.ID,
		Name:        g.Name,
		Side:        win.Side,
		WinnerIDs:   win.Winners,
		PlayerCount: len(g.Players),
		TurnsTaken:  g.turnsTaken,
	}
}

func (e *Engine) recordResult(result GameResult) {
	recorder := e.getResults()
	if recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.RecordResult(ctx, result); err != nil {
			e.logger.Warn("failed to record game result",
				zap.String("game_id", result.GameID),
				zap.Error(err),
			)
		}
	}()
}
