package game

import "context"

// Notifier is the narrow contract the core has with the connection
// layer. The core never touches sockets; it hands redacted snapshots to
// the notifier after every successful mutation.
type Notifier interface {
	// Broadcast fans the per-viewer snapshots out to every socket
	// subscribed to the game. views[""] is the spectator view.
	Broadcast(gameID string, views map[string]*Snapshot)

	// MoveSubscriber reassigns a user's subscription between games.
	// Either game id may be empty.
	MoveSubscriber(userID, fromGameID, toGameID string)
}

// NopNotifier discards all notifications. Used when no gateway is wired
// up, e.g. in tests.
type NopNotifier struct{}

func (NopNotifier) Broadcast(string, map[string]*Snapshot) {}
func (NopNotifier) MoveSubscriber(string, string, string) {}

// ResultRecorder persists the outcome of finished games. Optional; the
// engine works fully in-memory without one.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result GameResult) error
}

// GameResult is the persisted shape of a finished game.
type GameResult struct {
	GameID      string
	Name        string
	Side        WinningSide
	WinnerIDs   []string
	PlayerCount int
	TurnsTaken  int
}
