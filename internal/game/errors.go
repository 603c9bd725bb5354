package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a core failure so the transport layer can map it
// to a user-visible status without inspecting message text.
type ErrorKind string

const (
	ErrInvalidGame         ErrorKind = "INVALID_GAME"
	ErrInvalidPlayer       ErrorKind = "INVALID_PLAYER"
	ErrInvalidCard         ErrorKind = "INVALID_CARD"
	ErrCardNotOwned        ErrorKind = "CARD_NOT_OWNED"
	ErrNotYourTurn         ErrorKind = "NOT_YOUR_TURN"
	ErrWrongPhase          ErrorKind = "WRONG_PHASE"
	ErrInvalidTarget       ErrorKind = "INVALID_TARGET"
	ErrInvalidPlay         ErrorKind = "INVALID_PLAY"
	ErrInvalidExchange     ErrorKind = "INVALID_EXCHANGE"
	ErrInfectionLocked     ErrorKind = "INFECTION_LOCKED"
	ErrDeckExhausted       ErrorKind = "DECK_EXHAUSTED"
	ErrInsufficientPlayers ErrorKind = "INSUFFICIENT_PLAYERS"
	ErrGameInProgress      ErrorKind = "GAME_IN_PROGRESS"
	ErrInvalidSettings     ErrorKind = "INVALID_SETTINGS"
)

// Error is a core failure carrying its kind. All validation errors are
// raised before any state mutation, so a returned *Error guarantees the
// game aggregate is unchanged.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from err, unwrapping as needed.
// Returns the empty kind for non-core errors.
func KindOf(err error) ErrorKind {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsFatal reports whether err indicates a broken session invariant that
// should abort the game session rather than be retried.
func IsFatal(err error) bool {
	return IsKind(err, ErrDeckExhausted)
}
