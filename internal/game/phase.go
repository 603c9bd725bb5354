package game

import "fmt"

// TurnPhase is the state of the per-turn protocol. A turn moves
// Begin -> (effect resolution) -> ExchangeOffer -> ExchangeResponse and
// back to Begin for the next player. The Seduction card detours through
// SeductionOffer -> SeductionResponse with the seduced player as the
// forced partner instead of the positional neighbor.
type TurnPhase int

const (
	PhaseBegin TurnPhase = iota
	PhaseExchangeOffer
	PhaseExchangeResponse
	PhaseSeductionOffer
	PhaseSeductionResponse

	// PhaseActionDefenseRequest is the interrupt state for a targeted
	// player holding a qualifying defense card. Every card currently
	// auto-resolves, so this state is modeled but not yet reachable.
	PhaseActionDefenseRequest

	PhaseFinished
)

var phaseNames = map[TurnPhase]string{
	PhaseBegin:                "BEGIN",
	PhaseExchangeOffer:        "EXCHANGE_OFFER",
	PhaseExchangeResponse:     "EXCHANGE_RESPONSE",
	PhaseSeductionOffer:       "SEDUCTION_OFFER",
	PhaseSeductionResponse:    "SEDUCTION_RESPONSE",
	PhaseActionDefenseRequest: "ACTION_DEFENSE_REQUEST",
	PhaseFinished:             "FINISHED",
}

func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// cardIsAutoplay reports whether a played card resolves without giving
// the target a defense window. The defense interrupt is dormant pending
// rules on which cards are defensible, so every card auto-resolves.
func cardIsAutoplay(*Card) bool {
	return true
}
