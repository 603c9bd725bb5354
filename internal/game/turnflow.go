package game

import (
	"fmt"

	"github.com/lacosa-game/lacosa-server-go/internal/game/cards"
)

// The methods in this file implement the per-turn protocol:
//
//	BEGIN -> (effect resolution) -> EXCHANGE_OFFER -> EXCHANGE_RESPONSE
//	      -> BEGIN (next player)
//
// with the Seduction detour through SEDUCTION_OFFER/SEDUCTION_RESPONSE.
// Every method validates completely before mutating anything, so a
// returned error guarantees the phase, turn pointer, hands and piles
// are exactly as they were.

// requireTurn ensures p holds the turn pointer.
func (g *Game) requireTurn(p *Player) error {
	if p.Position != g.CurrentTurn() {
		return newError(ErrNotYourTurn, "it is not player %s's turn", p.ID)
	}
	return nil
}

// applyDraw handles the once-per-turn draw at the start of a turn.
func (g *Game) applyDraw(p *Player) (string, error) {
	if g.TurnPhase != PhaseBegin {
		return "", newError(ErrWrongPhase, "cannot draw during %s", g.TurnPhase)
	}
	if err := g.requireTurn(p); err != nil {
		return "", err
	}
	if g.drewThisTurn {
		return "", newError(ErrInvalidPlay, "player %s already drew this turn", p.ID)
	}

	if _, err := g.drawCard(p); err != nil {
		return "", err
	}
	g.drewThisTurn = true
	return fmt.Sprintf("%s drew a card", p.Name), nil
}

// applyPlayCard resolves an action card and opens the forced exchange.
func (g *Game) applyPlayCard(p *Player, cardID, targetPlayerID string) (string, error) {
	if g.TurnPhase != PhaseBegin {
		return "", newError(ErrWrongPhase, "cannot play a card during %s", g.TurnPhase)
	}
	if err := g.requireTurn(p); err != nil {
		return "", err
	}

	c := p.cardInHand(cardID)
	if c == nil {
		return "", newError(ErrCardNotOwned, "player %s does not hold card %s", p.ID, cardID)
	}
	if c.Kind != cards.KindAction {
		return "", newError(ErrInvalidPlay, "card %q is %s, only action cards can be played", c.Name, c.Kind)
	}

	var target *Player
	if targetPlayerID != "" {
		target = g.playerByID(targetPlayerID)
		if target == nil {
			return "", newError(ErrInvalidTarget, "player %s not in game %s", targetPlayerID, g.ID)
		}
	}

	summary, err := g.resolveEffect(p, c, target)
	if err != nil {
		return "", err
	}

	// The card leaves the hand only after the effect resolved.
	p.removeFromHand(cardID)
	g.Discarded = append(g.Discarded, c)

	switch {
	case !cardIsAutoplay(c):
		// Dormant: no card currently grants a defense window.
		g.TurnPhase = PhaseActionDefenseRequest
	case c.Name == cards.Seduction:
		g.TurnPhase = PhaseSeductionOffer
	default:
		g.TurnPhase = PhaseExchangeOffer
	}

	return summary, nil
}

// applyDiscard handles a voluntary discard in place of playing a card.
func (g *Game) applyDiscard(p *Player, cardID string) (string, error) {
	if g.TurnPhase != PhaseBegin {
		return "", newError(ErrWrongPhase, "cannot discard during %s", g.TurnPhase)
	}
	if err := g.requireTurn(p); err != nil {
		return "", err
	}

	c, err := g.discardCard(p, cardID)
	if err != nil {
		return "", err
	}

	g.TurnPhase = PhaseExchangeOffer
	return fmt.Sprintf("%s discarded %s", p.Name, c.Name), nil
}

// applyExchangeOffer stages the current player's card for the forced
// exchange. An Infection card may only ever be dealt by The Thing, and
// The Thing card itself can never change hands.
func (g *Game) applyExchangeOffer(p *Player, cardID string) (string, error) {
	if g.TurnPhase != PhaseExchangeOffer && g.TurnPhase != PhaseSeductionOffer {
		return "", newError(ErrWrongPhase, "cannot offer an exchange during %s", g.TurnPhase)
	}
	if err := g.requireTurn(p); err != nil {
		return "", err
	}

	c := p.cardInHand(cardID)
	if c == nil {
		return "", newError(ErrCardNotOwned, "player %s does not hold card %s", p.ID, cardID)
	}
	if err := validateOfferedCard(c, p); err != nil {
		return "", err
	}

	p.ExchangeOffer = cardID
	if g.TurnPhase == PhaseSeductionOffer {
		g.TurnPhase = PhaseSeductionResponse
	} else {
		g.TurnPhase = PhaseExchangeResponse
	}
	return fmt.Sprintf("%s offered a card for exchange", p.Name), nil
}

// applyExchangeResponse completes the exchange: the forced partner
// stages their card, the swap executes and the turn passes on.
func (g *Game) applyExchangeResponse(p *Player, cardID string) (string, error) {
	if g.TurnPhase != PhaseExchangeResponse && g.TurnPhase != PhaseSeductionResponse {
		return "", newError(ErrWrongPhase, "cannot respond to an exchange during %s", g.TurnPhase)
	}

	current := g.currentPlayer()
	if current == nil {
		return "", newError(ErrInvalidGame, "game %s has no current player", g.ID)
	}

	partner := g.exchangePartner(current)
	if partner == nil {
		return "", newError(ErrInvalidExchange, "no exchange partner available")
	}
	if p.ID != partner.ID {
		return "", newError(ErrNotYourTurn, "player %s is not the exchange partner", p.ID)
	}

	c := p.cardInHand(cardID)
	if c == nil {
		return "", newError(ErrCardNotOwned, "player %s does not hold card %s", p.ID, cardID)
	}
	if err := validateOfferedCard(c, p); err != nil {
		return "", err
	}
	if current.cardInHand(current.ExchangeOffer) == nil {
		return "", newError(ErrInvalidExchange, "staged card %s no longer in hand", current.ExchangeOffer)
	}

	if err := g.exchangeCards(current, current.ExchangeOffer, p, cardID); err != nil {
		return "", err
	}

	current.ExchangeOffer = ""
	p.ExchangeOffer = ""
	g.CurrentTarget = ""
	g.TurnPhase = PhaseBegin
	g.advanceTurn()

	return fmt.Sprintf("%s and %s exchanged cards", current.Name, p.Name), nil
}

// exchangePartner resolves the forced partner for the in-progress
// exchange: the seduced target during the seduction sub-protocol, the
// neighbor in turn direction otherwise.
func (g *Game) exchangePartner(current *Player) *Player {
	if g.TurnPhase == PhaseSeductionResponse {
		target := g.playerByID(g.CurrentTarget)
		if target == nil || target.IsDead {
			return nil
		}
		return target
	}
	return g.neighborInTurnDirection(current)
}

// validateOfferedCard applies the staging rules shared by both sides of
// an exchange.
func validateOfferedCard(c *Card, holder *Player) error {
	if c.Kind == cards.KindTheThing {
		return newError(ErrInvalidExchange, "The Thing card can never be exchanged")
	}
	if c.Kind == cards.KindInfection && holder.Role != RoleTheThing {
		return newError(ErrInvalidExchange,
			"player %s may not deal an infection card as %s", holder.ID, holder.Role)
	}
	return nil
}
