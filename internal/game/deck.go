package game

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lacosa-game/lacosa-server-go/internal/game/cards"
)

const initialHandSize = 4

// buildDeck instantiates every card for this table size and places the
// full set into the game's deck.
func (g *Game) buildDeck() error {
	if g.InGame {
		return newError(ErrGameInProgress, "deck already built for game %s", g.ID)
	}

	composition, err := cards.Composition(g.LiveCount())
	if err != nil {
		if errors.Is(err, cards.ErrInvalidPlayerCount) {
			return newError(ErrInvalidSettings, "unsupported player count %d", g.LiveCount())
		}
		return err
	}

	g.Deck = g.Deck[:0]
	for _, entry := range composition {
		for i := 0; i < entry.Quantity; i++ {
			g.Deck = append(g.Deck, &Card{
				ID:          uuid.NewString(),
				Name:        entry.Name,
				Kind:        entry.Kind,
				Description: cards.Description(entry.Name),
			})
		}
	}
	g.totalCards = len(g.Deck)
	return nil
}

// dealInitialHands gives every player four cards drawn without
// replacement from the Action/Defense portion of the deck, then swaps
// one dealt card of a uniformly chosen player for The Thing card. That
// player's role becomes TheThing; everyone else stays Human.
func (g *Game) dealInitialHands() error {
	var thing *Card
	for _, c := range g.Deck {
		if c.Kind == cards.KindTheThing {
			thing = c
			break
		}
	}
	if thing == nil {
		return newError(ErrInvalidCard, "deck for game %s has no The Thing card", g.ID)
	}

	for _, p := range g.Players {
		for len(p.Hand) < initialHandSize {
			c := g.takeRandomFromDeck(func(c *Card) bool {
				return c.Kind == cards.KindAction || c.Kind == cards.KindDefense
			})
			if c == nil {
				return newError(ErrDeckExhausted, "not enough starter cards for %d players", g.LiveCount())
			}
			p.Hand = append(p.Hand, c)
		}
	}

	// One player trades a dealt card back for The Thing.
	chosen := g.livePlayers()[g.rng.Intn(g.LiveCount())]
	swapped := chosen.removeFromHand(chosen.Hand[g.rng.Intn(len(chosen.Hand))].ID)
	g.removeFromDeck(thing.ID)
	g.Deck = append(g.Deck, swapped)
	chosen.Hand = append(chosen.Hand, thing)
	chosen.Role = RoleTheThing

	return nil
}

// drawCard removes one card uniformly at random from the deck and adds
// it to the player's hand, reshuffling the discard pile into the deck
// first if the deck is empty. Both piles empty means the conservation
// invariant was broken elsewhere; that is fatal for the session.
func (g *Game) drawCard(p *Player) (*Card, error) {
	if len(g.Deck) == 0 {
		if len(g.Discarded) == 0 {
			return nil, newError(ErrDeckExhausted, "deck and discard pile both empty in game %s", g.ID)
		}
		g.Deck = append(g.Deck, g.Discarded...)
		g.Discarded = g.Discarded[:0]
	}

	c := g.takeRandomFromDeck(nil)
	p.Hand = append(p.Hand, c)
	return c, nil
}

// discardCard moves a card from the player's hand to the discard pile.
// A card carrying a live infection can never be voluntarily shed.
func (g *Game) discardCard(p *Player, cardID string) (*Card, error) {
	c := p.cardInHand(cardID)
	if c == nil {
		return nil, newError(ErrCardNotOwned, "player %s does not hold card %s", p.ID, cardID)
	}
	if c.ActiveInfection {
		return nil, newError(ErrInfectionLocked, "card %s carries a live infection", cardID)
	}

	p.removeFromHand(cardID)
	g.Discarded = append(g.Discarded, c)
	return c, nil
}

// exchangeCards swaps one card between two hands atomically and applies
// the role-transfer rule: an Infection card dealt by The Thing, or any
// card already carrying a live infection, turns the recipient Infected.
// Infection cards held by anyone other than The Thing or an already
// infected player indicate a modeling error and reject the exchange
// before any mutation.
func (g *Game) exchangeCards(a *Player, cardAID string, b *Player, cardBID string) error {
	cardA := a.cardInHand(cardAID)
	if cardA == nil {
		return newError(ErrCardNotOwned, "player %s does not hold card %s", a.ID, cardAID)
	}
	cardB := b.cardInHand(cardBID)
	if cardB == nil {
		return newError(ErrCardNotOwned, "player %s does not hold card %s", b.ID, cardBID)
	}

	if err := validateInfectionTransfer(cardA, a); err != nil {
		return err
	}
	if err := validateInfectionTransfer(cardB, b); err != nil {
		return err
	}

	a.removeFromHand(cardAID)
	b.removeFromHand(cardBID)
	a.Hand = append(a.Hand, cardB)
	b.Hand = append(b.Hand, cardA)

	applyInfectionTransfer(cardA, a, b)
	applyInfectionTransfer(cardB, b, a)

	return nil
}

// validateInfectionTransfer rejects an Infection card leaving the hand
// of a player who could not legitimately hold one.
func validateInfectionTransfer(c *Card, giver *Player) error {
	if c.Kind != cards.KindInfection {
		return nil
	}
	if giver.Role != RoleTheThing && giver.Role != RoleInfected {
		return newError(ErrInvalidExchange,
			"player %s holds an infection card but is %s", giver.ID, giver.Role)
	}
	return nil
}

// applyInfectionTransfer converts the receiver after a completed swap.
// Infection propagates from The Thing to the recipient only; a card
// with a live payload converts unconditionally.
func applyInfectionTransfer(c *Card, giver, receiver *Player) {
	if c.ActiveInfection {
		if receiver.Role == RoleHuman {
			receiver.Role = RoleInfected
		}
		return
	}
	if c.Kind == cards.KindInfection && giver.Role == RoleTheThing {
		c.ActiveInfection = true
		if receiver.Role == RoleHuman {
			receiver.Role = RoleInfected
		}
	}
}

// takeRandomFromDeck removes and returns one uniformly random deck card
// matching the filter (nil matches everything), or nil if none match.
func (g *Game) takeRandomFromDeck(match func(*Card) bool) *Card {
	candidates := make([]int, 0, len(g.Deck))
	for i, c := range g.Deck {
		if match == nil || match(c) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	i := candidates[g.rng.Intn(len(candidates))]
	c := g.Deck[i]
	g.Deck = append(g.Deck[:i], g.Deck[i+1:]...)
	return c
}

func (g *Game) removeFromDeck(cardID string) *Card {
	for i, c := range g.Deck {
		if c.ID == cardID {
			g.Deck = append(g.Deck[:i], g.Deck[i+1:]...)
			return c
		}
	}
	return nil
}

func (g *Game) livePlayers() []*Player {
	live := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.IsDead {
			live = append(live, p)
		}
	}
	return live
}
