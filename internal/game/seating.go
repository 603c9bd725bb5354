package game

import (
	"github.com/lacosa-game/lacosa-server-go/internal/game/turnorder"
)

// assignSeating randomly permutes the players around the table and
// assigns dense positions 0..N-1, then initializes the turn tracker.
func (g *Game) assignSeating() error {
	live := g.livePlayers()
	g.rng.Shuffle(len(live), func(i, j int) {
		live[i], live[j] = live[j], live[i]
	})
	for pos, p := range live {
		p.Position = pos
	}

	order, err := turnorder.New(len(live))
	if err != nil {
		return err
	}
	g.order = order
	return nil
}

// advanceTurn moves the turn pointer one live seat in the direction of
// play and resets the per-turn state.
func (g *Game) advanceTurn() {
	g.order.Advance()
	g.drewThisTurn = false
	g.turnsTaken++
	g.clearReveals()
}

// killPlayer marks the player dead, moves their whole hand to the
// discard pile and re-densifies positions so live seats stay contiguous.
// The turn pointer keeps denoting the same relative next player.
func (g *Game) killPlayer(p *Player) error {
	if p.IsDead {
		return newError(ErrInvalidPlayer, "player %s is already dead", p.ID)
	}

	if err := g.order.Remove(p.Position); err != nil {
		return err
	}

	for _, c := range p.Hand {
		c.ActiveInfection = false
		g.Discarded = append(g.Discarded, c)
	}
	p.Hand = nil
	p.IsDead = true

	for _, other := range g.Players {
		if !other.IsDead && other.Position > p.Position {
			other.Position--
		}
	}
	return nil
}

// neighborInTurnDirection returns the live player seated next to p in
// the current direction of play, the forced exchange partner after an
// action resolves.
func (g *Game) neighborInTurnDirection(p *Player) *Player {
	return g.playerAtPosition(g.order.Neighbor(p.Position))
}

// swapPositions exchanges the seats of two live players. When one of
// them holds the turn pointer, the pointer follows them to their new
// seat.
func (g *Game) swapPositions(a, b *Player) {
	current := g.order.Current()
	oldA, oldB := a.Position, b.Position
	a.Position, b.Position = oldB, oldA

	switch current {
	case oldA:
		_ = g.order.SetCurrent(a.Position)
	case oldB:
		_ = g.order.SetCurrent(b.Position)
	}
}
