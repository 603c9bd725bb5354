package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/lacosa-game/lacosa-server-go/internal/game/cards"
	"github.com/lacosa-game/lacosa-server-go/internal/game/turnorder"
)

// startedGame builds an in-progress game with n players seated in id
// order at positions 0..n-1, empty hands and an empty deck. Tests stack
// whatever cards they need on top.
func startedGame(t *testing.T, n int) *Game {
	t.Helper()

	g := &Game{
		ID:         "game-1",
		Name:       "cabin",
		HostID:     "p0",
		MinPlayers: 4,
		MaxPlayers: 12,
		InGame:     true,
		TurnPhase:  PhaseBegin,
		rng:        rand.New(rand.NewSource(7)),
	}
	for i := 0; i < n; i++ {
		g.Players = append(g.Players, &Player{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("player%d", i),
			Position: i,
		})
	}

	order, err := turnorder.New(n)
	if err != nil {
		t.Fatalf("failed to build turn tracker: %v", err)
	}
	g.order = order
	g.startingPlayers = n
	return g
}

var testCardSeq int

func newTestCard(name cards.Name, kind cards.Kind) *Card {
	testCardSeq++
	return &Card{
		ID:   fmt.Sprintf("card-%d", testCardSeq),
		Name: name,
		Kind: kind,
	}
}

// giveCard puts a fresh card of the given name into p's hand and keeps
// the conservation total in step.
func giveCard(g *Game, p *Player, name cards.Name, kind cards.Kind) *Card {
	c := newTestCard(name, kind)
	p.Hand = append(p.Hand, c)
	g.totalCards++
	return c
}

func stackDeck(g *Game, name cards.Name, kind cards.Kind) *Card {
	c := newTestCard(name, kind)
	g.Deck = append(g.Deck, c)
	g.totalCards++
	return c
}

// countCards sums deck, discard pile and every hand; it must always
// equal g.totalCards while the game runs.
func countCards(g *Game) int {
	total := len(g.Deck) + len(g.Discarded)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}

func requireConservation(t *testing.T, g *Game) {
	t.Helper()
	if got := countCards(g); got != g.totalCards {
		t.Fatalf("card conservation broken: %d cards in play, expected %d", got, g.totalCards)
	}
}
