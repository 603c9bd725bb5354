package game

import (
	"math/rand"
	"time"

	"github.com/lacosa-game/lacosa-server-go/internal/game/cards"
	"github.com/lacosa-game/lacosa-server-go/internal/game/turnorder"
)

// Role is a player's secret allegiance.
type Role int

const (
	RoleHuman Role = iota
	RoleInfected
	RoleTheThing
)

var roleNames = map[Role]string{
	RoleHuman:    "HUMAN",
	RoleInfected: "INFECTED",
	RoleTheThing: "THE_THING",
}

func (r Role) String() string {
	return roleNames[r]
}

// WinningSide tags the side a finished game was decided for.
type WinningSide string

const (
	WinHumans           WinningSide = "HUMANS"
	WinTheThing         WinningSide = "THE_THING"
	WinThingAndInfected WinningSide = "THE_THING_AND_INFECTED"
)

// Card is a unique physical card instance. Cards are created in bulk at
// deck-build time and only ever move between the deck, a hand and the
// discard pile; they are never duplicated or destroyed while the game
// is running.
type Card struct {
	ID          string
	Name        cards.Name
	Kind        cards.Kind
	Description string

	// ActiveInfection marks an Infection card that carries a live
	// infection payload. Such a card can never be voluntarily shed.
	ActiveInfection bool
}

// Reveal records cards made temporarily visible to one player by a card
// effect. Reveals are cleared at every phase reset.
type Reveal struct {
	OwnerID   string
	OwnerName string
	Cards     []*Card
}

// Player is a seat at the table. Position is a dense index 0..liveCount-1
// among live players, re-densified whenever a player dies.
type Player struct {
	ID       string
	Name     string
	Position int
	Role     Role
	IsDead   bool
	Hand     []*Card

	InLockdown   bool
	LeftBarrier  bool
	RightBarrier bool

	// ExchangeOffer is the card id staged for the in-progress
	// exchange, empty when none.
	ExchangeOffer string

	Reveals []Reveal
}

func (p *Player) cardInHand(cardID string) *Card {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

func (p *Player) removeFromHand(cardID string) *Card {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c
		}
	}
	return nil
}

func (p *Player) obstructed() bool {
	return p.InLockdown || p.LeftBarrier || p.RightBarrier
}

// Game is the full mutable aggregate for one session. It exclusively
// owns its players and cards; all mutation happens under the session
// lock held by the engine.
type Game struct {
	ID           string
	Name         string
	PasswordHash []byte
	HostID       string
	MinPlayers   int
	MaxPlayers   int

	Players []*Player

	InGame         bool
	IsDone         bool
	GameOverStatus WinningSide
	WinnerIDs      []string

	TurnPhase     TurnPhase
	CurrentTarget string

	Deck      []*Card
	Discarded []*Card

	// order tracks seating, direction and the turn pointer once the
	// game has started.
	order *turnorder.Tracker

	// totalCards locks the conservation invariant: deck + discard +
	// all hands always sum to this.
	totalCards int

	// startingPlayers is the live count at game start, kept for the
	// fully-populated win branch.
	startingPlayers int

	// drewThisTurn guards against drawing twice in one turn.
	drewThisTurn bool

	// turnsTaken counts completed turns for the result record.
	turnsTaken int

	rng       *rand.Rand
	CreatedAt time.Time
	StartedAt time.Time
}

// LiveCount returns the number of live players (numberOfPlayers in the
// modulo arithmetic sense).
func (g *Game) LiveCount() int {
	if g.order != nil {
		return g.order.Size()
	}
	n := 0
	for _, p := range g.Players {
		if !p.IsDead {
			n++
		}
	}
	return n
}

// CurrentTurn returns the position whose turn it is, 0 before start.
func (g *Game) CurrentTurn() int {
	if g.order == nil {
		return 0
	}
	return g.order.Current()
}

// GoingClockwise reports the direction of play.
func (g *Game) GoingClockwise() bool {
	if g.order == nil {
		return true
	}
	return g.order.Clockwise()
}

func (g *Game) playerByID(playerID string) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (g *Game) playerAtPosition(pos int) *Player {
	for _, p := range g.Players {
		if !p.IsDead && p.Position == pos {
			return p
		}
	}
	return nil
}

func (g *Game) currentPlayer() *Player {
	return g.playerAtPosition(g.CurrentTurn())
}

func (g *Game) thingPlayer() *Player {
	for _, p := range g.Players {
		if p.Role == RoleTheThing {
			return p
		}
	}
	return nil
}

func (g *Game) hasPassword() bool {
	return len(g.PasswordHash) > 0
}

// clearReveals drops every player's temporary card reveals. Called on
// every phase reset.
func (g *Game) clearReveals() {
	for _, p := range g.Players {
		p.Reveals = nil
	}
}
