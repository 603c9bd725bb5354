package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSeating_DensePositions(t *testing.T) {
	g := startedGame(t, 6)
	require.NoError(t, g.assignSeating())

	seen := make(map[int]bool, 6)
	for _, p := range g.Players {
		require.False(t, seen[p.Position], "position %d assigned twice", p.Position)
		require.GreaterOrEqual(t, p.Position, 0)
		require.Less(t, p.Position, 6)
		seen[p.Position] = true
	}
	assert.Equal(t, 0, g.CurrentTurn())
	assert.True(t, g.GoingClockwise())
}

func TestKillPlayer_PointerKeepsSamePlayer(t *testing.T) {
	g := startedGame(t, 5)
	g.advanceTurn()
	g.advanceTurn()
	require.Equal(t, "p2", g.currentPlayer().ID)

	// A death below the pointer shifts every later seat down; the
	// pointer must keep denoting the same player.
	require.NoError(t, g.killPlayer(g.Players[0]))

	assert.Equal(t, 4, g.LiveCount())
	assert.Equal(t, "p2", g.currentPlayer().ID)
	assert.Equal(t, 1, g.Players[2].Position)
	assert.Equal(t, 0, g.Players[1].Position)
	assert.Equal(t, 3, g.Players[4].Position)
}

func TestKillPlayer_CurrentDiesNextAdvancesCorrectly(t *testing.T) {
	g := startedGame(t, 4)
	g.advanceTurn()
	require.Equal(t, "p1", g.currentPlayer().ID)

	require.NoError(t, g.killPlayer(g.Players[1]))

	// The old relative-next player takes the next turn.
	g.advanceTurn()
	assert.Equal(t, "p2", g.currentPlayer().ID)
}

func TestKillPlayer_AlreadyDead(t *testing.T) {
	g := startedGame(t, 4)
	require.NoError(t, g.killPlayer(g.Players[3]))

	err := g.killPlayer(g.Players[3])
	require.Error(t, err)
	assert.Equal(t, ErrInvalidPlayer, KindOf(err))
}

func TestSwapPositions_PointerFollowsEitherSide(t *testing.T) {
	g := startedGame(t, 4)
	p0, p2 := g.Players[0], g.Players[2]

	// Pointer on the actor follows the actor.
	g.swapPositions(p0, p2)
	assert.Equal(t, 2, p0.Position)
	assert.Equal(t, 0, p2.Position)
	assert.Equal(t, "p0", g.currentPlayer().ID)

	// Pointer on the target follows the target.
	g.advanceTurn() // pointer now on position 3: p3
	g.swapPositions(g.Players[3], g.Players[1])
	assert.Equal(t, "p3", g.currentPlayer().ID)
}

func TestAdvanceTurn_ResetsPerTurnState(t *testing.T) {
	g := startedGame(t, 4)
	g.drewThisTurn = true
	g.Players[0].Reveals = append(g.Players[0].Reveals, Reveal{OwnerID: "p1"})

	g.advanceTurn()

	assert.False(t, g.drewThisTurn)
	assert.Empty(t, g.Players[0].Reveals)
	assert.Equal(t, 1, g.turnsTaken)
	assert.Equal(t, 1, g.CurrentTurn())
}
