package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateWinner_OngoingGame(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[0].Role = RoleTheThing

	_, over := EvaluateWinner(g)
	assert.False(t, over)
}

func TestEvaluateWinner_ThingDeadHumansWin(t *testing.T) {
	g := startedGame(t, 5)
	g.Players[0].Role = RoleTheThing
	g.Players[0].IsDead = true
	g.Players[1].Role = RoleInfected

	win, over := EvaluateWinner(g)
	require.True(t, over)
	assert.Equal(t, WinHumans, win.Side)

	// Only live humans share the win; the infected are left out.
	assert.ElementsMatch(t, []string{"p2", "p3", "p4"}, win.Winners)
}

func TestEvaluateWinner_NoHumansLeft(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[0].Role = RoleTheThing
	g.Players[1].Role = RoleInfected
	g.Players[2].Role = RoleInfected
	g.Players[3].IsDead = true

	win, over := EvaluateWinner(g)
	require.True(t, over)
	assert.Equal(t, WinThingAndInfected, win.Side)
	assert.ElementsMatch(t, []string{"p0", "p1", "p2"}, win.Winners)
	assert.NotContains(t, win.Winners, "p3")
}

func TestEvaluateWinner_DeadHumansDoNotCount(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[0].Role = RoleTheThing
	g.Players[1].IsDead = true
	// p2 and p3 remain live humans: no winner yet.

	_, over := EvaluateWinner(g)
	assert.False(t, over)
}

func TestEvaluateWinner_FlaggedDoneFullyPopulated(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[2].Role = RoleTheThing
	g.IsDone = true

	win, over := EvaluateWinner(g)
	require.True(t, over)
	assert.Equal(t, WinTheThing, win.Side)
	assert.Equal(t, []string{"p2"}, win.Winners)
}

func TestEvaluateWinner_FlaggedDoneNeedsFullTable(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[2].Role = RoleTheThing
	g.IsDone = true
	g.startingPlayers = 5 // someone already died

	_, over := EvaluateWinner(g)
	assert.False(t, over)
}

func TestEvaluateWinner_FlaggedDoneNeedsNoInfections(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[2].Role = RoleTheThing
	g.Players[3].Role = RoleInfected
	g.IsDone = true

	_, over := EvaluateWinner(g)
	assert.False(t, over)
}

func TestEvaluateWinner_IsPure(t *testing.T) {
	g := startedGame(t, 4)
	g.Players[0].Role = RoleTheThing
	g.Players[0].IsDead = true

	first, over := EvaluateWinner(g)
	require.True(t, over)
	second, _ := EvaluateWinner(g)
	assert.Equal(t, first, second)
	assert.False(t, g.IsDone, "evaluation must not mutate the game")
}
