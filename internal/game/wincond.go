package game

// WinResult is the structured outcome of a finished game.
type WinResult struct {
	Side    WinningSide
	Winners []string
}

// EvaluateWinner inspects the current state and reports whether an end
// state has been reached. It is a pure read: callers may run it
// speculatively or repeatedly without side effects.
//
// Checks, in order: The Thing eliminated (humans win); no live human
// remains (The Thing and the infected win); and the preserved branch
// for a game ended by other means while still fully populated, which
// counts as a win for The Thing alone.
func EvaluateWinner(g *Game) (WinResult, bool) {
	thing := g.thingPlayer()

	if thing != nil && thing.IsDead {
		return WinResult{Side: WinHumans, Winners: livePlayerIDsWithRole(g, RoleHuman)}, true
	}

	liveHumans := 0
	for _, p := range g.Players {
		if !p.IsDead && p.Role == RoleHuman {
			liveHumans++
		}
	}
	if liveHumans == 0 {
		winners := livePlayerIDsWithRole(g, RoleTheThing)
		winners = append(winners, livePlayerIDsWithRole(g, RoleInfected)...)
		return WinResult{Side: WinThingAndInfected, Winners: winners}, true
	}

	// A game flagged done while everyone is still alive and nobody has
	// been converted counts for The Thing alone. Kept from the original
	// rule set; no in-engine transition currently triggers it.
	if g.IsDone && thing != nil && g.LiveCount() == g.startingPlayers && noInfections(g) {
		return WinResult{Side: WinTheThing, Winners: []string{thing.ID}}, true
	}

	return WinResult{}, false
}

func noInfections(g *Game) bool {
	for _, p := range g.Players {
		if p.Role == RoleInfected {
			return false
		}
	}
	return true
}

func livePlayerIDsWithRole(g *Game, role Role) []string {
	ids := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.IsDead && p.Role == role {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
