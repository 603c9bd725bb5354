package game

// Snapshot is the serializable view of a game handed to the transport
// layer for broadcast. Each snapshot is redacted for one viewer: hands
// and roles of other players are hidden unless an effect revealed them
// or the game is over.
type Snapshot struct {
	GameID         string       `json:"game_id"`
	Name           string       `json:"name"`
	HostID         string       `json:"host_id"`
	MinPlayers     int          `json:"min_players"`
	MaxPlayers     int          `json:"max_players"`
	InGame         bool         `json:"in_game"`
	IsDone         bool         `json:"is_done"`
	GameOverStatus WinningSide  `json:"game_over_status,omitempty"`
	WinnerIDs      []string     `json:"winner_ids,omitempty"`
	CurrentTurn    int          `json:"current_turn"`
	TurnPhase      string       `json:"turn_phase"`
	GoingClockwise bool         `json:"going_clockwise"`
	CurrentTarget  string       `json:"current_target,omitempty"`
	DeckCount      int          `json:"deck_count"`
	DiscardCount   int          `json:"discard_count"`
	LastEvent      string       `json:"last_event,omitempty"`
	Players        []PlayerView `json:"players"`
}

// PlayerView is one seat as seen by the snapshot's viewer.
type PlayerView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Position     int          `json:"position"`
	IsDead       bool         `json:"is_dead"`
	InLockdown   bool         `json:"in_lockdown"`
	LeftBarrier  bool         `json:"left_barrier"`
	RightBarrier bool         `json:"right_barrier"`
	HandCount    int          `json:"hand_count"`
	Role         string       `json:"role,omitempty"`
	Hand         []CardView   `json:"hand,omitempty"`
	Reveals      []RevealView `json:"reveals,omitempty"`
}

// CardView is the wire shape of a single card.
type CardView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Description     string `json:"description,omitempty"`
	ActiveInfection bool   `json:"active_infection,omitempty"`
}

// RevealView is a set of cards another player's effect made visible to
// the viewer.
type RevealView struct {
	OwnerID   string     `json:"owner_id"`
	OwnerName string     `json:"owner_name"`
	Cards     []CardView `json:"cards"`
}

func cardView(c *Card) CardView {
	return CardView{
		ID:              c.ID,
		Name:            string(c.Name),
		Kind:            c.Kind.String(),
		Description:     c.Description,
		ActiveInfection: c.ActiveInfection,
	}
}

// snapshotFor builds the snapshot redacted for viewerID. An empty
// viewer id yields the fully redacted spectator view.
func (g *Game) snapshotFor(viewerID, lastEvent string) *Snapshot {
	snap := &Snapshot{
		GameID:         g.ID,
		Name:           g.Name,
		HostID:         g.HostID,
		MinPlayers:     g.MinPlayers,
		MaxPlayers:     g.MaxPlayers,
		InGame:         g.InGame,
		IsDone:         g.IsDone,
		GameOverStatus: g.GameOverStatus,
		WinnerIDs:      append([]string(nil), g.WinnerIDs...),
		CurrentTurn:    g.CurrentTurn(),
		TurnPhase:      g.TurnPhase.String(),
		GoingClockwise: g.GoingClockwise(),
		CurrentTarget:  g.CurrentTarget,
		DeckCount:      len(g.Deck),
		DiscardCount:   len(g.Discarded),
		LastEvent:      lastEvent,
		Players:        make([]PlayerView, 0, len(g.Players)),
	}

	for _, p := range g.Players {
		view := PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Position:     p.Position,
			IsDead:       p.IsDead,
			InLockdown:   p.InLockdown,
			LeftBarrier:  p.LeftBarrier,
			RightBarrier: p.RightBarrier,
			HandCount:    len(p.Hand),
		}

		if p.ID == viewerID || g.IsDone {
			view.Role = p.Role.String()
		}

		if p.ID == viewerID {
			view.Hand = make([]CardView, 0, len(p.Hand))
			for _, c := range p.Hand {
				view.Hand = append(view.Hand, cardView(c))
			}
			for _, r := range p.Reveals {
				rv := RevealView{OwnerID: r.OwnerID, OwnerName: r.OwnerName}
				for _, c := range r.Cards {
					rv.Cards = append(rv.Cards, cardView(c))
				}
				view.Reveals = append(view.Reveals, rv)
			}
		}

		snap.Players = append(snap.Players, view)
	}

	return snap
}

// snapshotViews builds one redacted snapshot per player plus the
// spectator view under the empty key.
func (g *Game) snapshotViews(lastEvent string) map[string]*Snapshot {
	views := make(map[string]*Snapshot, len(g.Players)+1)
	for _, p := range g.Players {
		views[p.ID] = g.snapshotFor(p.ID, lastEvent)
	}
	views[""] = g.snapshotFor("", lastEvent)
	return views
}
