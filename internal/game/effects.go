package game

import (
	"fmt"

	"github.com/lacosa-game/lacosa-server-go/internal/game/cards"
)

// cardEffect binds an action card to its targeting rule and its state
// mutation. The table is closed: card names without an entry are
// explicitly rejected rather than silently resolved.
type cardEffect struct {
	needsTarget bool

	// eligible is a pure query over the game's players; it never
	// mutates state and is exposed so clients can pre-filter targets.
	eligible func(g *Game, actor *Player) []*Player

	// apply mutates state and returns a human-readable summary for
	// the broadcast log. It runs only after the target passed the
	// eligible predicate, so it cannot fail halfway.
	apply func(g *Game, actor, target *Player) (string, error)
}

func noTargets(*Game, *Player) []*Player { return nil }

var effectTable = map[cards.Name]cardEffect{
	cards.Flamethrower: {
		needsTarget: true,
		eligible:    eligibleAdjacentLive,
		apply: func(g *Game, actor, target *Player) (string, error) {
			if err := g.killPlayer(target); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s torched %s", actor.Name, target.Name), nil
		},
	},
	cards.WatchYourBack: {
		eligible: noTargets,
		apply: func(g *Game, actor, _ *Player) (string, error) {
			g.order.Reverse()
			return fmt.Sprintf("%s reversed the direction of play", actor.Name), nil
		},
	},
	cards.SwapPlaces: {
		needsTarget: true,
		eligible:    eligibleSeatSwap,
		apply:       applySeatSwap,
	},
	cards.YouBetterRun: {
		// Identical swap, distinct card identity.
		needsTarget: true,
		eligible:    eligibleSeatSwap,
		apply:       applySeatSwap,
	},
	cards.Axe: {
		needsTarget: true,
		eligible: func(g *Game, actor *Player) []*Player {
			return filterPlayers(g, func(p *Player) bool {
				return !p.IsDead && p.obstructed() &&
					(p.Position == actor.Position || g.order.Adjacent(actor.Position, p.Position))
			})
		},
		apply: func(g *Game, actor, target *Player) (string, error) {
			target.InLockdown = false
			target.LeftBarrier = false
			target.RightBarrier = false
			return fmt.Sprintf("%s cleared the obstacles around %s", actor.Name, target.Name), nil
		},
	},
	cards.Seduction: {
		needsTarget: true,
		eligible: func(g *Game, actor *Player) []*Player {
			return filterPlayers(g, func(p *Player) bool {
				return p.ID != actor.ID && !p.IsDead && !p.InLockdown
			})
		},
		apply: func(g *Game, actor, target *Player) (string, error) {
			g.CurrentTarget = target.ID
			return fmt.Sprintf("%s seduced %s into an exchange", actor.Name, target.Name), nil
		},
	},
	cards.Analysis: {
		needsTarget: true,
		eligible:    eligibleAdjacentLive,
		apply: func(g *Game, actor, target *Player) (string, error) {
			actor.Reveals = append(actor.Reveals, Reveal{
				OwnerID:   target.ID,
				OwnerName: target.Name,
				Cards:     append([]*Card(nil), target.Hand...),
			})
			return fmt.Sprintf("%s analyzed %s's hand", actor.Name, target.Name), nil
		},
	},
	cards.Whisky: {
		eligible: noTargets,
		apply: func(g *Game, actor, _ *Player) (string, error) {
			actor.Reveals = append(actor.Reveals, Reveal{
				OwnerID:   actor.ID,
				OwnerName: actor.Name,
				Cards:     append([]*Card(nil), actor.Hand...),
			})
			return fmt.Sprintf("%s took a long look at their own hand", actor.Name), nil
		},
	},
	cards.Suspicion: {
		needsTarget: true,
		eligible: func(g *Game, actor *Player) []*Player {
			return filterPlayers(g, func(p *Player) bool {
				return p.ID != actor.ID && !p.IsDead && len(p.Hand) > 0
			})
		},
		apply: func(g *Game, actor, target *Player) (string, error) {
			c := target.Hand[g.rng.Intn(len(target.Hand))]
			actor.Reveals = append(actor.Reveals, Reveal{
				OwnerID:   target.ID,
				OwnerName: target.Name,
				Cards:     []*Card{c},
			})
			return fmt.Sprintf("%s eyed one of %s's cards", actor.Name, target.Name), nil
		},
	},
}

func eligibleAdjacentLive(g *Game, actor *Player) []*Player {
	return filterPlayers(g, func(p *Player) bool {
		return p.ID != actor.ID && !p.IsDead && g.order.Adjacent(actor.Position, p.Position)
	})
}

// eligibleSeatSwap admits adjacent live players who are not quarantined
// and whose barrier on the actor's side is down, as long as the actor
// is free to move at all.
func eligibleSeatSwap(g *Game, actor *Player) []*Player {
	if actor.InLockdown {
		return nil
	}
	n := g.order.Size()
	return filterPlayers(g, func(p *Player) bool {
		if p.ID == actor.ID || p.IsDead || p.InLockdown {
			return false
		}
		switch p.Position {
		case (actor.Position + 1) % n:
			return !p.LeftBarrier
		case ((actor.Position-1)%n + n) % n:
			return !p.RightBarrier
		}
		return false
	})
}

func applySeatSwap(g *Game, actor, target *Player) (string, error) {
	g.swapPositions(actor, target)
	return fmt.Sprintf("%s swapped seats with %s", actor.Name, target.Name), nil
}

func filterPlayers(g *Game, keep func(*Player) bool) []*Player {
	out := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// EligibleTargets returns the players the given hand card may legally
// target right now. Empty for self-effect cards and for card names whose
// effect is not implemented.
func (g *Game) EligibleTargets(actor *Player, c *Card) []*Player {
	effect, ok := effectTable[c.Name]
	if !ok || effect.eligible == nil {
		return nil
	}
	return effect.eligible(g, actor)
}

// resolveEffect validates targeting for the card and applies its effect
// all-or-nothing, returning a broadcast summary.
func (g *Game) resolveEffect(actor *Player, c *Card, target *Player) (string, error) {
	effect, ok := effectTable[c.Name]
	if !ok {
		return "", newError(ErrInvalidPlay, "card %q has no implemented effect", c.Name)
	}

	if !effect.needsTarget {
		if target != nil {
			return "", newError(ErrInvalidTarget, "card %q takes no target", c.Name)
		}
		return effect.apply(g, actor, nil)
	}

	if target == nil {
		return "", newError(ErrInvalidTarget, "card %q requires a target", c.Name)
	}
	for _, p := range effect.eligible(g, actor) {
		if p.ID == target.ID {
			return effect.apply(g, actor, target)
		}
	}
	return "", newError(ErrInvalidTarget, "player %s is not a legal target for %q", target.ID, c.Name)
}
