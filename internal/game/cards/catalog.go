package cards

import (
	"errors"
	"fmt"
)

// MinPlayers and MaxPlayers bound the supported table sizes.
const (
	MinPlayers = 4
	MaxPlayers = 12
)

// ErrInvalidPlayerCount is returned by Composition for table sizes
// outside [MinPlayers, MaxPlayers].
var ErrInvalidPlayerCount = errors.New("player count outside supported range")

// Entry describes how many copies of a card go into the deck for a
// given table size.
type Entry struct {
	Name     Name
	Kind     Kind
	Quantity int
}

// copySpec is a single physical copy of a card together with the
// minimum table size at which it enters the deck.
type copySpec struct {
	name       Name
	kind       Kind
	minPlayers int
}

// deckSpec lists every copy in the full deck. The quantity of a card at
// a given table size is the number of its copies whose threshold is met.
// Exactly one The Thing copy exists; the infection copies scale from 8
// at a four-player table up to 20 at a full table.
var deckSpec = buildDeckSpec()

func buildDeckSpec() []copySpec {
	var spec []copySpec

	add := func(name Name, kind Kind, thresholds ...int) {
		for _, t := range thresholds {
			spec = append(spec, copySpec{name: name, kind: kind, minPlayers: t})
		}
	}

	add(TheThing, KindTheThing, 4)
	add(Infection, KindInfection, 4, 4, 4, 4, 4, 4, 4, 4, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 12)

	add(Flamethrower, KindAction, 4, 4, 6, 8, 10)
	add(Analysis, KindAction, 4, 6, 9)
	add(Axe, KindAction, 4, 9)
	add(Suspicion, KindAction, 4, 4, 4, 4, 6, 7, 8, 9)
	add(Determination, KindAction, 4, 4, 6, 9, 10)
	add(Whisky, KindAction, 4, 6, 10)
	add(SwapPlaces, KindAction, 4, 4, 7, 9, 11)
	add(WatchYourBack, KindAction, 4, 9)
	add(Seduction, KindAction, 4, 4, 6, 7, 8, 10, 11)
	add(YouBetterRun, KindAction, 4, 4, 7, 9, 11)

	add(ImFineHere, KindDefense, 4, 6, 11)
	add(Terrifying, KindDefense, 4, 6, 11)
	add(NoThanks, KindDefense, 4, 6, 11)
	add(YouMissed, KindDefense, 4, 6, 11)
	add(NoBarbecues, KindDefense, 4, 6, 11)

	add(BarredDoor, KindObstacle, 4, 6, 11)
	add(Quarantine, KindObstacle, 5, 10)

	add(Revelations, KindPanic, 7)
	add(RottenRopes, KindPanic, 6, 9)
	add(GetOut, KindPanic, 5)
	add(Forgetful, KindPanic, 4)
	add(OneTwo, KindPanic, 5, 10)
	add(ThreeFour, KindPanic, 4, 9)
	add(IsThePartyHere, KindPanic, 5, 9)
	add(JustBetweenUs, KindPanic, 7)
	add(RoundAndRound, KindPanic, 5, 8)
	add(CantWeBeFriends, KindPanic, 7, 11)
	add(BlindDate, KindPanic, 4, 9)
	add(Oops, KindPanic, 10)

	return spec
}

// compositionOrder fixes the order entries are reported in, so deck
// construction is stable regardless of map iteration.
var compositionOrder = []Name{
	TheThing, Infection,
	Flamethrower, Analysis, Axe, Suspicion, Determination, Whisky,
	SwapPlaces, WatchYourBack, Seduction, YouBetterRun,
	ImFineHere, Terrifying, NoThanks, YouMissed, NoBarbecues,
	BarredDoor, Quarantine,
	Revelations, RottenRopes, GetOut, Forgetful, OneTwo, ThreeFour,
	IsThePartyHere, JustBetweenUs, RoundAndRound, CantWeBeFriends,
	BlindDate, Oops,
}

// Composition returns the deck composition for the given table size as
// an ordered list of (name, kind, quantity) entries. The catalog is
// immutable and safe for unsynchronized concurrent reads.
func Composition(players int) ([]Entry, error) {
	if players < MinPlayers || players > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayerCount, players)
	}

	quantities := make(map[Name]int, len(compositionOrder))
	kinds := make(map[Name]Kind, len(compositionOrder))
	for _, c := range deckSpec {
		if c.minPlayers <= players {
			quantities[c.name]++
			kinds[c.name] = c.kind
		}
	}

	entries := make([]Entry, 0, len(compositionOrder))
	for _, name := range compositionOrder {
		if q := quantities[name]; q > 0 {
			entries = append(entries, Entry{Name: name, Kind: kinds[name], Quantity: q})
		}
	}
	return entries, nil
}

// TotalCards returns the full deck size for the given table size.
func TotalCards(players int) (int, error) {
	entries, err := Composition(players)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total, nil
}
