package cards

import "fmt"

// Kind classifies a card by how it is played.
type Kind int

const (
	KindAction Kind = iota
	KindDefense
	KindObstacle
	KindPanic
	KindTheThing
	KindInfection
)

var kindNames = map[Kind]string{
	KindAction:    "ACTION",
	KindDefense:   "DEFENSE",
	KindObstacle:  "OBSTACLE",
	KindPanic:     "PANIC",
	KindTheThing:  "THE_THING",
	KindInfection: "INFECTION",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Name identifies a card by its printed title.
type Name string

const (
	TheThing        Name = "The Thing"
	Infection       Name = "Infection!"
	Flamethrower    Name = "Flamethrower"
	Analysis        Name = "Analysis"
	Axe             Name = "Axe"
	Suspicion       Name = "Suspicion"
	Determination   Name = "Determination"
	Whisky          Name = "Whisky"
	SwapPlaces      Name = "Swap Places!"
	WatchYourBack   Name = "Watch Your Back"
	Seduction       Name = "Seduction"
	BarredDoor      Name = "Barred Door"
	YouBetterRun    Name = "You Better Run!"
	ImFineHere      Name = "I'm Fine Here"
	Terrifying      Name = "Terrifying"
	NoThanks        Name = "No, Thanks..."
	YouMissed       Name = "You Missed!"
	NoBarbecues     Name = "No Barbecues!"
	Quarantine      Name = "Quarantine"
	Revelations     Name = "Revelations"
	RottenRopes     Name = "Rotten Ropes"
	GetOut          Name = "Get Out of Here!"
	Forgetful       Name = "Forgetful"
	OneTwo          Name = "One, Two..."
	ThreeFour       Name = "Three, Four..."
	IsThePartyHere  Name = "Is the Party Here?"
	JustBetweenUs   Name = "Just Between Us..."
	RoundAndRound   Name = "Round and Round"
	CantWeBeFriends Name = "Can't We Be Friends?"
	BlindDate       Name = "Blind Date"
	Oops            Name = "Oops!"
)

var descriptions = map[Name]string{
	TheThing:        "You are The Thing. Infect the humans before they burn you.",
	Infection:       "You have been infected. This card can never leave your hand voluntarily.",
	Flamethrower:    "Eliminate an adjacent player.",
	Analysis:        "Look at an adjacent player's entire hand.",
	Axe:             "Tear down a Barred Door or Quarantine on yourself or an adjacent player.",
	Suspicion:       "Look at one random card from any player's hand.",
	Determination:   "Draw the top card of the deck and keep it no matter what it is.",
	Whisky:          "Show your whole hand to everyone. Liquid courage.",
	SwapPlaces:      "Swap seats with an adjacent player who is not quarantined.",
	WatchYourBack:   "Reverse the direction of play.",
	Seduction:       "Exchange a card with any player who is not quarantined.",
	BarredDoor:      "Place a barrier between yourself and an adjacent player.",
	YouBetterRun:    "Swap seats with an adjacent player who is not quarantined.",
	ImFineHere:      "Cancel a card that would force you to change seats.",
	Terrifying:      "Look at the card another player just offered you in an exchange.",
	NoThanks:        "Refuse a card exchange.",
	YouMissed:       "The Flamethrower aimed at you misses.",
	NoBarbecues:     "Cancel a Flamethrower aimed at you.",
	Quarantine:      "Lock a player down. They draw, discard and exchange face up.",
	Revelations:     "Each player may reveal their hand, starting with you.",
	RottenRopes:     "All Quarantine cards in play are discarded.",
	GetOut:          "Swap seats with any player who is not quarantined.",
	Forgetful:       "Discard three cards and draw three new ones.",
	OneTwo:          "Swap seats with the third player to your left or right.",
	ThreeFour:       "All Barred Doors in play are discarded.",
	IsThePartyHere:  "All players shift seats in the direction of play.",
	JustBetweenUs:   "Show your whole hand to one adjacent player.",
	RoundAndRound:   "Every player passes one card to the next player in turn order.",
	CantWeBeFriends: "Exchange a card with any player who is not quarantined.",
	BlindDate:       "Swap one card from your hand with the top card of the deck.",
	Oops:            "Show your whole hand to everyone.",
}

// Description returns the printed flavor/rules text for a card name.
func Description(name Name) string {
	return descriptions[name]
}
