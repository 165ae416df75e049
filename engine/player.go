package engine

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Player ids. Red always takes the red pile and the offense role in
// even-index duels.
const (
	PlayerRed   = 0
	PlayerBlack = 1
)

// PlayerKind distinguishes externally-driven players from automated ones.
type PlayerKind uint8

const (
	KindHuman PlayerKind = iota
	KindComputer
)

func (k PlayerKind) String() string {
	if k == KindComputer {
		return "ComputerPlayer"
	}
	return "HumanPlayer"
}

// StrategySet binds one player's decision policies for the whole game.
type StrategySet struct {
	JokerValue    JokerValueStrategy
	JokerPosition JokerPositionStrategy
	OffenseDeck   OffenseDeckStrategy
	DefenseDeck   DefenseDeckStrategy
	Action        ActionChoiceStrategy
}

// PlayerState holds one player's decks, counters, and bound strategies.
type PlayerState struct {
	Name string
	Kind PlayerKind

	Points     uint8
	DieShouts  uint8
	DoneShouts uint8
	DrawShouts uint8

	Decks  [DecksPerPile]Deck
	InDuel int8   // index of the committed deck, -1 outside a duel
	Recent Action // most recently recognized declaration

	Strategy StrategySet
}

// BuildDecks shuffles the given pile and partitions it into nine 3-card
// decks: the bound joker strategies run on each group, then decks are sorted
// ascending by delegate value and indexed 0–8 with delegates face-up.
func (p *PlayerState) BuildDecks(pile [PileSize]Card, rng *rand.Rand) {
	// Fisher-Yates shuffle.
	for i := PileSize - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pile[i], pile[j] = pile[j], pile[i]
	}

	type group struct {
		cards  [CardsPerDeck]Card
		values [CardsPerDeck]int8
	}
	var groups [DecksPerPile]group
	for d := 0; d < DecksPerPile; d++ {
		for c := 0; c < CardsPerDeck; c++ {
			card := pile[d*CardsPerDeck+c]
			groups[d].cards[c] = card
			groups[d].values[c] = card.BaseValue()
		}
		p.Strategy.JokerValue.apply(&groups[d].cards, &groups[d].values, rng)
		p.Strategy.JokerPosition.apply(&groups[d].cards, &groups[d].values)
	}

	sort.SliceStable(groups[:], func(i, j int) bool {
		return groups[i].values[0] < groups[j].values[0]
	})

	for i := range groups {
		deck := Deck{
			Cards:    groups[i].cards,
			Values:   groups[i].values,
			State:    DeckUndisclosed,
			Index:    int8(i),
			OppIndex: -1,
			NextOpen: -1,
		}
		deck.Open[0] = true // delegate is public from deal time
		p.Decks[i] = deck
	}
	p.InDuel = -1
}

// UndisclosedDecks returns the indices of decks not yet committed to a duel,
// in ascending index order.
func (p *PlayerState) UndisclosedDecks() []int8 {
	var out []int8
	for i := range p.Decks {
		if p.Decks[i].IsUndisclosed() {
			out = append(out, int8(i))
		}
	}
	return out
}

// sendToDuel commits the deck at idx to the ongoing duel.
func (p *PlayerState) sendToDuel(idx int8) {
	p.Decks[idx].State = DeckInDuel
	p.InDuel = idx
}

// RevealNextCard opens the next card of the committed deck.
func (p *PlayerState) RevealNextCard() error {
	if p.InDuel < 0 {
		return fmt.Errorf("player %s has no deck in a duel", p.Name)
	}
	p.Decks[p.InDuel].RevealNext()
	return nil
}

// DisclosedValues returns the set of card values this player has revealed
// across committed and finished decks, as a bitmask with bit v set for
// value v (1–13).
func (p *PlayerState) DisclosedValues() uint16 {
	var mask uint16
	for i := range p.Decks {
		deck := &p.Decks[i]
		if deck.IsUndisclosed() {
			continue
		}
		for c := 0; c < CardsPerDeck; c++ {
			if deck.Open[c] {
				mask |= 1 << uint16(deck.Values[c])
			}
		}
	}
	return mask
}

const allValuesMask uint16 = (1<<14 - 1) &^ 1 // bits 1..13

// IsDone reports whether every possible rank value has been disclosed among
// this player's decks, the condition a correct "done" shout asserts.
func (p *PlayerState) IsDone() bool {
	return p.DisclosedValues() == allValuesMask
}

// RevealedJoker reports whether this player's joker is already face-up.
func (p *PlayerState) RevealedJoker() bool {
	for i := range p.Decks {
		deck := &p.Decks[i]
		for c := 0; c < CardsPerDeck; c++ {
			if deck.Open[c] && deck.Cards[c].IsJoker() {
				return true
			}
		}
	}
	return false
}
