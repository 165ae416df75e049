package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Odds holds the outcome probabilities of the ongoing duel as seen from one
// player, each rounded to three decimals.
type Odds struct {
	Win  float64
	Draw float64
	Lose float64
}

// oddsCandidate is one hidden card that could still be opened in the duel.
// Jokers carry no fixed value; their contribution is guessed per scenario.
type oddsCandidate struct {
	value int
	joker bool
}

// guessJokerValue estimates what a joker will score under the assumed value
// strategy. There is no guarantee the guess is correct.
func guessJokerValue(delegate int, assumed JokerValueStrategy, rng *rand.Rand) int {
	switch assumed {
	case JokerThirteen:
		return int(MaxRankValue)
	case JokerSameAsMax:
		return delegate
	case JokerNextBiggest:
		return delegate - 1
	default:
		return 1 + rng.IntN(delegate)
	}
}

// Chances computes win/draw/lose odds for me in the ongoing duel by
// enumerating every combination of cards that could fill the remaining
// unopened slots on both sides.
//
// My candidates are my own unopened cards across all decks whose value does
// not exceed my committed delegate (jokers always qualify, and my own joker
// is guessed with assumedOwn rather than read). The opponent's candidates
// come from their whole pile minus every card I have seen opened, filtered
// the same way against their delegate; their joker is assumed to follow the
// same-as-max strategy. Both sides draw as many cards as my own committed
// deck still has face down.
func Chances(me, opponent *PlayerState, assumedOwn JokerValueStrategy, rng *rand.Rand) (Odds, error) {
	if me.InDuel < 0 || opponent.InDuel < 0 {
		return Odds{}, fmt.Errorf("chances require both committed decks")
	}
	myDeck := &me.Decks[me.InDuel]
	oppDeck := &opponent.Decks[opponent.InDuel]
	myDelegate := int(myDeck.DelegateValue())
	oppDelegate := int(oppDeck.DelegateValue())

	var mine []oddsCandidate
	for d := range me.Decks {
		deck := &me.Decks[d]
		for c := range deck.Cards {
			if deck.Open[c] {
				continue
			}
			card := deck.Cards[c]
			if card.IsJoker() {
				mine = append(mine, oddsCandidate{joker: true})
			} else if int(deck.Values[c]) <= myDelegate {
				mine = append(mine, oddsCandidate{value: int(deck.Values[c])})
			}
		}
	}

	seen := make(map[Card]bool)
	for d := range opponent.Decks {
		deck := &opponent.Decks[d]
		for c := range deck.Cards {
			if deck.Open[c] {
				seen[deck.Cards[c]] = true
			}
		}
	}
	var pile [PileSize]Card
	if opponent.Decks[0].Cards[0].IsRed() {
		pile = RedPile()
	} else {
		pile = BlackPile()
	}
	var theirs []oddsCandidate
	for _, card := range pile {
		if seen[card] {
			continue
		}
		if card.IsJoker() {
			theirs = append(theirs, oddsCandidate{joker: true})
		} else if int(card.BaseValue()) <= oppDelegate {
			theirs = append(theirs, oddsCandidate{value: int(card.BaseValue())})
		}
	}

	toOpen := CardsPerDeck - myDeck.OpenCount()
	myCombos := combinations(mine, toOpen)
	oppCombos := combinations(theirs, toOpen)

	wins, draws, losses := 0, 0, 0
	for _, cm := range myCombos {
		for _, co := range oppCombos {
			sumMe := int(myDeck.OpenSum())
			for _, c := range cm {
				if c.joker {
					sumMe += guessJokerValue(myDelegate, assumedOwn, rng)
				} else {
					sumMe += c.value
				}
			}
			sumOpp := int(oppDeck.OpenSum())
			for _, c := range co {
				if c.joker {
					sumOpp += guessJokerValue(oppDelegate, JokerSameAsMax, rng)
				} else {
					sumOpp += c.value
				}
			}
			switch {
			case sumMe > sumOpp:
				wins++
			case sumMe == sumOpp:
				draws++
			default:
				losses++
			}
		}
	}
	total := wins + draws + losses
	if total == 0 {
		return Odds{}, fmt.Errorf("no open combinations to evaluate")
	}
	return Odds{
		Win:  round3(float64(wins) / float64(total)),
		Draw: round3(float64(draws) / float64(total)),
		Lose: round3(float64(losses) / float64(total)),
	}, nil
}

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }

// combinations enumerates every k-subset of cards in lexicographic index
// order. k == 0 yields the single empty combination.
func combinations(cards []oddsCandidate, k int) [][]oddsCandidate {
	if k < 0 || k > len(cards) {
		return nil
	}
	if k == 0 {
		return [][]oddsCandidate{nil}
	}
	var out [][]oddsCandidate
	combo := make([]oddsCandidate, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(combo) == k {
			out = append(out, append([]oddsCandidate(nil), combo...))
			return
		}
		for i := start; i <= len(cards)-(k-len(combo)); i++ {
			combo = append(combo, cards[i])
			walk(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	walk(0)
	return out
}
