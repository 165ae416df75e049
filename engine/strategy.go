package engine

import (
	"fmt"
	"math/rand/v2"
)

// OffenseDeckStrategy selects which of the player's own undisclosed decks to
// commit when attacking.
type OffenseDeckStrategy uint8

const (
	OffenseAny     OffenseDeckStrategy = iota // uniform pick
	OffenseBiggest                            // highest index, i.e. highest delegate
)

func (s OffenseDeckStrategy) String() string {
	switch s {
	case OffenseBiggest:
		return "Biggest"
	default:
		return "Any"
	}
}

// DefenseDeckStrategy selects which of the opponent's undisclosed decks the
// attacker summons to defend.
type DefenseDeckStrategy uint8

const (
	DefenseAny          DefenseDeckStrategy = iota // uniform pick
	DefenseSmallest                                // lowest index, i.e. lowest delegate
	DefenseStatsMatched                            // sized to the defender's remaining die shouts and our remaining points
)

func (s DefenseDeckStrategy) String() string {
	switch s {
	case DefenseSmallest:
		return "Smallest"
	case DefenseStatsMatched:
		return "StatsMatched"
	default:
		return "Any"
	}
}

// ActionChoiceStrategy decides a computer player's shout each round.
type ActionChoiceStrategy uint8

const (
	ActionSimple ActionChoiceStrategy = iota
)

func (s ActionChoiceStrategy) String() string { return "Simple" }

// chooseOffenseDeck returns the deck index the strategy commits for me.
// Decks are sorted by delegate value at build time, so index order doubles
// as delegate order.
func chooseOffenseDeck(s OffenseDeckStrategy, me *PlayerState, rng *rand.Rand) int8 {
	undisclosed := me.UndisclosedDecks()
	switch s {
	case OffenseBiggest:
		return undisclosed[len(undisclosed)-1]
	default:
		return undisclosed[rng.IntN(len(undisclosed))]
	}
}

// chooseDefenseDeck returns the opponent deck index the attacker summons.
func chooseDefenseDeck(s DefenseDeckStrategy, opponent, me *PlayerState, r Rules, rng *rand.Rand) int8 {
	undisclosed := opponent.UndisclosedDecks()
	switch s {
	case DefenseSmallest:
		return undisclosed[0]
	case DefenseStatsMatched:
		remainingDie := int(r.MaxDie) - int(opponent.DieShouts)
		remainingPoints := int(r.RequiredPoints) - int(me.Points)
		idx := remainingDie + remainingPoints - 1
		if idx >= len(undisclosed) {
			idx = len(undisclosed) - 1
		}
		if idx < 0 {
			idx = 0
		}
		return undisclosed[idx]
	default:
		return undisclosed[rng.IntN(len(undisclosed))]
	}
}

// chooseAction returns the computer shout for the round, or ActionNone to
// stay silent. me and opponent must both have a committed deck when round
// is 3.
func chooseAction(s ActionChoiceStrategy, round uint8, inTurn bool, me, opponent *PlayerState, r Rules, rng *rand.Rand) (Action, error) {
	_ = s // only the simple strategy exists today
	if me.IsDone() {
		return ActionDone, nil
	}
	switch round {
	case 1, 2:
		odds, err := Chances(me, opponent, JokerSameAsMax, rng)
		if err != nil {
			return ActionDare, nil
		}
		win, lose := odds.Win, odds.Lose
		if inTurn {
			lose += odds.Draw
		} else {
			win += odds.Draw
		}
		if me.DieShouts < r.MaxDie && lose > win+0.1 && rng.Float64() < 0.7 {
			return ActionDie, nil
		}
		return ActionDare, nil
	case 3:
		if me.InDuel < 0 || opponent.InDuel < 0 {
			return ActionNone, fmt.Errorf("no shout decision for round %d", round)
		}
		if me.Decks[me.InDuel].Sum() == opponent.Decks[opponent.InDuel].Sum() {
			return ActionDraw, nil
		}
		return ActionNone, nil
	default:
		return ActionNone, fmt.Errorf("no shout decision for round %d", round)
	}
}

// StrategyPreset bundles a full computer configuration under a display name.
type StrategyPreset struct {
	Name     string
	Strategy StrategySet
}

// Presets returns the built-in computer opponents, weakest first.
func Presets() []StrategyPreset {
	return []StrategyPreset{
		{
			Name: "DefaultComputer",
			Strategy: StrategySet{
				JokerValue:    JokerRandomValue,
				JokerPosition: JokerAnywhere,
				OffenseDeck:   OffenseAny,
				DefenseDeck:   DefenseAny,
				Action:        ActionSimple,
			},
		},
		{
			Name: "DieBlindButSmart",
			Strategy: StrategySet{
				JokerValue:    JokerThirteen,
				JokerPosition: JokerAnywhere,
				OffenseDeck:   OffenseBiggest,
				DefenseDeck:   DefenseSmallest,
				Action:        ActionSimple,
			},
		},
		{
			Name: "AntiDie",
			Strategy: StrategySet{
				JokerValue:    JokerThirteen,
				JokerPosition: JokerAnywhere,
				OffenseDeck:   OffenseBiggest,
				DefenseDeck:   DefenseStatsMatched,
				Action:        ActionSimple,
			},
		},
	}
}
