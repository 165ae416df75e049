package agent

import (
	"fmt"

	engine "github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

// decodeCard reconstructs one card from in[0:5]. Masked cards come back as
// EmptyCard with their value lost; jokers rebuild their suit from the color
// bit since the encoding drops it.
func decodeCard(in []int16) (card engine.Card, value int8, open bool) {
	suit, colored, rank := in[0], in[1], in[2]
	switch {
	case suit == -1 && rank == -1:
		return engine.EmptyCard, -1, in[4] != 0
	case rank == int16(engine.RankJoker):
		jokerSuit := engine.SuitBlackJoker
		if colored == 1 {
			jokerSuit = engine.SuitRedJoker
		}
		return engine.NewCard(jokerSuit, engine.RankJoker), int8(in[3]), in[4] != 0
	default:
		return engine.NewCard(uint8(suit), uint8(rank)), int8(in[3]), in[4] != 0
	}
}

func decodeDeck(in []int16) engine.Deck {
	var d engine.Deck
	for c := 0; c < engine.CardsPerDeck; c++ {
		d.Cards[c], d.Values[c], d.Open[c] = decodeCard(in[c*CardDim:])
	}
	base := engine.CardsPerDeck * CardDim
	d.State = engine.DeckState(in[base])
	d.Index = int8(in[base+1])
	d.OppIndex = int8(in[base+2])
	d.NextOpen = int8(in[base+3])
	return d
}

func decodePlayer(in []int16) engine.PlayerState {
	var p engine.PlayerState
	for i := 0; i < engine.DecksPerPile; i++ {
		p.Decks[i] = decodeDeck(in[i*DeckDim:])
	}
	base := engine.DecksPerPile * DeckDim
	p.Points = uint8(in[base])
	p.DieShouts = uint8(in[base+1])
	p.InDuel = int8(in[base+2])
	return p
}

// Decode rebuilds the observable part of a game from an encoded vector.
// Counters that the encoding omits (done and draw shouts, strategies, names)
// stay at their zero values.
func Decode(in []int16) (*engine.Game, error) {
	if len(in) != ObservationDim {
		return nil, fmt.Errorf("observation has %d elements, want %d", len(in), ObservationDim)
	}
	g := &engine.Game{Winner: -1, Loser: -1}
	g.Players[engine.PlayerRed] = decodePlayer(in[0:])
	g.Players[engine.PlayerBlack] = decodePlayer(in[PlayerDim:])

	base := 2 * PlayerDim
	if w := in[base+1]; w != -1 {
		if w == 1 {
			g.Winner, g.Loser = engine.PlayerRed, engine.PlayerBlack
		} else {
			g.Winner, g.Loser = engine.PlayerBlack, engine.PlayerRed
		}
	}
	if r := in[base+2]; r != -1 {
		g.Over = true
		g.Result = engine.GameResult(r)
	}
	g.DuelIdx = int8(in[base+3])
	return g, nil
}
