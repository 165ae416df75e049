// Package agent flattens game state into fixed-size integer vectors for
// machine consumers: reinforcement-learning observations, logging, and
// offline analysis. The layout is stable; consumers index into it by the
// offsets below.
package agent

import engine "github.com/Bartleby2718/DieOrDareOfflineCLI/engine"

const (
	// CardDim is [suit, colored, rank, value, open].
	CardDim = 5
	// DeckDim is three cards plus [state, index, oppIndex, nextOpen].
	DeckDim = engine.CardsPerDeck*CardDim + 4
	// PlayerDim is nine decks plus [points, dieShouts, inDuelIdx].
	PlayerDim = engine.DecksPerPile*DeckDim + 3
	// ObservationDim is both players plus [color, winner, result, duelIdx].
	ObservationDim = 2*PlayerDim + 4
)

// Perspective selects whose hidden cards the observation exposes.
type Perspective int8

const (
	// Omniscient exposes both players' face-down cards.
	Omniscient Perspective = iota
	// RedView exposes red's cards and masks black's face-down ones.
	RedView
	// BlackView exposes black's cards and masks red's face-down ones.
	BlackView
)

// encodeCard writes one card into out[0:5]. A masked face-down card keeps
// only its color; every other field is the -1 sentinel.
func encodeCard(card engine.Card, value int8, open, mask bool, out []int16) {
	colored := int16(0)
	if card.IsRed() {
		colored = 1
	}
	if mask && !open {
		out[0], out[1], out[2], out[3], out[4] = -1, colored, -1, -1, 0
		return
	}
	suit := int16(-1) // jokers carry no suit
	if !card.IsJoker() {
		suit = int16(card.Suit())
	}
	openBit := int16(0)
	if open {
		openBit = 1
	}
	out[0] = suit
	out[1] = colored
	out[2] = int16(card.Rank())
	out[3] = int16(value)
	out[4] = openBit
}

// encodeDeck writes one deck into out[0:DeckDim].
func encodeDeck(d *engine.Deck, mask bool, out []int16) {
	for c := 0; c < engine.CardsPerDeck; c++ {
		encodeCard(d.Cards[c], d.Values[c], d.Open[c], mask, out[c*CardDim:])
	}
	base := engine.CardsPerDeck * CardDim
	out[base] = int16(d.State)
	out[base+1] = int16(d.Index)
	out[base+2] = int16(d.OppIndex)
	out[base+3] = int16(d.NextOpen)
}

// encodePlayer writes one player into out[0:PlayerDim].
func encodePlayer(p *engine.PlayerState, mask bool, out []int16) {
	for i := 0; i < engine.DecksPerPile; i++ {
		encodeDeck(&p.Decks[i], mask, out[i*DeckDim:])
	}
	base := engine.DecksPerPile * DeckDim
	out[base] = int16(p.Points)
	out[base+1] = int16(p.DieShouts)
	out[base+2] = int16(p.InDuel)
}

// Encode writes the full observation into out. The trailing common block is
// [color, winner, result, duelIdx], each -1 when not applicable: color is 0
// for red's view, 1 for black's, -1 when omniscient; winner is 1 when red
// won, 0 when black won.
func Encode(g *engine.Game, view Perspective, out *[ObservationDim]int16) {
	*out = [ObservationDim]int16{}

	encodePlayer(&g.Players[engine.PlayerRed], view == BlackView, out[0:])
	encodePlayer(&g.Players[engine.PlayerBlack], view == RedView, out[PlayerDim:])

	base := 2 * PlayerDim
	switch view {
	case RedView:
		out[base] = 0
	case BlackView:
		out[base] = 1
	default:
		out[base] = -1
	}
	winner := int16(-1)
	if g.Winner >= 0 {
		if uint8(g.Winner) == engine.PlayerRed {
			winner = 1
		} else {
			winner = 0
		}
	}
	out[base+1] = winner
	result := int16(-1)
	if g.Over {
		result = int16(g.Result)
	}
	out[base+2] = result
	duelIdx := int16(-1)
	if g.DuelIdx >= 0 {
		duelIdx = int16(g.DuelIdx)
	}
	out[base+3] = duelIdx
}

// Observation is a convenience wrapper allocating the vector.
func Observation(g *engine.Game, view Perspective) []int16 {
	var out [ObservationDim]int16
	Encode(g, view, &out)
	return out[:]
}
