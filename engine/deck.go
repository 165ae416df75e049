package engine

// DeckState is the lifecycle state of a 3-card deck.
type DeckState uint8

const (
	DeckUndisclosed DeckState = iota // not yet committed to a duel
	DeckInDuel                       // currently committed
	DeckFinished                     // its duel is over, fully revealed
)

// Deck is a 3-card deck owned by one player. The first card (index 0) is the
// delegate: it determines the deck's strength ordering and is the only card
// face-up at deal time. Cards are stored by value in parallel arrays; nothing
// outside the deck holds a mutable reference to them.
type Deck struct {
	Cards  [CardsPerDeck]Card
	Values [CardsPerDeck]int8
	Open   [CardsPerDeck]bool

	State    DeckState
	Index    int8 // 0–8 after sorting, assigned by the deck builder
	OppIndex int8 // opposing deck's index once both sides commit, -1 before
	NextOpen int8 // cursor of the next card to reveal, -1 when none pending
}

// Delegate returns the deck's first card.
func (d *Deck) Delegate() Card { return d.Cards[0] }

// DelegateValue returns the resolved value of the delegate.
func (d *Deck) DelegateValue() int8 { return d.Values[0] }

// Sum returns the total resolved value of all three cards.
func (d *Deck) Sum() int {
	return int(d.Values[0]) + int(d.Values[1]) + int(d.Values[2])
}

// OpenSum returns the total resolved value of the face-up cards.
func (d *Deck) OpenSum() int {
	var sum int
	for i := 0; i < CardsPerDeck; i++ {
		if d.Open[i] {
			sum += int(d.Values[i])
		}
	}
	return sum
}

// OpenCount returns how many cards are face-up.
func (d *Deck) OpenCount() int {
	var n int
	for i := 0; i < CardsPerDeck; i++ {
		if d.Open[i] {
			n++
		}
	}
	return n
}

// IsUndisclosed reports whether the deck has not been committed to any duel.
func (d *Deck) IsUndisclosed() bool { return d.State == DeckUndisclosed }

// IsInDuel reports whether the deck is committed to the ongoing duel.
func (d *Deck) IsInDuel() bool { return d.State == DeckInDuel }

// ContainsJoker reports whether one of the three cards is a joker.
func (d *Deck) ContainsJoker() bool {
	for i := 0; i < CardsPerDeck; i++ {
		if d.Cards[i].IsJoker() {
			return true
		}
	}
	return false
}

// RevealNext opens the next hidden card in reveal order (slot 1, then slot 2).
// The cursor parks at -1 once every card is open.
func (d *Deck) RevealNext() {
	if d.NextOpen < 0 {
		d.NextOpen = 1
	}
	d.Open[d.NextOpen] = true
	d.NextOpen++
	if d.NextOpen == CardsPerDeck {
		d.NextOpen = -1
	}
}

// RevealAll opens every card in the deck.
func (d *Deck) RevealAll() {
	for i := 0; i < CardsPerDeck; i++ {
		d.Open[i] = true
	}
}

// finish closes the deck at the end of its duel.
func (d *Deck) finish() { d.State = DeckFinished }

// Labels returns the three table labels for the deck's cards, masking
// everything when the deck is still undisclosed.
func (d *Deck) Labels() [CardsPerDeck]string {
	var out [CardsPerDeck]string
	if d.IsUndisclosed() {
		return out
	}
	for i := 0; i < CardsPerDeck; i++ {
		out[i] = d.Cards[i].Label(d.Values[i], d.Open[i])
	}
	return out
}

// UndisclosedDelegateLabel renders the delegate for a deck that has not been
// picked yet; committed and finished decks render through Labels instead.
func (d *Deck) UndisclosedDelegateLabel() string {
	if !d.IsUndisclosed() {
		return ""
	}
	return d.Cards[0].Label(d.Values[0], d.Open[0])
}
