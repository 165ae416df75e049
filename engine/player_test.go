package engine

import (
	"testing"
)

func TestBuildDecksInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		var p PlayerState
		p.Strategy = Presets()[0].Strategy
		p.BuildDecks(RedPile(), testRNG(seed))

		seen := make(map[Card]bool)
		jokers := 0
		for i := range p.Decks {
			deck := &p.Decks[i]
			if deck.State != DeckUndisclosed {
				t.Fatalf("seed %d: deck %d not undisclosed after deal", seed, i)
			}
			if deck.Index != int8(i) {
				t.Fatalf("seed %d: deck %d carries index %d", seed, i, deck.Index)
			}
			if !deck.Open[0] || deck.Open[1] || deck.Open[2] {
				t.Fatalf("seed %d: deck %d should expose only its delegate", seed, i)
			}
			if i > 0 && deck.DelegateValue() < p.Decks[i-1].DelegateValue() {
				t.Fatalf("seed %d: delegates out of order at deck %d", seed, i)
			}
			for c := 0; c < CardsPerDeck; c++ {
				card := deck.Cards[c]
				if seen[card] {
					t.Fatalf("seed %d: card %v dealt twice", seed, card)
				}
				seen[card] = true
				if card.IsJoker() {
					jokers++
				} else if deck.Values[c] != card.BaseValue() {
					t.Fatalf("seed %d: non-joker %v assigned value %d", seed, card, deck.Values[c])
				}
			}
		}
		if len(seen) != PileSize {
			t.Fatalf("seed %d: %d distinct cards, want %d", seed, len(seen), PileSize)
		}
		if jokers != 1 {
			t.Fatalf("seed %d: %d jokers, want 1", seed, jokers)
		}
	}
}

func TestBuildDecksDeterministic(t *testing.T) {
	var a, b PlayerState
	a.Strategy = Presets()[0].Strategy
	b.Strategy = Presets()[0].Strategy
	a.BuildDecks(BlackPile(), testRNG(99))
	b.BuildDecks(BlackPile(), testRNG(99))
	if a.Decks != b.Decks {
		t.Error("same seed produced different deals")
	}
}

func TestRevealNextCursor(t *testing.T) {
	var p PlayerState
	p.Strategy = Presets()[0].Strategy
	p.BuildDecks(RedPile(), testRNG(3))
	p.sendToDuel(4)

	deck := &p.Decks[4]
	if deck.NextOpen != -1 {
		t.Fatalf("cursor should start unset, got %d", deck.NextOpen)
	}
	if err := p.RevealNextCard(); err != nil {
		t.Fatal(err)
	}
	if !deck.Open[1] || deck.Open[2] {
		t.Fatal("first reveal should open slot 1 only")
	}
	if deck.NextOpen != 2 {
		t.Fatalf("cursor should point at slot 2, got %d", deck.NextOpen)
	}
	if err := p.RevealNextCard(); err != nil {
		t.Fatal(err)
	}
	if !deck.Open[2] {
		t.Fatal("second reveal should open slot 2")
	}
	if deck.NextOpen != -1 {
		t.Fatalf("cursor should reset after the last card, got %d", deck.NextOpen)
	}
}

func TestRevealNextCardWithoutDuel(t *testing.T) {
	var p PlayerState
	p.Name = "red"
	p.InDuel = -1
	if err := p.RevealNextCard(); err == nil {
		t.Error("expected an error with no committed deck")
	}
}

func TestIsDoneIgnoresUndisclosedDelegates(t *testing.T) {
	var p PlayerState
	p.Strategy = Presets()[0].Strategy
	p.BuildDecks(RedPile(), testRNG(5))
	if p.IsDone() {
		t.Fatal("a fresh deal cannot be done")
	}
	// Reveal everything but leave the decks undisclosed: still not done.
	for i := range p.Decks {
		p.Decks[i].RevealAll()
	}
	if p.IsDone() {
		t.Fatal("undisclosed decks must not count toward done")
	}
	for i := range p.Decks {
		p.Decks[i].finish()
	}
	if !p.IsDone() {
		t.Fatal("all values revealed across finished decks should be done")
	}
}

func TestUndisclosedDecksShrink(t *testing.T) {
	var p PlayerState
	p.Strategy = Presets()[0].Strategy
	p.BuildDecks(BlackPile(), testRNG(8))
	if got := len(p.UndisclosedDecks()); got != DecksPerPile {
		t.Fatalf("fresh player has %d undisclosed decks, want %d", got, DecksPerPile)
	}
	p.sendToDuel(0)
	p.Decks[0].finish()
	p.InDuel = -1
	left := p.UndisclosedDecks()
	if len(left) != DecksPerPile-1 || left[0] != 1 {
		t.Fatalf("unexpected undisclosed set %v", left)
	}
}
