package engine

import "math/rand/v2"

// JokerValueStrategy assigns the joker's numeric value within a freshly dealt
// 3-card group, before deck ordering. The set is closed: exactly four options.
type JokerValueStrategy uint8

const (
	// JokerThirteen assigns the maximum rank value.
	JokerThirteen JokerValueStrategy = iota
	// JokerSameAsMax assigns the highest non-joker value already in the group.
	JokerSameAsMax
	// JokerRandomValue assigns a value drawn uniformly from 1–13.
	JokerRandomValue
	// JokerNextBiggest assigns the largest value not already in the group.
	JokerNextBiggest
)

var jokerValueNames = [...]string{"thirteen", "same-as-max", "random", "next-biggest"}

func (s JokerValueStrategy) String() string {
	if int(s) < len(jokerValueNames) {
		return jokerValueNames[s]
	}
	return "unknown"
}

// Describe returns the menu line shown when a player picks the strategy.
func (s JokerValueStrategy) Describe() string {
	switch s {
	case JokerThirteen:
		return "Assign 13."
	case JokerSameAsMax:
		return "Assign the biggest value that is already in the deck."
	case JokerRandomValue:
		return "Assign a random number."
	case JokerNextBiggest:
		return "Assign the next biggest value that is not yet in the deck."
	}
	return ""
}

// apply resolves the joker's value in place. Groups without a joker are left
// untouched.
func (s JokerValueStrategy) apply(cards *[CardsPerDeck]Card, values *[CardsPerDeck]int8, rng *rand.Rand) {
	joker := jokerIndex(cards)
	if joker < 0 {
		return
	}
	switch s {
	case JokerThirteen:
		values[joker] = MaxRankValue
	case JokerSameAsMax:
		biggest, _ := nonJokerExtremes(cards, values)
		values[joker] = biggest
	case JokerRandomValue:
		values[joker] = int8(rng.IntN(int(MaxRankValue)) + 1)
	case JokerNextBiggest:
		biggest, smallest := nonJokerExtremes(cards, values)
		switch {
		case biggest == 1:
			values[joker] = 1
		case biggest == 2:
			values[joker] = 3 - smallest
		case smallest == biggest-1:
			values[joker] = biggest - 2
		default:
			values[joker] = biggest - 1
		}
	}
}

// JokerPositionStrategy decides which card ends up in the delegate slot
// (index 0) of a freshly dealt group, and where the joker hides. The set is
// closed: exactly four options.
type JokerPositionStrategy uint8

const (
	// JokerFirst reveals the joker as soon as possible: the joker takes the
	// delegate slot whenever its value is at least the best non-joker's.
	JokerFirst JokerPositionStrategy = iota
	// JokerLast hides the joker as long as possible: the joker leads only
	// when strictly stronger, and otherwise moves toward the last slot.
	JokerLast
	// JokerAnywhere simply promotes the overall strongest card.
	JokerAnywhere
	// JokerNotFirst promotes the joker only when strictly stronger than the
	// best non-joker; ties keep the non-joker in front.
	JokerNotFirst
)

var jokerPositionNames = [...]string{"joker-first", "joker-last", "anywhere", "not-first"}

func (s JokerPositionStrategy) String() string {
	if int(s) < len(jokerPositionNames) {
		return jokerPositionNames[s]
	}
	return "unknown"
}

// Describe returns the menu line shown when a player picks the strategy.
func (s JokerPositionStrategy) Describe() string {
	switch s {
	case JokerFirst:
		return "Reveal the joker as soon as possible."
	case JokerLast:
		return "Hide the joker as long as possible."
	case JokerAnywhere:
		return "Put the joker anywhere within the deck."
	case JokerNotFirst:
		return "Put the joker anywhere but in the first position."
	}
	return ""
}

// apply reorders the group in place. The comparative branching below is part
// of the game rules; each variant's exact tie handling is observable through
// the resulting deck ordering.
func (s JokerPositionStrategy) apply(cards *[CardsPerDeck]Card, values *[CardsPerDeck]int8) {
	swap := func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
		values[i], values[j] = values[j], values[i]
	}
	joker := jokerIndex(cards)
	if joker < 0 {
		swap(0, biggestIndex(cards, values, false))
		return
	}
	bigger := biggestIndex(cards, values, true)
	switch s {
	case JokerFirst:
		if values[joker] >= values[bigger] {
			swap(0, joker)
		} else {
			swap(0, bigger)
		}
	case JokerLast:
		if values[joker] > values[bigger] {
			swap(0, joker)
		} else {
			// The joker index is deliberately not recomputed after the first
			// swap; a joker sitting in the delegate slot trades places twice.
			// Original rule, kept verbatim.
			swap(0, bigger)
			swap(CardsPerDeck-1, joker)
		}
	case JokerAnywhere:
		swap(0, biggestIndex(cards, values, false))
	case JokerNotFirst:
		if values[joker] > values[bigger] {
			swap(0, joker)
		} else {
			swap(0, bigger)
		}
	}
}

// jokerIndex returns the joker's slot, or -1 when the group has none.
func jokerIndex(cards *[CardsPerDeck]Card) int {
	for i := 0; i < CardsPerDeck; i++ {
		if cards[i].IsJoker() {
			return i
		}
	}
	return -1
}

// biggestIndex returns the slot of the first card holding the maximum value,
// optionally skipping the joker.
func biggestIndex(cards *[CardsPerDeck]Card, values *[CardsPerDeck]int8, skipJoker bool) int {
	best := -1
	for i := 0; i < CardsPerDeck; i++ {
		if skipJoker && cards[i].IsJoker() {
			continue
		}
		if best < 0 || values[i] > values[best] {
			best = i
		}
	}
	return best
}

// nonJokerExtremes returns the biggest and smallest non-joker values.
func nonJokerExtremes(cards *[CardsPerDeck]Card, values *[CardsPerDeck]int8) (biggest, smallest int8) {
	biggest, smallest = -1, MaxRankValue+1
	for i := 0; i < CardsPerDeck; i++ {
		if cards[i].IsJoker() {
			continue
		}
		if values[i] > biggest {
			biggest = values[i]
		}
		if values[i] < smallest {
			smallest = values[i]
		}
	}
	return biggest, smallest
}
