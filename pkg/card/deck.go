package card

import "math"

// Deck is an ordered, cyclic sequence of cards.
// The zero value is an empty deck; all methods are safe on it.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from an ordered card slice.
func NewDeck(cards []Card) Deck {
	return Deck{cards: cards}
}

// Len returns the number of cards.
func (d Deck) Len() int {
	return len(d.cards)
}

// At returns the card at a wrapped index. Calling At on an empty deck
// returns a zero card.
func (d Deck) At(i int) Card {
	if len(d.cards) == 0 {
		return Card{}
	}
	return d.cards[d.Wrap(i)]
}

// Cards returns the underlying ordered sequence.
func (d Deck) Cards() []Card {
	return d.cards
}

// Wrap maps any integer onto a valid deck index.
func (d Deck) Wrap(i int) int {
	n := len(d.cards)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Distance returns the shortest signed cyclic distance from index a to the
// (possibly fractional) position b. The result is in (-n/2, n/2].
func (d Deck) Distance(a int, b float64) float64 {
	n := float64(len(d.cards))
	if n == 0 {
		return 0
	}
	diff := math.Mod(b-float64(a), n)
	if diff > n/2 {
		diff -= n
	} else if diff < -n/2 {
		diff += n
	}
	return diff
}
