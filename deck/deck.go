package deck

import (
	"math/rand"
	"time"
)

// Deck represents an ordered deck of cards. The front of the slice is the
// next card to be drawn.
type Deck []Card

// New creates a full deck of 52 cards in a fixed order
func New() Deck {
	cards := make(Deck, 0, len(suitNames)*len(rankNames))
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, NewCard(Rank(rank), Suit(suit)))
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards in place
func (d Deck) Shuffle() {
	rand.Seed(time.Now().UnixNano())
	for i := len(d) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Shuffled returns a shuffled copy of the deck, leaving the original
// untouched
func Shuffled(d Deck) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	shuffled.Shuffle()
	return shuffled
}

// Deal removes and returns up to n cards from the front of the deck. The
// remaining cards keep their order.
func (d *Deck) Deal(n int) []Card {
	if n < 0 {
		return []Card{}
	}
	if n > len(*d) {
		n = len(*d)
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}
