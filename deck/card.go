package deck

import "fmt"

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	return rankNames[r]
}

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	return suitNames[s]
}

// Card represents a physical playing card. ID is unique per physical card
// (0-51) and never changes as the card moves between zones, so identity can
// be tracked independently of the card's face value.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
	ID   int  `json:"id"`
}

// NewCard constructs a card. The ID is derived from the suit and rank, so
// constructing the same face twice yields the same identity.
func NewCard(rank Rank, suit Suit) Card {
	return Card{
		Rank: rank,
		Suit: suit,
		ID:   int(suit)*len(rankNames) + int(rank),
	}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", rankNames[c.Rank], suitNames[c.Suit])
}
