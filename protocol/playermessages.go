package protocol

import "github.com/palacegame/palace/deck"

// InboundMessage is an intent from the human client to the driver
type InboundMessage struct {
	Command   Cmd   `json:"command"`
	CardIDs   []int `json:"cardIDs,omitempty"`   // PlayHand, PlayLastChance, OpeningBid
	Slot      int   `json:"slot"`                // PlayLastStand
	HandIdx   int   `json:"handIdx"`             // SwapCard
	ChanceIdx int   `json:"chanceIdx"`           // SwapCard
}

// OutboundMessage is a state update from the driver to the client
type OutboundMessage struct {
	Command     Cmd         `json:"command"`
	Stage       string      `json:"stage"`
	Hand        []deck.Card `json:"hand"`
	LastChance  []deck.Card `json:"lastChance"`
	LastStand   int         `json:"lastStand"` // face-down cards are sent as a count
	Pile        []deck.Card `json:"pile"`
	DeckSize    int         `json:"deckSize"`
	BinSize     int         `json:"binSize"`
	CurrentSeat int         `json:"currentSeat"`
	TurnCount   int         `json:"turnCount"`
	Opponents   []Opponent  `json:"opponents,omitempty"`
	Winner      *int        `json:"winner,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Opponent is the public view of another seat: concealed zones appear only
// as counts
type Opponent struct {
	Seat       int         `json:"seat"`
	Name       string      `json:"name"`
	HandSize   int         `json:"handSize"`
	LastChance []deck.Card `json:"lastChance"`
	LastStand  int         `json:"lastStand"`
	CardsEaten int         `json:"cardsEaten"`
}
