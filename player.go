package palace

import (
	"sort"

	"github.com/palacegame/palace/deck"
)

// Zone identifies which of a player's card groups a play comes from.
type Zone int

const (
	ZoneHand Zone = iota
	ZoneLastChance
	ZoneLastStand
)

var zoneNames = []string{"hand", "lastChance", "lastStand"}

func (z Zone) String() string {
	return zoneNames[z]
}

// Player represents a seat at the table. Seat 0 is the human.
type Player struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	IsAI       bool        `json:"isAI"`
	Hand       []deck.Card `json:"hand"`
	LastChance []deck.Card `json:"lastChance"`
	LastStand  []deck.Card `json:"lastStand"`
	CardsEaten int         `json:"cardsEaten"`
}

// HasCards reports whether the player still holds cards in any zone. A
// player with no cards anywhere has won.
func (p Player) HasCards() bool {
	return len(p.Hand) > 0 || len(p.LastChance) > 0 || len(p.LastStand) > 0
}

// ActiveZone is the zone the player must currently play from: the hand
// while it holds cards, then the last chance, then the last stand.
func (p Player) ActiveZone() Zone {
	if len(p.Hand) > 0 {
		return ZoneHand
	}
	if len(p.LastChance) > 0 {
		return ZoneLastChance
	}
	return ZoneLastStand
}

func (p Player) activeZoneCards() []deck.Card {
	switch p.ActiveZone() {
	case ZoneHand:
		return p.Hand
	case ZoneLastChance:
		return p.LastChance
	}
	return p.LastStand
}

// zoneOf locates the single zone holding every one of cards, by identity.
// It returns false if the cards are spread across zones or missing.
func (p Player) zoneOf(cards []deck.Card) (Zone, bool) {
	zones := []struct {
		zone  Zone
		cards []deck.Card
	}{
		{ZoneHand, p.Hand},
		{ZoneLastChance, p.LastChance},
		{ZoneLastStand, p.LastStand},
	}

	for _, z := range zones {
		found := 0
		for _, want := range cards {
			for _, c := range z.cards {
				if c.ID == want.ID {
					found++
					break
				}
			}
		}
		if found == len(cards) {
			return z.zone, true
		}
		if found > 0 {
			return 0, false
		}
	}
	return 0, false
}

// sortHand keeps the hand ordered by card value after any mutation that
// adds cards. Suits break ties so the order is deterministic.
func (p *Player) sortHand() {
	sort.Slice(p.Hand, func(i, j int) bool {
		vi, vj := cardValues[p.Hand[i].Rank], cardValues[p.Hand[j].Rank]
		if vi != vj {
			return vi < vj
		}
		return p.Hand[i].Suit < p.Hand[j].Suit
	})
}

// Clone returns a deep copy of the player and their zones.
func (p Player) Clone() Player {
	c := p
	c.Hand = append([]deck.Card{}, p.Hand...)
	c.LastChance = append([]deck.Card{}, p.LastChance...)
	c.LastStand = append([]deck.Card{}, p.LastStand...)
	return c
}

// removeCards removes cards by identity from zone, compacting the remainder
// so positional slots never hold gaps. It returns false if any card is
// missing.
func removeCards(zone []deck.Card, cards []deck.Card) ([]deck.Card, bool) {
	remaining := append([]deck.Card{}, zone...)
	for _, want := range cards {
		found := false
		for i, c := range remaining {
			if c.ID == want.ID {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return zone, false
		}
	}
	return remaining, true
}
