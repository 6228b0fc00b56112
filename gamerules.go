package palace

import (
	"github.com/palacegame/palace/deck"
)

const (
	minPlayers     = 1
	maxPlayers     = 4
	handSize       = 3
	reserveSize    = 3
	fourOfAKindNum = 4
)

// cardValues is the total order used for magnitude comparisons, e.g. beating
// the pile target or ranking opening bids. Matching (pairs, four of a kind)
// uses rank equality, never these values.
var cardValues = map[deck.Rank]int{
	deck.Three: 3,
	deck.Four:  4,
	deck.Five:  5,
	deck.Six:   6,
	deck.Seven: 7,
	deck.Eight: 8,
	deck.Nine:  9,
	deck.Jack:  11,
	deck.Queen: 12,
	deck.King:  13,
	deck.Ace:   14,
	// special powers
	deck.Two: 2,
	deck.Ten: 10,
}

// CardValue returns the comparison value of a card
func CardValue(c deck.Card) int {
	return cardValues[c.Rank]
}

// IsValidPlay reports whether p may legally play cards onto target. A nil
// target means the pile is empty. All cards must share one rank and must
// come from a single zone the player is currently allowed to play from:
// the last chance only once the hand is empty, the last stand only once
// the hand and last chance are both empty.
func IsValidPlay(cards []deck.Card, target *deck.Card, p Player) bool {
	if len(cards) == 0 || !sameRank(cards) {
		return false
	}

	zone, ok := p.zoneOf(cards)
	if !ok {
		return false
	}

	switch zone {
	case ZoneLastChance:
		if len(p.Hand) > 0 {
			return false
		}
	case ZoneLastStand:
		if len(p.Hand) > 0 || len(p.LastChance) > 0 {
			return false
		}
	}

	return beatsTarget(cards[0], target)
}

// PlayerHasValidMove reports whether any card in the player's currently
// active zone could legally be played onto target. It gates eating: a
// player may only eat the pile when this returns false.
func PlayerHasValidMove(p Player, target *deck.Card) bool {
	for _, c := range p.activeZoneCards() {
		if beatsTarget(c, target) {
			return true
		}
	}
	return false
}

// beatsTarget is the core legality check for a single card. Twos and Tens
// are interrupts: legal against anything.
func beatsTarget(c deck.Card, target *deck.Card) bool {
	if target == nil {
		return true
	}
	if c.Rank == deck.Two || c.Rank == deck.Ten {
		return true
	}
	return cardValues[c.Rank] >= cardValues[target.Rank]
}

// validOpeningBid reports whether cards may be revealed as an opening bid
// from hand. Twos and Tens open only when the hand holds nothing else, so a
// seat dealt all interrupts can still bid.
func validOpeningBid(cards, hand []deck.Card) bool {
	if len(cards) == 0 || !sameRank(cards) {
		return false
	}
	r := cards[0].Rank
	if r != deck.Two && r != deck.Ten {
		return true
	}
	for _, c := range hand {
		if c.Rank != deck.Two && c.Rank != deck.Ten {
			return false
		}
	}
	return true
}

func sameRank(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

// isFourOfAKind reports whether the top four pile cards share one rank.
// The check keys strictly on rank equality, never on card value.
func isFourOfAKind(pile []deck.Card) bool {
	if len(pile) < fourOfAKindNum {
		return false
	}
	top := pile[len(pile)-fourOfAKindNum:]
	for _, c := range top[1:] {
		if c.Rank != top[0].Rank {
			return false
		}
	}
	return true
}
