package bot

import (
	"sort"

	"github.com/palacegame/palace"
	"github.com/palacegame/palace/deck"
)

// candidate is a maximal same-rank group from the player's active zone.
type candidate struct {
	cards []deck.Card
	score float64
}

// legalGroups gathers every legal play available to p: for each rank in the
// active zone, the maximal same-rank group, kept only if it passes the rule
// engine's own validation.
func legalGroups(p palace.Player, target *deck.Card) []candidate {
	zone := activeCards(p)

	byRank := map[deck.Rank][]deck.Card{}
	ranks := []deck.Rank{}
	for _, c := range zone {
		if _, seen := byRank[c.Rank]; !seen {
			ranks = append(ranks, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	groups := []candidate{}
	for _, r := range ranks {
		cards := byRank[r]
		if palace.IsValidPlay(cards, target, p) {
			groups = append(groups, candidate{cards: cards})
		}
	}
	return groups
}

func activeCards(p palace.Player) []deck.Card {
	switch p.ActiveZone() {
	case palace.ZoneHand:
		return p.Hand
	case palace.ZoneLastChance:
		return p.LastChance
	}
	// last stand plays are blind; never choose from it here
	return nil
}

// LastStandIndex picks which last stand slot to flip. The play is blind,
// so slot order is as good as anything.
func LastStandIndex(p palace.Player) int {
	return 0
}

// easyBot takes the first legal option with no lookahead.
type easyBot struct{}

func (b *easyBot) ChoosePlay(p palace.Player, target *deck.Card, pileSize, deckSize int) []deck.Card {
	for _, c := range activeCards(p) {
		single := []deck.Card{c}
		if palace.IsValidPlay(single, target, p) {
			return single
		}
	}
	return nil
}

// ChooseSwap keeps the deal as dealt.
func (b *easyBot) ChooseSwap(p palace.Player) (Swap, bool) {
	return Swap{}, false
}

// mediumBot plays the lowest-value legal group, holding its Twos and Tens
// back while any ordinary play exists.
type mediumBot struct{}

func (b *mediumBot) ChoosePlay(p palace.Player, target *deck.Card, pileSize, deckSize int) []deck.Card {
	groups := legalGroups(p, target)
	if len(groups) == 0 {
		return nil
	}

	ordinary := []candidate{}
	for _, g := range groups {
		if r := g.cards[0].Rank; r != deck.Two && r != deck.Ten {
			ordinary = append(ordinary, g)
		}
	}
	if len(ordinary) > 0 {
		groups = ordinary
	}

	sort.Slice(groups, func(i, j int) bool {
		return palace.CardValue(groups[i].cards[0]) < palace.CardValue(groups[j].cards[0])
	})
	return groups[0].cards
}

func (b *mediumBot) ChooseSwap(p palace.Player) (Swap, bool) {
	return bankHighCard(p)
}

// bankHighCard proposes the single most profitable exchange, moving the
// highest-value cards and the special ranks into the last chance, where
// they wait for the late game. Each swap strictly improves the banked
// score, so a driver looping until done always terminates.
func bankHighCard(p palace.Player) (Swap, bool) {
	best := Swap{HandIdx: -1}
	bestGain := 0
	for hi, h := range p.Hand {
		for ci, c := range p.LastChance {
			if gain := swapScore(h) - swapScore(c); gain > bestGain {
				best = Swap{HandIdx: hi, ChanceIdx: ci}
				bestGain = gain
			}
		}
	}
	if best.HandIdx == -1 {
		return Swap{}, false
	}
	return best, true
}

// swapScore ranks how much a card is worth banking: interrupts first, then
// raw value.
func swapScore(c deck.Card) int {
	if c.Rank == deck.Two || c.Rank == deck.Ten {
		return 100
	}
	return palace.CardValue(c)
}
