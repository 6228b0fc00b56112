package bot

import (
	"sort"

	"github.com/palacegame/palace"
	"github.com/palacegame/palace/deck"
)

// Tuning weights for the hard strategy.
const (
	weightKeepLow    = 1.0  // playing a high card preserves low cards for forced plays
	weightGroupSize  = 5.0  // shedding more cards at once
	weightRankMatch  = 15.0 // per card matching the target rank (four-of-a-kind setup)
	penaltySpecial   = 30.0 // spending a Two or Ten when an alternative exists
	penaltyOpenPower = 20.0 // extra penalty for leading a Two or Ten onto an empty pile
)

// hardBot scores every legal group and plays the best one. It weights
// toward preserving low cards for future forced plays, chases
// four-of-a-kind chains when the pile composition makes one reachable,
// and avoids volunteering its interrupts.
type hardBot struct{}

func (b *hardBot) ChoosePlay(p palace.Player, target *deck.Card, pileSize, deckSize int) []deck.Card {
	groups := legalGroups(p, target)
	if len(groups) == 0 {
		return nil
	}

	hasOrdinary := false
	for _, g := range groups {
		if r := g.cards[0].Rank; r != deck.Two && r != deck.Ten {
			hasOrdinary = true
			break
		}
	}

	for i := range groups {
		groups[i].score = b.scoreGroup(groups[i], target, pileSize, deckSize, hasOrdinary)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].score != groups[j].score {
			return groups[i].score > groups[j].score
		}
		// deterministic tie-break on value
		return palace.CardValue(groups[i].cards[0]) < palace.CardValue(groups[j].cards[0])
	})
	return groups[0].cards
}

func (b *hardBot) scoreGroup(g candidate, target *deck.Card, pileSize, deckSize int, hasOrdinary bool) float64 {
	rank := g.cards[0].Rank
	score := weightKeepLow * float64(palace.CardValue(g.cards[0]))

	// Once the deck is exhausted nothing refills, so shedding more cards
	// per turn matters more.
	groupWeight := weightGroupSize
	if deckSize == 0 {
		groupWeight *= 2
	}
	score += groupWeight * float64(len(g.cards))

	// Matching the target rank builds toward a four-of-a-kind clear.
	// A bigger pile makes the clear more valuable to deny.
	if target != nil && rank == target.Rank {
		score += weightRankMatch * float64(len(g.cards))
		score += float64(pileSize)
	}

	if rank == deck.Two || rank == deck.Ten {
		if hasOrdinary {
			score -= penaltySpecial
		}
		if target == nil {
			score -= penaltyOpenPower
		}
	}

	return score
}

func (b *hardBot) ChooseSwap(p palace.Player) (Swap, bool) {
	return bankHighCard(p)
}
