// Package bot chooses plays for AI-controlled seats. Strategies only ever
// see the bot's own zones, the public target card and the public pile and
// deck sizes; opponents' concealed cards are never an input.
package bot

import (
	"fmt"

	"github.com/palacegame/palace"
	"github.com/palacegame/palace/deck"
)

// Difficulty selects an AI heuristic tier. It affects move selection only,
// never rule legality.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = []string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	return difficultyNames[d]
}

// ParseDifficulty maps a config string onto a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Brain is the interface all bot strategies implement.
type Brain interface {
	// ChoosePlay returns a legal play from the player's active zone, or
	// nil when no legal play exists and the player must eat the pile.
	ChoosePlay(p palace.Player, target *deck.Card, pileSize, deckSize int) []deck.Card

	// ChooseSwap returns the next hand/last-chance exchange to apply
	// during the swap stage, or false when the bot is satisfied. The
	// driver applies one swap at a time because the hand resorts after
	// each exchange.
	ChooseSwap(p palace.Player) (Swap, bool)
}

// Swap pairs a hand index with a last chance slot to exchange.
type Swap struct {
	HandIdx   int
	ChanceIdx int
}

// NewBrain creates a bot strategy for the given difficulty.
func NewBrain(d Difficulty) (Brain, error) {
	switch d {
	case Easy:
		return &easyBot{}, nil
	case Medium:
		return &mediumBot{}, nil
	case Hard:
		return &hardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %d", d)
	}
}

// Play is the module entry point: it returns a legal play for p, or nil to
// signal that p must eat the pile.
func Play(p palace.Player, target *deck.Card, pileSize, deckSize int, d Difficulty) []deck.Card {
	brain, err := NewBrain(d)
	if err != nil {
		return nil
	}
	return brain.ChoosePlay(p, target, pileSize, deckSize)
}

// StartingCard selects the opening bid: the lowest-value ordinary card, or
// the lowest interrupt when the hand holds nothing else. All difficulties
// bid the same way.
func StartingCard(p palace.Player) []deck.Card {
	var best *deck.Card
	for i := range p.Hand {
		c := p.Hand[i]
		if c.Rank == deck.Two || c.Rank == deck.Ten {
			continue
		}
		if best == nil || palace.CardValue(c) < palace.CardValue(*best) {
			best = &p.Hand[i]
		}
	}
	if best == nil {
		for i := range p.Hand {
			if best == nil || palace.CardValue(p.Hand[i]) < palace.CardValue(*best) {
				best = &p.Hand[i]
			}
		}
	}
	if best == nil {
		return nil
	}
	return []deck.Card{*best}
}
