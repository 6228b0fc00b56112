package server

import (
	"fmt"
	"sync"

	"github.com/palacegame/palace"
	"github.com/palacegame/palace/bot"
	"github.com/palacegame/palace/deck"
	"github.com/palacegame/palace/protocol"
)

const humanSeat = 0

// Session is the driver for one game: it owns the current GameState, turns
// client messages into engine intents, and steps AI turns on request. All
// mutations are serialised through the mutex; the engine itself is pure.
type Session struct {
	mu         sync.Mutex
	id         string
	state      palace.GameState
	difficulty bot.Difficulty
}

// NewSession starts a game with the human in seat 0
func NewSession(id string, names []string, difficulty bot.Difficulty) (*Session, error) {
	state, err := palace.InitializeGame(names)
	if err != nil {
		return nil, err
	}
	return &Session{id: id, state: state, difficulty: difficulty}, nil
}

func (s *Session) ID() string {
	return s.id
}

// State returns a detached snapshot of the current game state; mutating it
// never touches the live game.
func (s *Session) State() palace.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// HandleIntent applies one human intent. Rule rejections come back as an
// InvalidPlay message rather than an error; errors are reserved for
// malformed messages.
func (s *Session) HandleIntent(msg protocol.InboundMessage) (protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next palace.GameState
		err  error
	)

	switch msg.Command {
	case protocol.DealStep:
		next, err = palace.AdvanceDeal(s.state)
		if err == nil && next.Stage == palace.StageSwap {
			next = s.runAISwaps(next)
		}

	case protocol.SwapCard:
		next, err = palace.SwapCard(s.state, humanSeat, msg.HandIdx, msg.ChanceIdx)

	case protocol.ConfirmSwap, protocol.OpeningBid:
		next, err = s.resolveBids(msg.CardIDs)

	case protocol.PlayHand, protocol.PlayLastChance:
		var cards []deck.Card
		cards, err = s.humanCards(msg.CardIDs)
		if err == nil {
			next, err = palace.PlayCards(s.state, humanSeat, cards)
		}

	case protocol.PlayLastStand:
		next, err = palace.PlayLastStand(s.state, humanSeat, msg.Slot)

	case protocol.EatPile:
		next, err = palace.EatPile(s.state, humanSeat)

	default:
		return protocol.OutboundMessage{}, fmt.Errorf("unexpected command %s", msg.Command)
	}

	if err != nil {
		out := s.outbound(protocol.InvalidPlay)
		out.Error = err.Error()
		return out, nil
	}

	s.state = next
	cmd := protocol.Turn
	if s.state.Stage == palace.StageGameOver {
		cmd = protocol.GameOver
	}
	return s.outbound(cmd), nil
}

// PendingAITurn reports whether an AI seat should act next
func (s *Session) PendingAITurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stage == palace.StagePlay && s.state.CurrentPlayerID != humanSeat
}

// StepAITurn commits one AI intent: a play from the active zone, a blind
// last stand flip, or eating the pile when no legal play exists.
func (s *Session) StepAITurn() (protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Stage != palace.StagePlay || s.state.CurrentPlayerID == humanSeat {
		return protocol.OutboundMessage{}, fmt.Errorf("no AI turn pending")
	}

	seat := s.state.CurrentPlayerID
	p := s.state.Players[seat]
	target := s.state.TargetCard()

	var (
		next palace.GameState
		err  error
	)

	if p.ActiveZone() == palace.ZoneLastStand {
		next, err = palace.PlayLastStand(s.state, seat, bot.LastStandIndex(p))
	} else if cards := bot.Play(p, target, len(s.state.MPA), len(s.state.Deck), s.difficulty); cards != nil {
		next, err = palace.PlayCards(s.state, seat, cards)
	} else {
		next, err = palace.EatPile(s.state, seat)
	}
	if err != nil {
		return protocol.OutboundMessage{}, fmt.Errorf("AI seat %d: %w", seat, err)
	}

	s.state = next
	cmd := protocol.Turn
	if s.state.Stage == palace.StageGameOver {
		cmd = protocol.GameOver
	}
	return s.outbound(cmd), nil
}

// resolveBids collects the opening bids: the human's chosen cards plus each
// AI's lowest legal opener.
func (s *Session) resolveBids(cardIDs []int) (palace.GameState, error) {
	humanBid, err := s.humanCards(cardIDs)
	if err != nil {
		return s.state, err
	}

	bids := []palace.OpeningBid{{PlayerID: humanSeat, Cards: humanBid}}
	for _, p := range s.state.Players[1:] {
		bids = append(bids, palace.OpeningBid{PlayerID: p.ID, Cards: bot.StartingCard(p)})
	}
	return palace.ResolveOpeningBid(s.state, bids)
}

// runAISwaps lets each AI seat rearrange its hand and last chance, one swap
// at a time since the hand resorts after each exchange.
func (s *Session) runAISwaps(state palace.GameState) palace.GameState {
	brain, err := bot.NewBrain(s.difficulty)
	if err != nil {
		return state
	}

	for _, p := range state.Players {
		if !p.IsAI {
			continue
		}
		for {
			swap, ok := brain.ChooseSwap(state.Players[p.ID])
			if !ok {
				break
			}
			next, err := palace.SwapCard(state, p.ID, swap.HandIdx, swap.ChanceIdx)
			if err != nil {
				break
			}
			state = next
		}
	}
	return state
}

func (s *Session) humanCards(cardIDs []int) ([]deck.Card, error) {
	p := s.state.Players[humanSeat]
	zones := [][]deck.Card{p.Hand, p.LastChance}

	cards := []deck.Card{}
	for _, id := range cardIDs {
		found := false
		for _, zone := range zones {
			for _, c := range zone {
				if c.ID == id {
					cards = append(cards, c)
					found = true
					break
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("card %d is not yours to play", id)
		}
	}
	return cards, nil
}

// outbound builds the human's view of the game: own zones in full,
// opponents reduced to their public face
func (s *Session) outbound(cmd protocol.Cmd) protocol.OutboundMessage {
	human := s.state.Players[humanSeat]

	opponents := []protocol.Opponent{}
	for _, p := range s.state.Players[1:] {
		opponents = append(opponents, protocol.Opponent{
			Seat:       p.ID,
			Name:       p.Name,
			HandSize:   len(p.Hand),
			LastChance: p.LastChance,
			LastStand:  len(p.LastStand),
			CardsEaten: p.CardsEaten,
		})
	}

	return protocol.OutboundMessage{
		Command:     cmd,
		Stage:       s.state.Stage.String(),
		Hand:        human.Hand,
		LastChance:  human.LastChance,
		LastStand:   len(human.LastStand),
		Pile:        s.state.MPA,
		DeckSize:    len(s.state.Deck),
		BinSize:     len(s.state.Bin),
		CurrentSeat: s.state.CurrentPlayerID,
		TurnCount:   s.state.TurnCount,
		Opponents:   opponents,
		Winner:      s.state.Winner,
	}
}
