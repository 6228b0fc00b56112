package palace

import (
	"errors"
	"time"

	"github.com/palacegame/palace/deck"
)

// Stage represents the main stages in the game
type Stage int

const (
	StageSetup Stage = iota
	StageSwap
	StagePlay
	StageGameOver
)

var stageNames = []string{"setup", "swap", "play", "gameOver"}

func (s Stage) String() string {
	return stageNames[s]
}

// DealStep sequences the setup stage so a driver can step through the deal
// one visual phase at a time. It is tracked separately from Stage.
type DealStep int

const (
	DealShuffle DealStep = iota
	DealLastStand
	DealLastChance
	DealHands
	DealDone
)

var (
	ErrTooFewPlayers   = errors.New("minimum of 1 player required")
	ErrTooManyPlayers  = errors.New("maximum of 4 players allowed")
	ErrWrongStage      = errors.New("action not allowed in the current stage")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrInvalidPlay     = errors.New("invalid play")
	ErrInvalidBid      = errors.New("invalid opening bid")
	ErrMustPlayInstead = errors.New("a legal play exists")
	ErrBadSlot         = errors.New("card slot out of range")
	ErrDealComplete    = errors.New("dealing has already finished")
)

// GameState is the aggregate state of one game. Transitions never mutate a
// GameState in place: every operation returns a fresh value built from the
// previous one plus an intent.
type GameState struct {
	Players         []Player    `json:"players"`
	Deck            deck.Deck   `json:"deck"`
	MPA             []deck.Card `json:"mpa"` // main play area; last card is the target
	Bin             []deck.Card `json:"bin"`
	CurrentPlayerID int         `json:"currentPlayerId"`
	TurnDirection   int         `json:"turnDirection"`
	TurnCount       int         `json:"turnCount"`
	Stage           Stage       `json:"stage"`
	DealStep        DealStep    `json:"dealStep"`
	Winner          *int        `json:"winner"`
	GameStartTime   time.Time   `json:"gameStartTime"`
}

// InitializeGame builds a fresh game: a deterministic unshuffled 52-card
// deck, one player per name with the human in seat 0, all zones empty.
func InitializeGame(names []string) (GameState, error) {
	if len(names) < minPlayers {
		return GameState{}, ErrTooFewPlayers
	}
	if len(names) > maxPlayers {
		return GameState{}, ErrTooManyPlayers
	}

	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{
			ID:         i,
			Name:       name,
			IsAI:       i != 0,
			Hand:       []deck.Card{},
			LastChance: []deck.Card{},
			LastStand:  []deck.Card{},
		}
	}

	return GameState{
		Players:       players,
		Deck:          deck.New(),
		MPA:           []deck.Card{},
		Bin:           []deck.Card{},
		TurnDirection: 1,
		Stage:         StageSetup,
		DealStep:      DealShuffle,
		GameStartTime: time.Now(),
	}, nil
}

// IsPlayerTurn reports whether the human (seat 0) is the current player
func (s GameState) IsPlayerTurn() bool {
	return s.CurrentPlayerID == 0
}

// TargetCard returns a copy of the top of the pile, or nil if the pile is
// empty
func (s GameState) TargetCard() *deck.Card {
	if len(s.MPA) == 0 {
		return nil
	}
	top := s.MPA[len(s.MPA)-1]
	return &top
}

// Clone returns a deep copy of the state. Transitions clone before mutating
// so a caller's snapshot never aliases the state they produce.
func (s GameState) Clone() GameState {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	c.Deck = append(deck.Deck{}, s.Deck...)
	c.MPA = append([]deck.Card{}, s.MPA...)
	c.Bin = append([]deck.Card{}, s.Bin...)
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return c
}

func (s GameState) player(id int) (Player, bool) {
	if id < 0 || id >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[id], true
}

// AdvanceDeal performs the next deal step: shuffle, then three cards face
// down to each last stand, three face up to each last chance, three to each
// hand. The final step enters the swap stage.
func AdvanceDeal(s GameState) (GameState, error) {
	if s.Stage != StageSetup {
		return s, ErrWrongStage
	}

	next := s.Clone()

	switch next.DealStep {
	case DealShuffle:
		next.Deck = deck.Shuffled(next.Deck)

	case DealLastStand:
		for i := range next.Players {
			next.Players[i].LastStand = next.Deck.Deal(reserveSize)
		}

	case DealLastChance:
		for i := range next.Players {
			next.Players[i].LastChance = next.Deck.Deal(reserveSize)
		}

	case DealHands:
		for i := range next.Players {
			next.Players[i].Hand = next.Deck.Deal(handSize)
			next.Players[i].sortHand()
		}
		next.Stage = StageSwap

	case DealDone:
		return s, ErrDealComplete
	}

	next.DealStep++
	return next, nil
}

// SwapCard exchanges a hand card with a last chance card during the swap
// stage. The last chance slot keeps its position; the hand is resorted.
func SwapCard(s GameState, playerID, handIdx, chanceIdx int) (GameState, error) {
	if s.Stage != StageSwap {
		return s, ErrWrongStage
	}
	p, ok := s.player(playerID)
	if !ok {
		return s, ErrUnknownPlayer
	}
	if handIdx < 0 || handIdx >= len(p.Hand) || chanceIdx < 0 || chanceIdx >= len(p.LastChance) {
		return s, ErrBadSlot
	}

	next := s.Clone()
	np := &next.Players[playerID]
	np.Hand[handIdx], np.LastChance[chanceIdx] = np.LastChance[chanceIdx], np.Hand[handIdx]
	np.sortHand()
	return next, nil
}

// OpeningBid is one player's revealed candidate for the right to play first
type OpeningBid struct {
	PlayerID int
	Cards    []deck.Card
}

// ResolveOpeningBid ends the swap stage: every player reveals a candidate
// from their hand (Twos and Tens open only from an all-interrupt hand) and
// the lowest value wins.
// The winning cards move onto the pile, the winner's hand is refilled, and
// the winner becomes the current player, leading the first true turn.
func ResolveOpeningBid(s GameState, bids []OpeningBid) (GameState, error) {
	if s.Stage != StageSwap {
		return s, ErrWrongStage
	}
	if len(bids) != len(s.Players) {
		return s, ErrInvalidBid
	}

	winnerIdx := -1
	for i, bid := range bids {
		p, ok := s.player(bid.PlayerID)
		if !ok {
			return s, ErrUnknownPlayer
		}
		if !validOpeningBid(bid.Cards, p.Hand) {
			return s, ErrInvalidBid
		}
		if zone, ok := p.zoneOf(bid.Cards); !ok || zone != ZoneHand {
			return s, ErrInvalidBid
		}
		if winnerIdx == -1 || cardValues[bid.Cards[0].Rank] < cardValues[bids[winnerIdx].Cards[0].Rank] {
			winnerIdx = i
		}
	}

	winner := bids[winnerIdx]

	next := s.Clone()
	np := &next.Players[winner.PlayerID]
	hand, ok := removeCards(np.Hand, winner.Cards)
	if !ok {
		return s, ErrInvalidBid
	}
	np.Hand = hand
	next.MPA = append(next.MPA, winner.Cards...)
	next.refillHand(winner.PlayerID)
	next.CurrentPlayerID = winner.PlayerID
	next.Stage = StagePlay
	return next, nil
}

// PlayCards plays a same-rank set from the current player's hand or last
// chance onto the pile, then resolves the turn: four-of-a-kind and Ten
// clears, the win check, hand refill and turn advancement all happen within
// this single transition.
func PlayCards(s GameState, playerID int, cards []deck.Card) (GameState, error) {
	if s.Stage != StagePlay {
		return s, ErrWrongStage
	}
	if playerID != s.CurrentPlayerID {
		return s, ErrNotYourTurn
	}
	p, ok := s.player(playerID)
	if !ok {
		return s, ErrUnknownPlayer
	}
	if !IsValidPlay(cards, s.TargetCard(), p) {
		return s, ErrInvalidPlay
	}

	zone, _ := p.zoneOf(cards)
	if zone == ZoneLastStand {
		// last stand cards are played blind, one at a time
		return s, ErrInvalidPlay
	}

	next := s.Clone()
	np := &next.Players[playerID]
	if zone == ZoneHand {
		hand, ok := removeCards(np.Hand, cards)
		if !ok {
			// duplicate ids in cards match the same zone card twice
			return s, ErrInvalidPlay
		}
		np.Hand = hand
	} else {
		chance, ok := removeCards(np.LastChance, cards)
		if !ok {
			return s, ErrInvalidPlay
		}
		np.LastChance = chance
	}
	next.MPA = append(next.MPA, cards...)

	next.resolveTurn(playerID, cards[0].Rank, zone == ZoneHand)
	return next, nil
}

// PlayLastStand plays the card in the given last stand slot blind. If the
// card fails against the target the player busts: the card and the whole
// pile are eaten. Either way the card leaves the last stand.
func PlayLastStand(s GameState, playerID, idx int) (GameState, error) {
	if s.Stage != StagePlay {
		return s, ErrWrongStage
	}
	if playerID != s.CurrentPlayerID {
		return s, ErrNotYourTurn
	}
	p, ok := s.player(playerID)
	if !ok {
		return s, ErrUnknownPlayer
	}
	if len(p.Hand) > 0 || len(p.LastChance) > 0 {
		return s, ErrInvalidPlay
	}
	if idx < 0 || idx >= len(p.LastStand) {
		return s, ErrBadSlot
	}

	next := s.Clone()
	np := &next.Players[playerID]
	card := np.LastStand[idx]
	np.LastStand = append(np.LastStand[:idx], np.LastStand[idx+1:]...)

	if !beatsTarget(card, next.TargetCard()) {
		// bust: the failed card and the pile are eaten
		np.Hand = append(np.Hand, next.MPA...)
		np.Hand = append(np.Hand, card)
		np.sortHand()
		np.CardsEaten += len(next.MPA) + 1
		next.MPA = []deck.Card{}
		next.TurnCount++
		next.advanceTurn()
		return next, nil
	}

	next.MPA = append(next.MPA, card)
	next.resolveTurn(playerID, card.Rank, false)
	return next, nil
}

// EatPile transfers the whole pile into the current player's hand. It is
// only legal when no valid play exists, and it always ends the turn.
func EatPile(s GameState, playerID int) (GameState, error) {
	if s.Stage != StagePlay {
		return s, ErrWrongStage
	}
	if playerID != s.CurrentPlayerID {
		return s, ErrNotYourTurn
	}
	p, ok := s.player(playerID)
	if !ok {
		return s, ErrUnknownPlayer
	}
	if PlayerHasValidMove(p, s.TargetCard()) {
		return s, ErrMustPlayInstead
	}

	next := s.Clone()
	np := &next.Players[playerID]
	np.Hand = append(np.Hand, next.MPA...)
	np.sortHand()
	np.CardsEaten += len(next.MPA)
	next.MPA = []deck.Card{}
	next.TurnCount++
	next.advanceTurn()
	return next, nil
}

// resolveTurn applies the post-play outcomes in precedence order: a
// four-of-a-kind on top of the pile clears it and grants an extra turn; a
// Ten clears and grants an extra turn (never doubled with the former); a
// Two only becomes the new target. The win check runs before any extra
// turn is honoured.
func (s *GameState) resolveTurn(playerID int, played deck.Rank, fromHand bool) {
	extraTurn := false
	cleared := false

	if isFourOfAKind(s.MPA) {
		s.clearPile()
		extraTurn, cleared = true, true
	} else if played == deck.Ten {
		s.clearPile()
		extraTurn, cleared = true, true
	}

	if fromHand {
		s.refillAfterPlay(playerID, cleared)
	}

	s.TurnCount++

	if !s.Players[playerID].HasCards() {
		s.Stage = StageGameOver
		winner := playerID
		s.Winner = &winner
		return
	}

	if !extraTurn {
		s.advanceTurn()
	}
}

func (s *GameState) clearPile() {
	s.Bin = append(s.Bin, s.MPA...)
	s.MPA = []deck.Card{}
}

// refillAfterPlay draws the hand back up to three after a hand play. The
// draw is deferred when the play cleared the pile, unless deferring would
// leave the hand empty: an empty hand must refill immediately because hand
// emptiness unlocks the last chance zone.
func (s *GameState) refillAfterPlay(playerID int, cleared bool) {
	if cleared && len(s.Players[playerID].Hand) > 0 {
		return
	}
	s.refillHand(playerID)
}

func (s *GameState) refillHand(playerID int) {
	p := &s.Players[playerID]
	if len(p.Hand) >= handSize || len(s.Deck) == 0 {
		return
	}
	p.Hand = append(p.Hand, s.Deck.Deal(handSize-len(p.Hand))...)
	p.sortHand()
}

func (s *GameState) advanceTurn() {
	n := len(s.Players)
	s.CurrentPlayerID = ((s.CurrentPlayerID+s.TurnDirection)%n + n) % n
}
