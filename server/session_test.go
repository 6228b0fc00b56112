package server

import (
	"testing"

	"github.com/palacegame/palace"
	"github.com/palacegame/palace/bot"
	"github.com/palacegame/palace/deck"
	utils "github.com/palacegame/palace/internal"
	"github.com/palacegame/palace/protocol"
	"github.com/stretchr/testify/assert"
)

// craftedSession wraps a hand-built game state so intent handling can be
// tested deterministically.
func craftedSession(state palace.GameState) *Session {
	return &Session{id: "test-game", state: state, difficulty: bot.Easy}
}

func playStageState(players []palace.Player, pile []deck.Card) palace.GameState {
	if pile == nil {
		pile = []deck.Card{}
	}
	return palace.GameState{
		Players:       players,
		Deck:          deck.Deck{},
		MPA:           pile,
		Bin:           []deck.Card{},
		TurnDirection: 1,
		Stage:         palace.StagePlay,
	}
}

func seat(id int, isAI bool, hand ...deck.Card) palace.Player {
	if hand == nil {
		hand = []deck.Card{}
	}
	return palace.Player{
		ID:         id,
		IsAI:       isAI,
		Hand:       hand,
		LastChance: []deck.Card{},
		LastStand:  []deck.Card{},
	}
}

func TestSessionDealFlow(t *testing.T) {
	session, err := NewSession("test-game", []string{"You", "North"}, bot.Easy)
	utils.AssertNoError(t, err)

	var out protocol.OutboundMessage
	for i := 0; i < 4; i++ {
		out, err = session.HandleIntent(protocol.InboundMessage{Command: protocol.DealStep})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, out.Command, protocol.Turn)
	}

	utils.AssertEqual(t, out.Stage, "swap")
	utils.AssertEqual(t, len(out.Hand), 3)
	utils.AssertEqual(t, len(out.LastChance), 3)
	utils.AssertEqual(t, out.LastStand, 3)
	utils.AssertEqual(t, out.DeckSize, 52-2*9)

	t.Run("opponents show only their public face", func(t *testing.T) {
		utils.AssertEqual(t, len(out.Opponents), 1)
		opp := out.Opponents[0]
		utils.AssertEqual(t, opp.Seat, 1)
		utils.AssertEqual(t, opp.HandSize, 3)
		utils.AssertEqual(t, len(opp.LastChance), 3)
		utils.AssertEqual(t, opp.LastStand, 3)
	})
}

func TestSessionRejections(t *testing.T) {
	t.Run("rule rejections come back as InvalidPlay", func(t *testing.T) {
		session, err := NewSession("test-game", []string{"You", "North"}, bot.Easy)
		utils.AssertNoError(t, err)

		out, err := session.HandleIntent(protocol.InboundMessage{Command: protocol.EatPile})
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, out.Command, protocol.InvalidPlay)
		assert.NotEmpty(t, out.Error)

		t.Log("And the state is untouched")
		utils.AssertEqual(t, session.State().Stage, palace.StageSetup)
	})

	t.Run("unknown commands are an error", func(t *testing.T) {
		session, err := NewSession("test-game", []string{"You", "North"}, bot.Easy)
		utils.AssertNoError(t, err)

		_, err = session.HandleIntent(protocol.InboundMessage{Command: protocol.NewGame})
		utils.AssertErrored(t, err)
	})

	t.Run("cards the human does not hold are rejected", func(t *testing.T) {
		nine := deck.NewCard(deck.Nine, deck.Hearts)
		session := craftedSession(playStageState(
			[]palace.Player{seat(0, false, nine), seat(1, true, deck.NewCard(deck.King, deck.Hearts))},
			nil,
		))

		stray := deck.NewCard(deck.Ace, deck.Spades)
		out, err := session.HandleIntent(protocol.InboundMessage{
			Command: protocol.PlayHand,
			CardIDs: []int{stray.ID},
		})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, out.Command, protocol.InvalidPlay)
	})
}

func TestSessionConfirmSwap(t *testing.T) {
	three := deck.NewCard(deck.Three, deck.Diamonds)
	state := playStageState(
		[]palace.Player{
			seat(0, false, three, deck.NewCard(deck.Jack, deck.Hearts)),
			seat(1, true, deck.NewCard(deck.Five, deck.Clubs), deck.NewCard(deck.King, deck.Spades)),
		},
		nil,
	)
	state.Stage = palace.StageSwap
	session := craftedSession(state)

	out, err := session.HandleIntent(protocol.InboundMessage{
		Command: protocol.ConfirmSwap,
		CardIDs: []int{three.ID},
	})
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, out.Command, protocol.Turn)
	utils.AssertEqual(t, out.Stage, "play")

	t.Log("The human's three won the bid and leads")
	utils.AssertEqual(t, out.CurrentSeat, 0)
	utils.AssertEqual(t, len(out.Pile), 1)
	utils.AssertEqual(t, out.Pile[0], three)
}

func TestSessionConfirmSwapAllInterruptSeat(t *testing.T) {
	three := deck.NewCard(deck.Three, deck.Diamonds)
	state := playStageState(
		[]palace.Player{
			seat(0, false, three, deck.NewCard(deck.Jack, deck.Hearts)),
			seat(1, true, deck.NewCard(deck.Two, deck.Clubs), deck.NewCard(deck.Ten, deck.Hearts)),
		},
		nil,
	)
	state.Stage = palace.StageSwap
	session := craftedSession(state)

	out, err := session.HandleIntent(protocol.InboundMessage{
		Command: protocol.ConfirmSwap,
		CardIDs: []int{three.ID},
	})
	utils.AssertNoError(t, err)

	t.Log("The AI's two opens despite being an interrupt, and wins")
	utils.AssertEqual(t, out.Command, protocol.Turn)
	utils.AssertEqual(t, out.Stage, "play")
	utils.AssertEqual(t, out.CurrentSeat, 1)
	utils.AssertEqual(t, out.Pile[0].Rank, deck.Two)
}

func TestSessionStateSnapshot(t *testing.T) {
	four := deck.NewCard(deck.Four, deck.Clubs)
	session := craftedSession(playStageState(
		[]palace.Player{
			seat(0, false, four),
			seat(1, true, deck.NewCard(deck.King, deck.Hearts)),
		},
		[]deck.Card{deck.NewCard(deck.Nine, deck.Diamonds)},
	))

	snap := session.State()
	snap.Players[0].Hand[0] = deck.NewCard(deck.Ace, deck.Spades)
	snap.MPA[0] = deck.NewCard(deck.Queen, deck.Hearts)

	t.Log("Mutating the snapshot never touches the live game")
	live := session.State()
	utils.AssertEqual(t, live.Players[0].Hand[0], four)
	utils.AssertEqual(t, live.MPA[0].Rank, deck.Nine)
}

func TestSessionPlayHand(t *testing.T) {
	nine := deck.NewCard(deck.Nine, deck.Hearts)
	session := craftedSession(playStageState(
		[]palace.Player{
			seat(0, false, nine, deck.NewCard(deck.Four, deck.Clubs)),
			seat(1, true, deck.NewCard(deck.King, deck.Hearts)),
		},
		[]deck.Card{deck.NewCard(deck.Five, deck.Diamonds)},
	))

	out, err := session.HandleIntent(protocol.InboundMessage{
		Command: protocol.PlayHand,
		CardIDs: []int{nine.ID},
	})
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, out.Command, protocol.Turn)
	utils.AssertEqual(t, out.Pile[len(out.Pile)-1], nine)
	utils.AssertEqual(t, out.CurrentSeat, 1)
	utils.AssertTrue(t, session.PendingAITurn())
}

func TestStepAITurn(t *testing.T) {
	t.Run("plays a legal card", func(t *testing.T) {
		king := deck.NewCard(deck.King, deck.Hearts)
		state := playStageState(
			[]palace.Player{
				seat(0, false, deck.NewCard(deck.Four, deck.Clubs)),
				seat(1, true, king, deck.NewCard(deck.Six, deck.Spades)),
			},
			[]deck.Card{deck.NewCard(deck.Nine, deck.Diamonds)},
		)
		state.CurrentPlayerID = 1
		session := craftedSession(state)

		utils.AssertTrue(t, session.PendingAITurn())

		out, err := session.StepAITurn()
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, out.Command, protocol.Turn)
		utils.AssertEqual(t, out.Pile[len(out.Pile)-1], king)
		utils.AssertEqual(t, out.CurrentSeat, 0)
		utils.AssertEqual(t, session.PendingAITurn(), false)
	})

	t.Run("eats when no legal play exists", func(t *testing.T) {
		state := playStageState(
			[]palace.Player{
				seat(0, false, deck.NewCard(deck.Four, deck.Clubs)),
				seat(1, true, deck.NewCard(deck.Six, deck.Spades)),
			},
			[]deck.Card{deck.NewCard(deck.Queen, deck.Diamonds)},
		)
		state.CurrentPlayerID = 1
		session := craftedSession(state)

		out, err := session.StepAITurn()
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, len(out.Pile), 0)
		utils.AssertEqual(t, out.Opponents[0].HandSize, 2)
		utils.AssertEqual(t, out.Opponents[0].CardsEaten, 1)
	})

	t.Run("flips a last stand card blind", func(t *testing.T) {
		king := deck.NewCard(deck.King, deck.Spades)
		ai := palace.Player{
			ID:         1,
			IsAI:       true,
			Hand:       []deck.Card{},
			LastChance: []deck.Card{},
			LastStand:  []deck.Card{king, deck.NewCard(deck.Four, deck.Hearts)},
		}
		state := playStageState(
			[]palace.Player{seat(0, false, deck.NewCard(deck.Four, deck.Clubs)), ai},
			[]deck.Card{deck.NewCard(deck.Nine, deck.Diamonds)},
		)
		state.CurrentPlayerID = 1
		session := craftedSession(state)

		out, err := session.StepAITurn()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, out.Pile[len(out.Pile)-1], king)
	})

	t.Run("errors when it is the human's turn", func(t *testing.T) {
		session := craftedSession(playStageState(
			[]palace.Player{
				seat(0, false, deck.NewCard(deck.Four, deck.Clubs)),
				seat(1, true, deck.NewCard(deck.Six, deck.Spades)),
			},
			nil,
		))

		_, err := session.StepAITurn()
		utils.AssertErrored(t, err)
	})

	t.Run("reports the win", func(t *testing.T) {
		king := deck.NewCard(deck.King, deck.Hearts)
		state := playStageState(
			[]palace.Player{
				seat(0, false, deck.NewCard(deck.Four, deck.Clubs)),
				seat(1, true, king),
			},
			[]deck.Card{deck.NewCard(deck.Nine, deck.Diamonds)},
		)
		state.CurrentPlayerID = 1
		session := craftedSession(state)

		out, err := session.StepAITurn()
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, out.Command, protocol.GameOver)
		assert.NotNil(t, out.Winner)
		utils.AssertEqual(t, *out.Winner, 1)
	})
}
