package protocol

// Cmd represents a command exchanged between the driver and a client
type Cmd int

const (
	NewGame Cmd = iota
	DealStep
	SwapCard
	ConfirmSwap
	OpeningBid
	PlayHand
	PlayLastChance
	PlayLastStand
	EatPile
	Turn
	InvalidPlay
	GameOver
)

var cmdNames = []string{
	"NewGame",
	"DealStep",
	"SwapCard",
	"ConfirmSwap",
	"OpeningBid",
	"PlayHand",
	"PlayLastChance",
	"PlayLastStand",
	"EatPile",
	"Turn",
	"InvalidPlay",
	"GameOver",
}

func (c Cmd) String() string {
	return cmdNames[c]
}
