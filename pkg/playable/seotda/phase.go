package seotda

import "seotda-server/pkg/deck"

// Phase is the current phase of the game and the data that only exists in that phase
type Phase interface {
	Name() string
	isPhase()
}

// InitialPhase is when every player picks one of their two cards to show the table
type InitialPhase struct{}

// BettingPhase is one of the two betting rounds
type BettingPhase struct {
	Round      int
	FirstActor int64
}

// ShowdownPhase is when the players choose two of their three cards
type ShowdownPhase struct {
	Selections map[int64][]*deck.Card
}

// FinishedPhase is a game that has a winner
type FinishedPhase struct {
	Settlement *Settlement
}

// AbortedPhase is a game that ended without a winner. Every contribution is refunded
type AbortedPhase struct {
	Reason  string
	Refunds map[int64]int
}

// Name returns "initial"
func (*InitialPhase) Name() string { return "initial" }

// Name returns "betting"
func (*BettingPhase) Name() string { return "betting" }

// Name returns "showdown"
func (*ShowdownPhase) Name() string { return "showdown" }

// Name returns "finished"
func (*FinishedPhase) Name() string { return "finished" }

// Name returns "aborted"
func (*AbortedPhase) Name() string { return "aborted" }

func (*InitialPhase) isPhase()  {}
func (*BettingPhase) isPhase()  {}
func (*ShowdownPhase) isPhase() {}
func (*FinishedPhase) isPhase() {}
func (*AbortedPhase) isPhase()  {}
