package seotda

import (
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable/seotda/betting"
)

type cardsEvent struct {
	Cards []*deck.Card `json:"cards"`
}

type phaseEvent struct {
	Phase           string `json:"phase"`
	Round           int    `json:"round,omitempty"`
	CurrentPlayerID int64  `json:"currentPlayerId,omitempty"`
}

type playerEvent struct {
	PlayerID int64 `json:"playerId"`
}

type cardRevealedEvent struct {
	PlayerID int64      `json:"playerId"`
	Card     *deck.Card `json:"card"`
}

type betEvent struct {
	PlayerID   int64          `json:"playerId"`
	Action     betting.Action `json:"action"`
	Amount     int            `json:"amount"`
	Pot        int            `json:"pot"`
	CurrentBet int            `json:"currentBet"`
}

type redealEvent struct {
	Reason string          `json:"reason"`
	Hands  []*RevealedHand `json:"hands"`
	Pot    int             `json:"pot"`
}

type abortedEvent struct {
	Reason string `json:"reason"`
}
