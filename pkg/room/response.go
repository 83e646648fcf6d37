package room

import (
	"errors"

	"seotda-server/pkg/model"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda"
)

type clientStatePlayer struct {
	*model.Seat
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
	IsHost      bool `json:"isHost"`
}

type clientState struct {
	Players     map[int64]*clientStatePlayer `json:"players"`
	PendingGame *pendingGame                 `json:"pendingGame"`
	InProgress  bool                         `json:"inProgress"`
}

// errors the player caused, safe to show as is
var userErrors = []error{
	seotda.ErrPlayerNotFound,
	seotda.ErrPlayerFolded,
	seotda.ErrGameIsOver,
	seotda.ErrWrongPhase,
	seotda.ErrNotYourTurn,
	seotda.ErrInvalidCard,
	seotda.ErrInvalidSelection,
	seotda.ErrAlreadySelected,
	seotda.ErrOpeningActionOnly,
	seotda.ErrInsufficientFunds,
	seotda.ErrUnknownAction,
	ErrNoActiveSession,
	ErrSessionExists,
}

func newErrorResponse(ctx string, err error) *playable.Response {
	msg := "an unexpected error occurred"

	var userErr model.UserError
	if errors.As(err, &userErr) {
		msg = userErr.Error()
	} else {
		for _, e := range userErrors {
			if errors.Is(err, e) {
				msg = err.Error()
				break
			}
		}
	}

	var countErr seotda.PlayerCountError
	var stakeErr seotda.StakeError
	if errors.As(err, &countErr) || errors.As(err, &stakeErr) {
		msg = err.Error()
	}

	return &playable.Response{
		Key:     "error",
		Value:   msg,
		Context: ctx,
	}
}
