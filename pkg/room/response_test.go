package room

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"seotda-server/pkg/model"
	"seotda-server/pkg/playable/seotda"
)

func Test_newErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user error", ErrNotHost, "only the host can do that"},
		{"model user error", model.ErrRoomFull, model.ErrRoomFull.Error()},
		{"game error", seotda.ErrNotYourTurn, "it is not your turn"},
		{"wrapped game error", fmt.Errorf("%w: shuffle", seotda.ErrUnknownAction), "unknown action: shuffle"},
		{"session error", ErrSessionExists, "a game is already in progress"},
		{"player count", seotda.PlayerCountError{Min: 2, Max: 6, Got: 1}, "expected 2–6 players, got 1"},
		{"stake", seotda.StakeError{PlayerID: 3, Err: seotda.ErrInsufficientFunds}, "could not collect the base stake from player 3: insufficient funds"},
		{"internal", errors.New("connection refused"), "an unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newErrorResponse("ctx", tt.err)
			assert.Equal(t, "error", resp.Key)
			assert.Equal(t, tt.want, resp.Value)
			assert.Equal(t, "ctx", resp.Context)
		})
	}
}

func Test_roomBank(t *testing.T) {
	p := player(t, 100)
	b := roomBank{&model.Bank{}}

	balance, err := b.ApplyDelta(cbg, p.ID, -50, "test")
	assert.NoError(t, err)
	assert.Equal(t, 50, balance)

	_, err = b.ApplyDelta(cbg, p.ID, -51, "test")
	assert.ErrorIs(t, err, seotda.ErrInsufficientFunds)
}
