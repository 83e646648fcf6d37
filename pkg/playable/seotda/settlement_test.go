package seotda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"seotda-server/pkg/playable/seotda/betting"
)

func TestSettle(t *testing.T) {
	a := assert.New(t)

	states := []*betting.State{
		{PlayerID: 1, Alive: true, TotalContributed: 400},
		{PlayerID: 2, Alive: false, TotalContributed: 100},
		{PlayerID: 3, Alive: true, TotalContributed: 400},
	}

	s, err := Settle(states, 3, 900, DefaultOptions())
	a.NoError(err)
	a.Equal(int64(3), s.WinnerID)
	a.Equal(map[int64]int{1: -400, 2: -100, 3: 500}, s.NetChanges)
	a.Equal(map[int64]int{1: 30, 2: 30, 3: 100}, s.Experience)

	sum := 0
	for _, change := range s.NetChanges {
		sum += change
	}
	a.Equal(0, sum)
}

func TestSettle_errors(t *testing.T) {
	states := []*betting.State{
		{PlayerID: 1, Alive: true, TotalContributed: 100},
		{PlayerID: 2, Alive: true, TotalContributed: 100},
	}

	s, err := Settle(states, 3, 200, DefaultOptions())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	s, err = Settle(states, 1, 250, DefaultOptions())
	assert.Nil(t, s)
	assert.EqualError(t, err, "pot of 250 does not match contributions of 200")
}
