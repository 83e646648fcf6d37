package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"seotda-server/pkg/model"
	"seotda-server/pkg/room"
)

func TestRoomRoutes(t *testing.T) {
	ts := httptest.NewServer(NewMux("", room.DefaultOptions()))
	defer ts.Close()

	a := assert.New(t)
	host, hostToken := player(t)
	guest, guestToken := player(t)

	var rm model.Room
	assertPost(t, ts, "/room", postRoomPayload{Name: "Friday Night", BaseStake: 250}, &rm, 201, hostToken)
	a.Equal("Friday Night", rm.Name)
	a.Equal(250, rm.BaseStake)
	a.Equal(host.ID, rm.HostID)

	var errObj errorResponse
	assertPost(t, ts, "/room", postRoomPayload{Name: "ab"}, &errObj, 400, hostToken)
	a.Equal("name must be 3-40 characters", errObj.Message)
	assertPost(t, ts, "/room", postRoomPayload{BaseStake: -1}, &errObj, 400, hostToken)
	assertPost(t, ts, "/room", "{", &errObj, 400, hostToken)

	var random model.Room
	assertPost(t, ts, "/room", postRoomPayload{}, &random, 201, hostToken)
	a.NotEmpty(random.Name)
	a.Equal(100, random.BaseStake)

	var seat model.Seat
	assertPost(t, ts, "/room/"+rm.UUID+"/seat", nil, &seat, 201, guestToken)
	a.Equal(guest.ID, seat.PlayerID)
	a.Equal(1, seat.Seat)

	assertPost(t, ts, "/room/"+rm.UUID+"/seat", nil, &errObj, 400, guestToken)
	a.Equal("player is already seated", errObj.Message)

	var resp getRoomUUIDResponse
	assertGet(t, ts, "/room/"+rm.UUID, &resp, 200, guestToken)
	a.Equal(rm.UUID, resp.UUID)
	a.Len(resp.Seats, 2)
	a.False(resp.InProgress)

	assertGet(t, ts, "/room/00000000-0000-0000-0000-000000000000", &errObj, 404, guestToken)
}

func TestRoomRoutes_full(t *testing.T) {
	ts := httptest.NewServer(NewMux("", room.DefaultOptions()))
	defer ts.Close()

	_, hostToken := player(t)
	var rm model.Room
	assertPost(t, ts, "/room", postRoomPayload{Name: "Full House"}, &rm, 201, hostToken)

	for i := 1; i < model.MaxSeats; i++ {
		_, token := player(t)
		assertPost(t, ts, "/room/"+rm.UUID+"/seat", nil, nil, 201, token)
	}

	_, token := player(t)
	var errObj errorResponse
	assertPost(t, ts, "/room/"+rm.UUID+"/seat", nil, &errObj, 400, token)
	assert.Equal(t, model.ErrRoomFull.Error(), errObj.Message)
}
