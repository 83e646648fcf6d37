package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda"
)

func TestDealer_AddClient(t *testing.T) {
	d, host, guest := newTestDealer(t, DefaultOptions(), 1000)
	assert.Len(t, d.Clients(), 2)
	assert.Equal(t, d, host.dealer)

	assert.False(t, d.RemoveClient(host))
	assert.True(t, d.RemoveClient(guest))
}

func TestDealer_ready(t *testing.T) {
	a := assert.New(t)
	d, host, _ := newTestDealer(t, DefaultOptions(), 1000)

	a.NoError(d.handleMessage(cbg, host, message("ready", nil)))
	seat, err := host.player.GetSeat(cbg, d.room)
	a.NoError(err)
	a.True(seat.Ready)

	// toggles without an explicit value
	a.NoError(d.handleMessage(cbg, host, message("ready", nil)))
	seat, err = host.player.GetSeat(cbg, d.room)
	a.NoError(err)
	a.False(seat.Ready)

	responses := drain(host)
	a.True(hasKey(responses, "clientState"))
	a.True(hasKey(responses, "status"))

	spectator := NewClient(nil, player(t, 1000), d.room)
	d.AddClient(spectator)
	a.Equal(ErrNotSeated, d.handleMessage(cbg, spectator, message("ready", nil)))
}

func TestDealer_startGame(t *testing.T) {
	a := assert.New(t)
	d, host, guest := newTestDealer(t, DefaultOptions(), 1000)

	a.Equal(ErrPlayersNotReady, d.handleMessage(cbg, host, message("start-game", nil)))
	readyAll(t, d, host, guest)

	a.Equal(ErrNotHost, d.handleMessage(cbg, guest, message("start-game", nil)))
	a.NoError(d.handleMessage(cbg, host, message("start-game", nil)))
	a.Equal(1, d.registry.Len())

	a.Equal(900, reload(t, host).Balance)
	a.Equal(900, reload(t, guest).Balance)

	a.Equal(ErrSessionExists, d.handleMessage(cbg, host, message("start-game", nil)))

	responses := drain(guest)
	a.True(hasKey(responses, "game"))
	a.True(hasKey(responses, "logs"))

	state := gameState(t, d, guest.player.ID)
	a.Len(state.Hand, 2)
	a.Equal(200, state.GameState.Pot)
}

func TestDealer_startGame_notEnoughPlayers(t *testing.T) {
	hostPlayer := player(t, 1000)
	r, err := hostPlayer.CreateRoom(cbg, "lonely room", 100)
	require.NoError(t, err)

	d := NewDealer(NewPitBoss(NewRegistry(), DefaultOptions()), r)
	defer d.ticker.Stop()

	host := NewClient(nil, hostPlayer, r)
	d.AddClient(host)
	readyAll(t, d, host)

	assert.Equal(t, ErrNotEnoughPlayers, d.handleMessage(cbg, host, message("start-game", nil)))
	assert.Equal(t, 0, d.registry.Len())
}

func TestDealer_startGame_insufficientFunds(t *testing.T) {
	a := assert.New(t)
	d, host, guest := newTestDealer(t, DefaultOptions(), 50)
	readyAll(t, d, host, guest)

	err := d.handleMessage(cbg, host, message("start-game", nil))
	var stakeErr seotda.StakeError
	a.ErrorAs(err, &stakeErr)
	a.Equal(guest.player.ID, stakeErr.PlayerID)
	a.ErrorIs(err, seotda.ErrInsufficientFunds)
	a.Equal(0, d.registry.Len())

	// the stake already taken from the host is returned
	a.Equal(1000, reload(t, host).Balance)
	a.Equal(50, reload(t, guest).Balance)
}

func TestDealer_playToFinish(t *testing.T) {
	a := assert.New(t)
	d, host, guest := newTestDealer(t, DefaultOptions(), 1000)
	readyAll(t, d, host, guest)
	require.NoError(t, d.handleMessage(cbg, host, message("start-game", nil)))

	for _, c := range []*Client{host, guest} {
		state := gameState(t, d, c.player.ID)
		require.NoError(t, d.handleMessage(cbg, c, &playable.PayloadIn{
			Action: "select-reveal-card",
			Cards:  state.Hand[:1],
		}))
	}

	state := gameState(t, d, host.player.ID)
	a.Equal("betting", state.GameState.Phase)

	folder, winner := host, guest
	if state.GameState.CurrentPlayerID == guest.player.ID {
		folder, winner = guest, host
	}

	a.ErrorIs(d.handleMessage(cbg, winner, &playable.PayloadIn{Action: "betting-action", Subject: "fold"}), seotda.ErrNotYourTurn)
	drain(winner)

	require.NoError(t, d.handleMessage(cbg, folder, &playable.PayloadIn{Action: "betting-action", Subject: "fold"}))
	a.Equal(0, d.registry.Len())

	w := reload(t, winner)
	a.Equal(1100, w.Balance)
	a.Equal(1, w.GamesPlayed)
	a.Equal(1, w.Wins)
	a.Equal(100, w.Experience)

	l := reload(t, folder)
	a.Equal(900, l.Balance)
	a.Equal(1, l.GamesPlayed)
	a.Equal(0, l.Wins)
	a.Equal(30, l.Experience)

	responses := drain(winner)
	a.True(hasKey(responses, "gameEnded"))
	a.True(hasKey(responses, "event"))

	seats, err := d.room.GetSeats(cbg)
	a.NoError(err)
	for _, seat := range seats {
		a.False(seat.Ready)
	}

	a.Equal(ErrNoActiveSession, d.handleMessage(cbg, host, &playable.PayloadIn{Action: "betting-action", Subject: "call"}))
}

func TestDealer_terminateGame(t *testing.T) {
	a := assert.New(t)
	d, host, guest := newTestDealer(t, DefaultOptions(), 1000)

	a.Equal(ErrNoActiveSession, d.handleMessage(cbg, host, message("terminate-game", nil)))

	readyAll(t, d, host, guest)
	require.NoError(t, d.handleMessage(cbg, host, message("start-game", nil)))

	a.Equal(ErrNotHost, d.handleMessage(cbg, guest, message("terminate-game", nil)))
	a.NoError(d.handleMessage(cbg, host, message("terminate-game", nil)))
	a.Equal(0, d.registry.Len())

	for _, c := range []*Client{host, guest} {
		p := reload(t, c)
		a.Equal(1000, p.Balance)
		a.Equal(0, p.GamesPlayed)
		a.True(hasKey(drain(c), "gameEnded"))
	}
}

func TestDealer_pendingGame(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.StartGameDelay = time.Hour
	d, host, guest := newTestDealer(t, opts, 1000)
	readyAll(t, d, host, guest)

	a.NoError(d.handleMessage(cbg, host, message("start-game", nil)))
	a.NotNil(d.pendingGame)
	a.Equal(host.player.ID, d.pendingGame.PlayerID)
	a.Equal(0, d.registry.Len())
	a.Equal(ErrGamePending, d.handleMessage(cbg, host, message("start-game", nil)))

	// a player backing out cancels the countdown
	a.NoError(d.handleMessage(cbg, guest, message("ready", playable.AdditionalData{"ready": false})))
	a.Nil(d.pendingGame)

	readyAll(t, d, guest)
	a.NoError(d.handleMessage(cbg, host, message("start-game", nil)))
	a.NoError(d.handleMessage(cbg, host, message("terminate-game", nil)))
	a.Nil(d.pendingGame)

	a.NoError(d.handleMessage(cbg, host, message("start-game", nil)))
	d.startPendingGame()
	a.Nil(d.pendingGame)
	a.Equal(1, d.registry.Len())
}

func TestDealer_startPendingGame_notReady(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.StartGameDelay = time.Hour
	d, host, guest := newTestDealer(t, opts, 1000)
	readyAll(t, d, host, guest)

	a.NoError(d.handleMessage(cbg, host, message("start-game", nil)))
	a.NoError(d.room.ResetReady(cbg))
	drain(host)

	d.startPendingGame()
	a.Equal(0, d.registry.Len())

	responses := drain(host)
	a.True(hasKey(responses, "error"))
	for _, r := range responses {
		if r.Key == "error" {
			a.Equal(ErrPlayersNotReady.Error(), r.Value)
			a.Equal("ctx-start-game", r.Context)
		}
	}
}

func TestDealer_tick(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.TurnTimeout = time.Nanosecond
	d, host, guest := newTestDealer(t, opts, 1000)
	readyAll(t, d, host, guest)
	require.NoError(t, d.handleMessage(cbg, host, message("start-game", nil)))

	// nobody picked a card to show, so both are revealed for them
	time.Sleep(time.Millisecond)
	d.tick()

	state := gameState(t, d, host.player.ID)
	a.Equal("betting", state.GameState.Phase)
	for _, p := range state.GameState.Participants {
		a.NotNil(p.RevealedCard)
	}
}

func TestDealer_unknownAction(t *testing.T) {
	d, host, guest := newTestDealer(t, DefaultOptions(), 1000)
	readyAll(t, d, host, guest)
	require.NoError(t, d.handleMessage(cbg, host, message("start-game", nil)))

	assert.ErrorIs(t, d.handleMessage(cbg, host, message("shuffle", nil)), seotda.ErrUnknownAction)
}
