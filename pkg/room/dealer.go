package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/pkg/model"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda"
)

const defaultTickInterval = time.Second

// lobby errors
var (
	ErrNotHost          = model.UserError("only the host can do that")
	ErrNotSeated        = model.UserError("you are not seated in this room")
	ErrNotEnoughPlayers = model.UserError("at least two seated players are needed")
	ErrPlayersNotReady  = model.UserError("every seated player must be ready")
	ErrGamePending      = model.UserError("a game is about to start")
)

// Options configure the games a dealer runs
type Options struct {
	// StartGameDelay is the countdown before a started game is dealt. Zero deals immediately
	StartGameDelay time.Duration
	TurnTimeout    time.Duration
	WinnerExp      int
	LoserExp       int
	ExpPerLevel    int
}

// DefaultOptions returns the default dealer options
func DefaultOptions() Options {
	return Options{
		WinnerExp:   100,
		LoserExp:    30,
		ExpPerLevel: 1000,
	}
}

// Dealer runs a single room
// Every change to the room and its game happens in the run loop, one at a time
type Dealer struct {
	pitBoss  *PitBoss
	registry *Registry
	options  Options
	room     *model.Room
	bank     *model.Bank
	clients  map[*Client]bool
	lock     sync.RWMutex
	log      logrus.FieldLogger

	logMessages []*playable.LogMessage
	pendingGame *pendingGame
	ticker      *time.Ticker

	execInRunLoop  chan func()
	clientsChanged chan bool
	close          chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, room *model.Room) *Dealer {
	return &Dealer{
		pitBoss:        pitBoss,
		registry:       pitBoss.registry,
		options:        pitBoss.options,
		room:           room,
		bank:           &model.Bank{RoomUUID: room.UUID},
		clients:        make(map[*Client]bool),
		ticker:         time.NewTicker(defaultTickInterval),
		log:            logrus.WithFields(logrus.Fields{"room": room.UUID, "name": room.Name}),
		execInRunLoop:  make(chan func(), 256),
		clientsChanged: make(chan bool, 256),
		close:          make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")

	defer d.ticker.Stop()

	for {
		var logChan <-chan []*playable.LogMessage
		if session, ok := d.session(); ok {
			logChan = session.LogChan()
		}

		var pendingStart <-chan time.Time
		if d.pendingGame != nil {
			pendingStart = d.pendingGame.timer.C
		}

		select {
		case <-d.clientsChanged:
			d.sendClientState()
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-logChan:
			d.addLogMessages(messages)
			d.sendLogMessages(messages)
		case <-pendingStart:
			d.startPendingGame()
		case <-d.ticker.C:
			d.tick()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	client.dealerMu.Lock()
	client.dealer = d
	client.dealerMu.Unlock()

	d.lock.Lock()
	d.clients[client] = true
	d.lock.Unlock()

	d.clientsChanged <- true
	d.execInRunLoop <- func() {
		client.Send(&playable.Response{
			Key:  "logs",
			Data: d.logMessages,
		})

		session, ok := d.session()
		if !ok {
			return
		}

		gs, err := session.GetPlayerState(client.player.ID)
		if err != nil {
			d.log.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.clientsChanged <- true
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		if err := d.handleMessage(context.Background(), c, msg); err != nil {
			d.log.WithError(err).WithField("client", c.String()).Info("could not perform action")
			c.Send(newErrorResponse(msg.Context, err))
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(ctx context.Context, c *Client, msg *playable.PayloadIn) error {
	switch msg.Action {
	case "ready":
		return d.ready(ctx, c, msg)
	case "start-game":
		return d.startGame(ctx, c, msg)
	case "terminate-game":
		return d.terminateGame(c, msg)
	}

	session, ok := d.session()
	if !ok {
		return ErrNoActiveSession
	}

	resp, updateState, err := session.Action(ctx, c.player.ID, msg)
	if err != nil {
		return err
	}

	if resp != nil {
		resp.Context = msg.Context
		c.Send(resp)
	}

	d.afterGameUpdate(session, updateState)
	return nil
}

func (d *Dealer) session() (Session, bool) {
	return d.registry.Get(d.room.UUID)
}

func (d *Dealer) isHost(c *Client) bool {
	return c.player.ID == d.room.HostID
}

func (d *Dealer) ready(ctx context.Context, c *Client, msg *playable.PayloadIn) error {
	seat, err := c.player.GetSeat(ctx, d.room)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotSeated) {
			return ErrNotSeated
		}

		return err
	}

	ready, ok := msg.AdditionalData.GetBool("ready")
	if !ok {
		ready = !seat.Ready
	}

	if err := seat.SetReady(ctx, ready); err != nil {
		return err
	}

	if !ready && d.pendingGame != nil {
		d.cancelPendingGame()
	}

	c.Send(playable.OK(msg.Context))
	d.sendClientState()
	return nil
}

func (d *Dealer) startGame(ctx context.Context, c *Client, msg *playable.PayloadIn) error {
	if !d.isHost(c) {
		return ErrNotHost
	}

	if _, ok := d.session(); ok {
		return ErrSessionExists
	}

	if d.pendingGame != nil {
		return ErrGamePending
	}

	playerIDs, err := d.readyPlayerIDs(ctx)
	if err != nil {
		return err
	}

	if d.options.StartGameDelay > 0 {
		d.pendingGame = newPendingGame(c, msg.Context, d.options.StartGameDelay)
		c.Send(playable.OK(msg.Context))
		d.sendClientState()
		return nil
	}

	if err := d.createGame(ctx, playerIDs); err != nil {
		return err
	}

	c.Send(playable.OK(msg.Context))
	return nil
}

// readyPlayerIDs returns the seated players in seat order if everybody is ready
func (d *Dealer) readyPlayerIDs(ctx context.Context) ([]int64, error) {
	seats, err := d.room.GetSeats(ctx)
	if err != nil {
		return nil, err
	}

	if len(seats) < seotda.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	playerIDs := make([]int64, len(seats))
	for i, seat := range seats {
		if !seat.Ready {
			return nil, ErrPlayersNotReady
		}

		playerIDs[i] = seat.PlayerID
	}

	return playerIDs, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) startPendingGame() {
	pg := d.pendingGame
	d.pendingGame = nil

	ctx := context.Background()
	playerIDs, err := d.readyPlayerIDs(ctx)
	if err == nil {
		err = d.createGame(ctx, playerIDs)
	}

	if err != nil {
		d.log.WithError(err).Info("could not start pending game")
		d.broadcast(newErrorResponse(pg.context, err))
		d.sendClientState()
	}
}

func (d *Dealer) cancelPendingGame() {
	d.pendingGame.cancel()
	d.pendingGame = nil
	d.broadcast(&playable.Response{Key: "pendingGame"})
}

func (d *Dealer) createGame(ctx context.Context, playerIDs []int64) error {
	game, err := seotda.NewGame(ctx, d.log, playerIDs, roomBank{d.bank}, seotda.Options{
		BaseStake:   d.room.BaseStake,
		TurnTimeout: d.options.TurnTimeout,
		WinnerExp:   d.options.WinnerExp,
		LoserExp:    d.options.LoserExp,
	})
	if err != nil {
		return err
	}

	if err := d.registry.Create(d.room.UUID, game); err != nil {
		game.Abort(err.Error())
		if details, isOver := game.GetEndOfGameDetails(); isOver {
			d.settle(details)
		}

		return err
	}

	d.ticker.Reset(game.Interval())
	d.log.WithField("game", game.ID()).Info("game started")
	d.sendClientState()
	d.afterGameUpdate(game, true)
	return nil
}

func (d *Dealer) terminateGame(c *Client, msg *playable.PayloadIn) error {
	if !d.isHost(c) {
		return ErrNotHost
	}

	if d.pendingGame != nil {
		d.cancelPendingGame()
		c.Send(playable.OK(msg.Context))
		return nil
	}

	session, ok := d.session()
	if !ok {
		return ErrNoActiveSession
	}

	session.Abort("the host ended the game")
	c.Send(playable.OK(msg.Context))
	d.afterGameUpdate(session, true)
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	session, ok := d.session()
	if !ok {
		return
	}

	tickable, ok := session.(playable.Tickable)
	if !ok {
		return
	}

	changed, err := tickable.Tick()
	if err != nil {
		d.log.WithError(err).Error("could not tick game")
	}

	if changed {
		d.afterGameUpdate(session, true)
	}
}

// afterGameUpdate delivers everything the game produced and ends the game if it is over
// NOTE: must only be called from the run loop
func (d *Dealer) afterGameUpdate(session Session, updateState bool) {
	d.deliverEvents(session)
	d.drainLogMessages(session)

	if updateState {
		d.sendGameData(session)
	}

	if details, isOver := session.GetEndOfGameDetails(); isOver {
		d.endGame(details)
	}
}

func (d *Dealer) deliverEvents(session Session) {
	for _, event := range session.Events() {
		for _, client := range d.Clients() {
			if event.IsBroadcast() || event.Recipient == client.player.ID {
				client.Send(event)
			}
		}
	}
}

func (d *Dealer) drainLogMessages(session Session) {
	for {
		select {
		case messages := <-session.LogChan():
			d.addLogMessages(messages)
			d.sendLogMessages(messages)
		default:
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) endGame(details *playable.GameOverDetails) {
	d.settle(details)
	d.registry.Remove(d.room.UUID)

	if err := d.room.ResetReady(context.Background()); err != nil {
		d.log.WithError(err).Error("could not reset ready flags")
	}

	d.broadcast(&playable.Response{Key: "gameEnded"})
	d.sendClientState()
}

func (d *Dealer) settle(details *playable.GameOverDetails) {
	if err := d.bank.SettleGame(context.Background(), details, d.options.ExpPerLevel); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"payouts": details.Payouts,
			"aborted": details.Aborted,
		}).Error("could not settle game")
		d.broadcast(newErrorResponse("", err))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData(session Session) {
	for _, client := range d.Clients() {
		data, err := session.GetPlayerState(client.player.ID)
		if err != nil {
			d.log.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

func (d *Dealer) broadcast(msg *playable.Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	seats, err := d.room.GetSeats(context.Background())
	if err != nil {
		d.log.WithError(err).Error("could not get seats")
		return
	}

	connectedClients := make(map[int64]*model.Player)
	for _, client := range d.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	players := make(map[int64]*clientStatePlayer)
	for _, seat := range seats {
		_, isConnected := connectedClients[seat.PlayerID]
		delete(connectedClients, seat.PlayerID)
		players[seat.PlayerID] = &clientStatePlayer{
			Seat:        seat,
			IsConnected: isConnected,
			IsSeated:    true,
			IsHost:      seat.PlayerID == d.room.HostID,
		}
	}

	for _, player := range connectedClients {
		players[player.ID] = &clientStatePlayer{
			Seat: &model.Seat{
				Player:   player,
				PlayerID: player.ID,
				RoomUUID: d.room.UUID,
				Seat:     -1,
			},
			IsConnected: true,
		}
	}

	_, inProgress := d.session()
	d.broadcast(&playable.Response{
		Key: "clientState",
		Data: &clientState{
			Players:     players,
			PendingGame: d.pendingGame,
			InProgress:  inProgress,
		},
	})
}
