package seotda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/internal/rng"
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda/betting"
	"seotda-server/pkg/playable/seotda/handanalyzer"
	"seotda-server/pkg/token"
)

// player limits. three cards each must fit in the twenty card deck
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// ErrDuplicatePlayer is returned when a player is seated twice
var ErrDuplicatePlayer = errors.New("player is listed more than once")

// Game is a single hand of seotda, from the base stake to the settlement
type Game struct {
	id      string
	options Options
	bank    Bank
	seed    int64
	rng     rng.Generator
	deck    *deck.Deck

	participants    []*Participant
	idToParticipant map[int64]*Participant

	dealerIndex  int
	currentIndex int
	phase        Phase
	pot          int
	currentBet   int
	redeals      int
	turnStarted  time.Time

	events  []*playable.Response
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame collects the base stake from every player through the bank and deals the first two cards.
// If a stake cannot be collected, the stakes already collected are returned and no game is created
func NewGame(ctx context.Context, logger logrus.FieldLogger, playerIDs []int64, bank Bank, opts Options) (*Game, error) {
	if len(playerIDs) < MinPlayers || len(playerIDs) > MaxPlayers {
		return nil, PlayerCountError{
			Min: MinPlayers,
			Max: MaxPlayers,
			Got: len(playerIDs),
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	participants := make([]*Participant, len(playerIDs))
	idToParticipant := make(map[int64]*Participant)
	for i, pid := range playerIDs {
		if _, ok := idToParticipant[pid]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePlayer, pid)
		}

		p := NewParticipant(pid, opts.BaseStake)
		participants[i] = p
		idToParticipant[pid] = p
	}

	id, err := token.Generate(12)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rng.NewSeed()
	}

	g := &Game{
		id:              id,
		options:         opts,
		bank:            bank,
		seed:            seed,
		rng:             rng.Seeded(seed),
		participants:    participants,
		idToParticipant: idToParticipant,
		pot:             opts.BaseStake * len(participants),
		currentBet:      opts.BaseStake,
		logger:          logger.WithFields(logrus.Fields{"game": id, "seed": seed}),
		logChan:         make(chan []*playable.LogMessage, 256),
	}

	if err := g.collectStakes(ctx); err != nil {
		return nil, err
	}

	g.dealerIndex = g.rng.Intn(len(participants))

	messages := make([]*playable.LogMessage, 0, len(participants)+1)
	for _, p := range participants {
		messages = append(messages, newLogMessage(p.PlayerID, nil, "{} paid the ${%d} base stake", opts.BaseStake))
	}

	messages = append(messages, newLogMessage(g.dealer().PlayerID, nil, "New game of seotda started with a pot of ${%d}, {} is the dealer", g.pot))
	g.sendLogMessages(messages...)

	if err := g.deal(); err != nil {
		g.refundStakes(ctx, participants)
		return nil, err
	}

	return g, nil
}

func (g *Game) collectStakes(ctx context.Context) error {
	for i, p := range g.participants {
		if _, err := g.bank.ApplyDelta(ctx, p.PlayerID, -g.options.BaseStake, "base stake"); err != nil {
			g.refundStakes(ctx, g.participants[0:i])
			return StakeError{PlayerID: p.PlayerID, Err: err}
		}
	}

	return nil
}

func (g *Game) refundStakes(ctx context.Context, participants []*Participant) {
	for _, p := range participants {
		if _, err := g.bank.ApplyDelta(ctx, p.PlayerID, g.options.BaseStake, "base stake refund"); err != nil {
			g.logger.WithError(err).WithField("playerId", p.PlayerID).Error("could not refund the base stake")
		}
	}
}

// ID returns the unique identifier of the game
func (g *Game) ID() string {
	return g.id
}

// Name returns "seotda"
func (g *Game) Name() string {
	return "seotda"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Pot returns the amount in the pot
func (g *Game) Pot() int {
	return g.pot
}

// Events returns the queued events and clears the queue
func (g *Game) Events() []*playable.Response {
	events := g.events
	g.events = nil
	return events
}

// Action performs an action
func (g *Game) Action(ctx context.Context, playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if g.isOver() {
		return nil, false, ErrGameIsOver
	}

	p, ok := g.idToParticipant[playerID]
	if !ok {
		return nil, false, ErrPlayerNotFound
	}

	switch message.Action {
	case "select-reveal-card":
		cards, err := normalizeCards(message.Cards)
		if err != nil {
			return nil, false, err
		}

		if len(cards) != 1 {
			return nil, false, ErrInvalidCard
		}

		if err := g.selectRevealCard(p, cards[0]); err != nil {
			return nil, false, err
		}
	case "betting-action":
		id, _ := message.AdditionalData.GetString("action")
		if id == "" {
			id = message.Subject
		}

		act, err := betting.FromString(id)
		if err != nil {
			return nil, false, err
		}

		if err := g.bet(ctx, p, act); err != nil {
			return nil, false, err
		}
	case "select-showdown-cards":
		cards, err := normalizeCards(message.Cards)
		if err != nil {
			return nil, false, err
		}

		if err := g.selectShowdownCards(p, cards); err != nil {
			return nil, false, err
		}
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	return playable.OK(), true, nil
}

// clients may identify a card by its id only
func normalizeCards(in []*deck.Card) ([]*deck.Card, error) {
	cards := make([]*deck.Card, len(in))
	for i, card := range in {
		if card != nil && card.Rank == 0 && card.ID != "" {
			parsed, err := deck.ParseCard(card.ID)
			if err != nil {
				return nil, err
			}

			card = parsed
		}

		cards[i] = card
	}

	return cards, nil
}

func (g *Game) selectRevealCard(p *Participant, card *deck.Card) error {
	if _, ok := g.phase.(*InitialPhase); !ok {
		return ErrWrongPhase
	}

	if !p.Alive {
		return ErrPlayerFolded
	}

	if p.revealed != nil {
		return ErrAlreadySelected
	}

	c, ok := p.HasCard(card)
	if !ok {
		return ErrInvalidCard
	}

	p.revealed = c
	g.broadcast("card-revealed", &cardRevealedEvent{PlayerID: p.PlayerID, Card: c})
	g.sendLogMessages(newLogMessage(p.PlayerID, []*deck.Card{c}, "{} revealed a card"))

	for _, q := range g.participants {
		if q.Alive && q.revealed == nil {
			return nil
		}
	}

	g.startBettingRound(1)
	return nil
}

func (g *Game) bet(ctx context.Context, p *Participant, act betting.Action) error {
	phase, ok := g.phase.(*BettingPhase)
	if !ok {
		return ErrWrongPhase
	}

	if !p.Alive {
		return ErrPlayerFolded
	}

	if g.participants[g.currentIndex] != p {
		return ErrNotYourTurn
	}

	if act.OpeningOnly() && !g.isOpening(phase, p) {
		return ErrOpeningActionOnly
	}

	if act == betting.Fold {
		g.fold(p)
		return nil
	}

	cost := betting.CostOf(act, g.currentBet, g.pot, g.options.BaseStake, p.TotalContributed)
	if cost != 0 {
		balance, err := g.bank.Balance(ctx, p.PlayerID)
		if err != nil {
			return fmt.Errorf("could not get the balance: %w", err)
		}

		if cost == betting.AllInCost {
			cost = balance
			if cost <= 0 {
				return ErrInsufficientFunds
			}
		} else if cost > balance {
			return ErrInsufficientFunds
		}

		if _, err := g.bank.ApplyDelta(ctx, p.PlayerID, -cost, string(act)); err != nil {
			return fmt.Errorf("could not collect ${%d}: %w", cost, err)
		}
	}

	g.currentBet = p.Apply(act, cost, g.currentBet)
	g.pot += cost

	g.broadcast("bet", &betEvent{
		PlayerID:   p.PlayerID,
		Action:     act,
		Amount:     cost,
		Pot:        g.pot,
		CurrentBet: g.currentBet,
	})
	g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} %s", act.LogMessage(cost)))

	g.endTurn()
	return nil
}

// check and bbing are only available to the first actor before anybody acts
func (g *Game) isOpening(phase *BettingPhase, p *Participant) bool {
	if p.PlayerID != phase.FirstActor {
		return false
	}

	for _, q := range g.participants {
		if q.LastAction != "" {
			return false
		}
	}

	return true
}

func (g *Game) fold(p *Participant) {
	g.currentBet = p.Apply(betting.Fold, 0, g.currentBet)
	g.broadcast("fold", &playerEvent{PlayerID: p.PlayerID})
	g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} %s", betting.Fold.LogMessage(0)))
	g.endTurn()
}

// endTurn moves the game forward after a betting action
func (g *Game) endTurn() {
	phase := g.phase.(*BettingPhase)
	status := betting.IsRoundComplete(g.states(), g.currentBet, phase.FirstActor)

	switch {
	case status.Winner != 0:
		g.finish(status.Winner, nil)
	case status.Complete && phase.Round == 1:
		g.dealThirdCard()
	case status.Complete:
		g.startShowdown()
	default:
		g.currentIndex = betting.NextAlivePlayer(g.currentIndex, g.eligible())
		g.turnStarted = time.Now()
	}
}

func (g *Game) startBettingRound(round int) {
	for _, p := range g.participants {
		p.ResetRound()
	}

	eligible := g.eligible()
	g.currentIndex = betting.NextAlivePlayer(g.dealerIndex, eligible)

	var firstActor int64
	if eligible[g.currentIndex] {
		firstActor = g.participants[g.currentIndex].PlayerID
	}

	g.setPhase(&BettingPhase{Round: round, FirstActor: firstActor})

	// everybody left is all-in
	if firstActor == 0 {
		g.endTurn()
	}
}

func (g *Game) dealThirdCard() {
	for _, p := range g.drawOrder() {
		card, err := g.deck.Draw()
		if err != nil {
			g.abort(fmt.Sprintf("could not deal the third card: %v", err))
			return
		}

		p.AddCard(card)
		g.sendTo(p.PlayerID, "cards", &cardsEvent{Cards: p.Hand()})
	}

	g.sendLogMessages(newLogMessage(0, nil, "The third card was dealt"))
	g.startBettingRound(2)
}

func (g *Game) startShowdown() {
	g.setPhase(&ShowdownPhase{Selections: make(map[int64][]*deck.Card)})
}

func (g *Game) selectShowdownCards(p *Participant, cards []*deck.Card) error {
	phase, ok := g.phase.(*ShowdownPhase)
	if !ok {
		return ErrWrongPhase
	}

	if !p.Alive {
		return ErrPlayerFolded
	}

	if _, ok := phase.Selections[p.PlayerID]; ok {
		return ErrAlreadySelected
	}

	if len(cards) != 2 || cards[0].Equal(cards[1]) {
		return ErrInvalidSelection
	}

	selected := make([]*deck.Card, len(cards))
	for i, card := range cards {
		c, ok := p.HasCard(card)
		if !ok {
			return ErrInvalidCard
		}

		selected[i] = c
	}

	phase.Selections[p.PlayerID] = selected
	g.broadcast("cards-selected", &playerEvent{PlayerID: p.PlayerID})
	g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} chose their cards"))

	if len(phase.Selections) == len(g.alive()) {
		g.resolveShowdown(phase)
	}

	return nil
}

func (g *Game) resolveShowdown(phase *ShowdownPhase) {
	alive := g.alive()
	revealed := make([]*RevealedHand, len(alive))
	hands := make([]*handanalyzer.Hand, len(alive))
	for i, p := range alive {
		hand, err := handanalyzer.Score(phase.Selections[p.PlayerID])
		if err != nil {
			g.abort(fmt.Sprintf("could not score the hand of player %d: %v", p.PlayerID, err))
			return
		}

		hands[i] = hand
		revealed[i] = &RevealedHand{PlayerID: p.PlayerID, Hand: hand}
	}

	if reason := redealReason(hands); reason != "" {
		g.redeal(reason, revealed)
		return
	}

	idx, tie := handanalyzer.Best(hands)
	if idx < 0 {
		g.abort("no hands to compare at showdown")
		return
	}

	if tie {
		g.redeal("tie", revealed)
		return
	}

	g.finish(alive[idx].PlayerID, revealed)
}

// redealReason returns why the showdown must be redealt, or an empty string.
// gusa redeals unless somebody else holds a rank pair or better.
// silly-gusa redeals unless somebody else holds a 10 rank pair or a bright pair.
func redealReason(hands []*handanalyzer.Hand) string {
	for i, hand := range hands {
		if !hand.Kind.IsGusa() {
			continue
		}

		beaten := false
		for j, other := range hands {
			if i == j {
				continue
			}

			switch {
			case other.Category == handanalyzer.Gwangttang:
				beaten = true
			case other.Category == handanalyzer.Ttang:
				beaten = hand.Kind == handanalyzer.Gusa || other.Value == 10
			}

			if beaten {
				break
			}
		}

		if !beaten {
			return hand.Kind.String()
		}
	}

	return ""
}

// redeal starts over with the players still alive. The pot and contributions carry over
func (g *Game) redeal(reason string, hands []*RevealedHand) {
	g.redeals++
	g.broadcast("redeal", &redealEvent{Reason: reason, Hands: hands, Pot: g.pot})
	g.sendLogMessages(newLogMessage(0, nil, "Redeal (%s), the pot of ${%d} carries over", reason, g.pot))

	if err := g.deal(); err != nil {
		g.abort(fmt.Sprintf("could not redeal: %v", err))
	}
}

func (g *Game) finish(winnerID int64, hands []*RevealedHand) {
	settlement, err := Settle(g.states(), winnerID, g.pot, g.options)
	if err != nil {
		g.abort(err.Error())
		return
	}

	settlement.ByFold = hands == nil
	settlement.Hands = hands

	g.setPhase(&FinishedPhase{Settlement: settlement})
	g.broadcast("reveal", settlement)
	g.sendLogMessages(newLogMessage(winnerID, nil, "{} won the pot of ${%d}", g.pot))
}

// Abort ends the game without a winner
func (g *Game) Abort(reason string) {
	if g.isOver() {
		return
	}

	g.abort(reason)
}

func (g *Game) abort(reason string) {
	refunds := make(map[int64]int, len(g.participants))
	for _, p := range g.participants {
		refunds[p.PlayerID] = p.TotalContributed
	}

	g.logger.WithField("reason", reason).Error("game aborted")
	g.setPhase(&AbortedPhase{Reason: reason, Refunds: refunds})
	g.broadcast("aborted", &abortedEvent{Reason: reason})
	g.sendLogMessages(newLogMessage(0, nil, "The game was cancelled and all bets were returned"))
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	switch phase := g.phase.(type) {
	case *FinishedPhase:
		s := phase.Settlement
		return &playable.GameOverDetails{
			BalanceAdjustments: s.NetChanges,
			Payouts:            map[int64]int{s.WinnerID: s.Pot},
			Experience:         s.Experience,
			WinnerID:           s.WinnerID,
			Log:                s,
		}, true
	case *AbortedPhase:
		adjustments := make(map[int64]int, len(g.participants))
		for _, p := range g.participants {
			adjustments[p.PlayerID] = 0
		}

		return &playable.GameOverDetails{
			BalanceAdjustments: adjustments,
			Payouts:            phase.Refunds,
			Aborted:            true,
			Log:                phase,
		}, true
	}

	return nil, false
}

func (g *Game) isOver() bool {
	switch g.phase.(type) {
	case *FinishedPhase, *AbortedPhase:
		return true
	}

	return false
}

// deal shuffles a fresh deck and deals two cards to every player still alive
func (g *Game) deal() error {
	g.deck = deck.New()
	g.deck.Shuffle(rng.NextSeed(g.rng))
	g.logger.WithFields(logrus.Fields{
		"deck":    g.deck.HashCode(),
		"redeals": g.redeals,
	}).Info("shuffled")

	order := g.drawOrder()
	for _, p := range g.participants {
		p.ClearHand()
		p.ResetRound()
	}

	for i := 0; i < 2; i++ {
		for _, p := range order {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.AddCard(card)
		}
	}

	for _, p := range order {
		g.sendTo(p.PlayerID, "cards", &cardsEvent{Cards: p.Hand()})
	}

	g.currentIndex = betting.NextAlivePlayer(g.dealerIndex, g.aliveMask())
	g.setPhase(&InitialPhase{})
	g.sendLogMessages(newLogMessage(0, nil, "Cards dealt, choose a card to show"))

	return nil
}

func (g *Game) setPhase(phase Phase) {
	g.phase = phase
	g.turnStarted = time.Now()

	event := &phaseEvent{Phase: phase.Name()}
	if bp, ok := phase.(*BettingPhase); ok {
		event.Round = bp.Round
		event.CurrentPlayerID = g.participants[g.currentIndex].PlayerID
	}

	g.broadcast("phase", event)
}

func (g *Game) dealer() *Participant {
	return g.participants[g.dealerIndex]
}

// drawOrder returns the alive participants starting with the player after the dealer
func (g *Game) drawOrder() []*Participant {
	n := len(g.participants)
	order := make([]*Participant, 0, n)
	for i := 1; i <= n; i++ {
		p := g.participants[(g.dealerIndex+i)%n]
		if p.Alive {
			order = append(order, p)
		}
	}

	return order
}

func (g *Game) alive() []*Participant {
	alive := make([]*Participant, 0, len(g.participants))
	for _, p := range g.participants {
		if p.Alive {
			alive = append(alive, p)
		}
	}

	return alive
}

func (g *Game) states() []*betting.State {
	states := make([]*betting.State, len(g.participants))
	for i, p := range g.participants {
		states[i] = p.State
	}

	return states
}

func (g *Game) aliveMask() []bool {
	mask := make([]bool, len(g.participants))
	for i, p := range g.participants {
		mask[i] = p.Alive
	}

	return mask
}

func (g *Game) eligible() []bool {
	mask := make([]bool, len(g.participants))
	for i, p := range g.participants {
		mask[i] = p.CanAct()
	}

	return mask
}

func (g *Game) broadcast(value string, data interface{}) {
	g.events = append(g.events, &playable.Response{Key: "event", Value: value, Data: data})
}

func (g *Game) sendTo(playerID int64, value string, data interface{}) {
	g.events = append(g.events, &playable.Response{Key: "event", Value: value, Data: data, Recipient: playerID})
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping log messages")
	}
}

func newLogMessage(playerID int64, cards []*deck.Card, format string, a ...interface{}) *playable.LogMessage {
	lm := playable.SimpleLogMessage(playerID, format, a...)
	lm.Cards = cards
	return lm
}
