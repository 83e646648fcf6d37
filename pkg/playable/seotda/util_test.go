package seotda

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable"
)

type bankEntry struct {
	playerID int64
	delta    int
	reason   string
}

type testBank struct {
	balances map[int64]int
	entries  []bankEntry
}

func newTestBank(ids []int64, balance int) *testBank {
	b := &testBank{balances: make(map[int64]int)}
	for _, id := range ids {
		b.balances[id] = balance
	}

	return b
}

func (t *testBank) Balance(_ context.Context, playerID int64) (int, error) {
	balance, ok := t.balances[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	return balance, nil
}

func (t *testBank) ApplyDelta(_ context.Context, playerID int64, delta int, reason string) (int, error) {
	balance, ok := t.balances[playerID]
	if !ok {
		return 0, ErrPlayerNotFound
	}

	if balance+delta < 0 {
		return balance, ErrInsufficientFunds
	}

	t.balances[playerID] = balance + delta
	t.entries = append(t.entries, bankEntry{playerID: playerID, delta: delta, reason: reason})
	return t.balances[playerID], nil
}

var cbg = context.Background()

// newTestGame creates a game where the last player is the dealer, so the first player acts first
// if hands are provided, they replace the dealt cards
func newTestGame(t *testing.T, playerIDs []int64, hands ...string) (*Game, *testBank) {
	t.Helper()

	bank := newTestBank(playerIDs, 10000)
	opts := DefaultOptions()
	opts.Seed = 1

	g, err := NewGame(cbg, logrus.StandardLogger(), playerIDs, bank, opts)
	require.NoError(t, err)

	g.dealerIndex = len(playerIDs) - 1
	g.currentIndex = 0
	for i, hand := range hands {
		g.participants[i].hand = deck.CardsFromString(hand)
	}

	return g, bank
}

// newShowdownGame creates a game in the showdown phase with three card hands
func newShowdownGame(t *testing.T, hands ...string) *Game {
	t.Helper()

	ids := make([]int64, len(hands))
	for i := range hands {
		ids[i] = int64(i + 1)
	}

	g, _ := newTestGame(t, ids, hands...)
	g.startShowdown()
	return g
}

func action(g *Game, playerID int64, name string, cards string) error {
	msg := &playable.PayloadIn{Action: name, Cards: deck.CardsFromString(cards)}
	_, _, err := g.Action(cbg, playerID, msg)
	return err
}

func bet(g *Game, playerID int64, act string) error {
	msg := &playable.PayloadIn{
		Action:         "betting-action",
		AdditionalData: playable.AdditionalData{"action": act},
	}

	_, _, err := g.Action(cbg, playerID, msg)
	return err
}

func revealAll(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.participants {
		if p.Alive {
			require.NoError(t, action(g, p.PlayerID, "select-reveal-card", deck.CardToString(p.hand[0])))
		}
	}
}

func eventsByValue(events []*playable.Response, value string) []*playable.Response {
	found := make([]*playable.Response, 0)
	for _, e := range events {
		if e.Value == value {
			found = append(found, e)
		}
	}

	return found
}
