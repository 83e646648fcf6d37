package seotda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable/seotda/betting"
	"seotda-server/pkg/snapshot"
)

func playerState(t *testing.T, g *Game, playerID int64) *Response {
	t.Helper()

	resp, err := g.GetPlayerState(playerID)
	require.NoError(t, err)
	assert.Equal(t, "game", resp.Key)
	assert.Equal(t, "seotda", resp.Value)

	return resp.Data.(*Response)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)
	g, _ := newTestGame(t, []int64{1, 2}, "3b,8b", "2p,7p")
	g.id = "game-state"

	state := playerState(t, g, 1)
	a.Equal("3b,8b", deck.CardsToString(state.Hand))
	a.Equal("38-bright-pair", state.CurrentHand.Label)
	a.Nil(state.PossibleHands)
	a.Equal(0, len(state.Actions))
	a.Equal("initial", state.GameState.Phase)
	a.Equal(int64(2), state.GameState.DealerID)
	a.Equal(200, state.GameState.Pot)

	for _, p := range state.GameState.Participants {
		a.Equal(2, p.CardCount)
		a.Nil(p.RevealedCard)
		a.False(p.HasSelected)
	}

	// spectators see no cards
	state = playerState(t, g, 99)
	a.Equal(0, len(state.Hand))
	a.Nil(state.CurrentHand)

	require.NoError(t, action(g, 1, "select-reveal-card", "8b"))
	state = playerState(t, g, 2)
	a.Equal("2p,7p", deck.CardsToString(state.Hand))
	a.True(state.GameState.Participants[0].HasSelected)
	a.Equal("8b", deck.CardToString(state.GameState.Participants[0].RevealedCard))
	a.False(state.GameState.Participants[1].HasSelected)

	snapshot.ValidateSnapshot(t, state, 0)
}

func TestGame_GetPlayerState_actions(t *testing.T) {
	a := assert.New(t)
	g, _ := newTestGame(t, []int64{1, 2, 3})
	revealAll(t, g)

	actions := func(playerID int64) []betting.Action {
		found := make([]betting.Action, 0)
		for _, act := range playerState(t, g, playerID).Actions {
			found = append(found, act.Action)
		}

		return found
	}

	a.Equal([]betting.Action{betting.Check, betting.Bbing, betting.Call, betting.Half, betting.Ddadang, betting.AllIn, betting.Fold}, actions(1))
	a.Equal([]betting.Action{}, actions(2))

	state := playerState(t, g, 1)
	a.Equal(int64(1), state.GameState.CurrentPlayerID)
	a.Equal(1, state.GameState.Round)
	for _, act := range state.Actions {
		switch act.Action {
		case betting.Half:
			a.Equal(150, act.Cost)
		case betting.Ddadang:
			a.Equal(100, act.Cost)
		case betting.AllIn:
			a.Equal(betting.AllInCost, act.Cost)
		default:
			a.Equal(0, act.Cost)
		}
	}

	require.NoError(t, bet(g, 1, "ddadang"))
	a.Equal([]betting.Action{betting.Call, betting.Half, betting.Ddadang, betting.AllIn, betting.Fold}, actions(2))

	state = playerState(t, g, 2)
	a.Equal(100, state.Actions[0].Cost)
	a.Equal(200, state.GameState.CurrentBet)
	a.Equal(betting.Ddadang, state.GameState.Participants[0].LastAction)
}

func TestGame_GetPlayerState_showdown(t *testing.T) {
	a := assert.New(t)
	g := newShowdownGame(t, "3b,8b,1p", "2p,7p,5p")

	state := playerState(t, g, 1)
	a.Nil(state.CurrentHand)
	require.Equal(t, 3, len(state.PossibleHands))
	a.Equal("38-bright-pair", state.PossibleHands[0].Label)
	a.Nil(state.Selected)

	require.NoError(t, action(g, 1, "select-showdown-cards", "3b,8b"))
	state = playerState(t, g, 1)
	a.Equal("3b,8b", deck.CardsToString(state.Selected))
	a.True(state.GameState.Participants[0].HasSelected)
	a.False(state.GameState.Participants[1].HasSelected)

	require.NoError(t, action(g, 2, "select-showdown-cards", "2p,7p"))
	state = playerState(t, g, 2)
	a.Equal("finished", state.GameState.Phase)
	require.NotNil(t, state.GameState.Settlement)
	a.Equal(int64(1), state.GameState.Settlement.WinnerID)
}
