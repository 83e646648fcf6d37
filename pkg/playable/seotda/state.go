package seotda

import (
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable"
	"seotda-server/pkg/playable/seotda/betting"
	"seotda-server/pkg/playable/seotda/handanalyzer"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	ID              string                  `json:"id"`
	Phase           string                  `json:"phase"`
	Round           int                     `json:"round"`
	Pot             int                     `json:"pot"`
	BaseStake       int                     `json:"baseStake"`
	CurrentBet      int                     `json:"currentBet"`
	DealerID        int64                   `json:"dealerId"`
	CurrentPlayerID int64                   `json:"currentPlayerId"`
	Redeals         int                     `json:"redeals"`
	Participants    []*GameStateParticipant `json:"participants"`
	// Settlement is only populated when the game is finished
	Settlement *Settlement `json:"settlement,omitempty"`
	// AbortReason is only populated when the game was aborted
	AbortReason string `json:"abortReason,omitempty"`
}

// GameStateParticipant is the state of an individual participant
type GameStateParticipant struct {
	*betting.State
	CardCount    int        `json:"cardCount"`
	RevealedCard *deck.Card `json:"revealedCard,omitempty"`
	// HasSelected is true once the player picked their cards for the current phase
	HasSelected bool `json:"hasSelected"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState   `json:"gameState"`
	Hand      []*deck.Card `json:"hand"`
	// CurrentHand is the evaluation of a two card hand
	CurrentHand *handanalyzer.Hand `json:"currentHand,omitempty"`
	// PossibleHands are the hands that can be made from three cards
	PossibleHands []*handanalyzer.Hand `json:"possibleHands,omitempty"`
	Selected      []*deck.Card         `json:"selected,omitempty"`
	// Actions are the betting actions available to the player and their cost
	Actions []*AvailableAction `json:"actions"`
}

// AvailableAction is an action the current player can take
type AvailableAction struct {
	Action betting.Action `json:"action"`
	// Cost is betting.AllInCost for all-in
	Cost int `json:"cost"`
}

func (g *Game) getGameState() *GameState {
	participants := make([]*GameStateParticipant, len(g.participants))
	for i, p := range g.participants {
		state := *p.State
		participants[i] = &GameStateParticipant{
			State:        &state,
			CardCount:    len(p.hand),
			RevealedCard: p.revealed,
			HasSelected:  g.hasSelected(p),
		}
	}

	state := &GameState{
		ID:           g.id,
		Phase:        g.phase.Name(),
		Pot:          g.pot,
		BaseStake:    g.options.BaseStake,
		CurrentBet:   g.currentBet,
		DealerID:     g.dealer().PlayerID,
		Redeals:      g.redeals,
		Participants: participants,
	}

	switch phase := g.phase.(type) {
	case *BettingPhase:
		state.Round = phase.Round
		state.CurrentPlayerID = g.participants[g.currentIndex].PlayerID
	case *ShowdownPhase:
		state.Round = 2
	case *FinishedPhase:
		state.Settlement = phase.Settlement
	case *AbortedPhase:
		state.AbortReason = phase.Reason
	}

	return state
}

func (g *Game) hasSelected(p *Participant) bool {
	switch phase := g.phase.(type) {
	case *InitialPhase:
		return p.revealed != nil
	case *ShowdownPhase:
		_, ok := phase.Selections[p.PlayerID]
		return ok
	}

	return false
}

func (g *Game) availableActions(p *Participant) []*AvailableAction {
	actions := make([]*AvailableAction, 0)
	phase, ok := g.phase.(*BettingPhase)
	if !ok || !p.CanAct() || g.participants[g.currentIndex] != p {
		return actions
	}

	opening := g.isOpening(phase, p)
	for _, act := range []betting.Action{betting.Check, betting.Bbing, betting.Call, betting.Half, betting.Ddadang, betting.AllIn, betting.Fold} {
		if act.OpeningOnly() && !opening {
			continue
		}

		actions = append(actions, &AvailableAction{
			Action: act,
			Cost:   betting.CostOf(act, g.currentBet, g.pot, g.options.BaseStake, p.TotalContributed),
		})
	}

	return actions
}

// GetPlayerState returns the state for the given player
// Only the player's own cards are included
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	response := &Response{
		GameState: g.getGameState(),
		Hand:      []*deck.Card{},
		Actions:   []*AvailableAction{},
	}

	if p, ok := g.idToParticipant[playerID]; ok {
		response.Hand = p.Hand()
		response.Actions = g.availableActions(p)

		switch len(p.hand) {
		case 2:
			response.CurrentHand, _ = handanalyzer.Score(p.hand)
		case 3:
			response.PossibleHands, _ = handanalyzer.PossibleHands(p.hand)
		}

		if phase, ok := g.phase.(*ShowdownPhase); ok {
			response.Selected = phase.Selections[playerID]
		}
	}

	return &playable.Response{
		Key:   "game",
		Value: "seotda",
		Data:  response,
	}, nil
}
