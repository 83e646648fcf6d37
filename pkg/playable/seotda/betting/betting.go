package betting

import "errors"

// ErrUnknownAction is returned when an action identifier is not recognized
var ErrUnknownAction = errors.New("unknown betting action")

// AllInCost is returned by CostOf when the cost is the player's entire balance
const AllInCost = -1

// State is the betting state of a single player in a game
type State struct {
	PlayerID         int64  `json:"playerId"`
	Alive            bool   `json:"alive"`
	TotalContributed int    `json:"totalContributed"`
	RoundContributed int    `json:"roundContributed"`
	HasCalled        bool   `json:"hasCalled"`
	HasRaised        bool   `json:"hasRaised"`
	IsAllIn          bool   `json:"allIn"`
	LastAction       Action `json:"lastAction,omitempty"`
}

// NewState returns the state of a player who has paid the base stake
func NewState(playerID int64, baseStake int) *State {
	return &State{
		PlayerID:         playerID,
		Alive:            true,
		TotalContributed: baseStake,
	}
}

// CanAct returns true if the player can still take betting actions
func (s *State) CanAct() bool {
	return s.Alive && !s.IsAllIn
}

// Acted returns true if the player has taken an action this round
// Players that are all-in have nothing left to act on
func (s *State) Acted() bool {
	return s.LastAction != "" || s.IsAllIn
}

// ResetRound clears the round tracking fields
func (s *State) ResetRound() {
	s.RoundContributed = 0
	s.HasCalled = false
	s.HasRaised = false
	s.LastAction = ""
}

// Apply records the action and the amount paid for it, and returns the new current bet
func (s *State) Apply(a Action, amount int, currentBet int) int {
	s.LastAction = a
	if a == Fold {
		s.Alive = false
		return currentBet
	}

	s.TotalContributed += amount
	s.RoundContributed += amount

	if a == AllIn {
		s.IsAllIn = true
	}

	if a.IsRaise() {
		s.HasRaised = true
		if s.TotalContributed > currentBet {
			return s.TotalContributed
		}

		return currentBet
	}

	s.HasCalled = true
	return currentBet
}

// CostOf returns what the action costs a player who has contributed {contributed} in total.
// AllIn returns the AllInCost sentinel and must be resolved to the player's balance.
func CostOf(a Action, currentBet, pot, baseStake, contributed int) int {
	callCost := floor(currentBet - contributed)

	switch a {
	case Call:
		return callCost
	case Ddadang:
		return floor(2*currentBet - contributed)
	case Half:
		return floor(currentBet + (pot+callCost)/2 - contributed)
	case Bbing:
		return floor(baseStake - contributed)
	case AllIn:
		return AllInCost
	}

	return 0
}

func floor(n int) int {
	if n < 0 {
		return 0
	}

	return n
}

// RoundStatus is the result of IsRoundComplete
type RoundStatus struct {
	Complete bool
	// Winner is set when every other player folded
	Winner int64
}

// IsRoundComplete determines whether a betting round is over.
// The round is won outright as soon as one alive player remains. Otherwise the first actor must have
// acted, every alive player that is not all-in must have contributed the same total of at least
// currentBet, and either chips were put in this round or every alive player has acted.
func IsRoundComplete(states []*State, currentBet int, firstActor int64) RoundStatus {
	var alive []*State
	for _, s := range states {
		if s.Alive {
			alive = append(alive, s)
		}
	}

	switch len(alive) {
	case 0:
		return RoundStatus{}
	case 1:
		return RoundStatus{Complete: true, Winner: alive[0].PlayerID}
	}

	for _, s := range states {
		if s.PlayerID == firstActor && !s.Acted() {
			return RoundStatus{}
		}
	}

	target := -1
	contributed := false
	allActed := true
	for _, s := range alive {
		if s.RoundContributed > 0 {
			contributed = true
		}

		if !s.Acted() {
			allActed = false
		}

		if s.IsAllIn {
			continue
		}

		if s.TotalContributed < currentBet {
			return RoundStatus{}
		}

		if target == -1 {
			target = s.TotalContributed
		} else if target != s.TotalContributed {
			return RoundStatus{}
		}
	}

	if !contributed && !allActed {
		return RoundStatus{}
	}

	return RoundStatus{Complete: true}
}

// NextAlivePlayer returns the index of the next eligible player after {from}, wrapping around.
// If no other player is eligible, {from} is returned.
func NextAlivePlayer(from int, eligible []bool) int {
	n := len(eligible)
	for i := 1; i < n; i++ {
		idx := (from + i) % n
		if eligible[idx] {
			return idx
		}
	}

	return from
}
