package seotda

import (
	"fmt"

	"seotda-server/pkg/playable/seotda/betting"
	"seotda-server/pkg/playable/seotda/handanalyzer"
)

// RevealedHand is a hand shown at the end of the game
type RevealedHand struct {
	PlayerID int64              `json:"playerId"`
	Hand     *handanalyzer.Hand `json:"hand"`
}

// Settlement is the outcome of a finished game
type Settlement struct {
	WinnerID int64 `json:"winnerId"`
	Pot      int   `json:"pot"`
	// ByFold is true when every other player folded
	ByFold bool `json:"byFold"`
	// NetChanges is the net balance change of every participant for the whole game
	NetChanges map[int64]int `json:"netChanges"`
	// Experience is the experience awarded to each participant
	Experience map[int64]int   `json:"experience"`
	Hands      []*RevealedHand `json:"hands,omitempty"`
}

// Settle determines the net change of every participant when winnerID takes the pot
func Settle(states []*betting.State, winnerID int64, pot int, opts Options) (*Settlement, error) {
	total := 0
	found := false
	for _, s := range states {
		total += s.TotalContributed
		if s.PlayerID == winnerID {
			found = true
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %d", ErrPlayerNotFound, winnerID)
	}

	if total != pot {
		return nil, fmt.Errorf("pot of %d does not match contributions of %d", pot, total)
	}

	s := &Settlement{
		WinnerID:   winnerID,
		Pot:        pot,
		NetChanges: make(map[int64]int, len(states)),
		Experience: make(map[int64]int, len(states)),
	}

	for _, state := range states {
		if state.PlayerID == winnerID {
			s.NetChanges[state.PlayerID] = pot - state.TotalContributed
			s.Experience[state.PlayerID] = opts.WinnerExp
		} else {
			s.NetChanges[state.PlayerID] = -state.TotalContributed
			s.Experience[state.PlayerID] = opts.LoserExp
		}
	}

	return s, nil
}
