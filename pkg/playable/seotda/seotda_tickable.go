package seotda

import (
	"time"

	"seotda-server/pkg/playable/seotda/handanalyzer"
)

// Interval returns how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return time.Second
}

// Tick acts on behalf of players who have not acted within the turn timeout.
// Stalled players show their first card, fold, or keep their best two cards
func (g *Game) Tick() (bool, error) {
	if g.options.TurnTimeout <= 0 || g.isOver() {
		return false, nil
	}

	if time.Since(g.turnStarted) < g.options.TurnTimeout {
		return false, nil
	}

	switch phase := g.phase.(type) {
	case *InitialPhase:
		for _, p := range g.alive() {
			if p.revealed != nil {
				continue
			}

			if err := g.selectRevealCard(p, p.hand[0]); err != nil {
				return true, err
			}

			g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} ran out of time"))
		}
	case *BettingPhase:
		p := g.participants[g.currentIndex]
		g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} ran out of time"))
		g.fold(p)
	case *ShowdownPhase:
		for _, p := range g.alive() {
			if _, ok := phase.Selections[p.PlayerID]; ok {
				continue
			}

			hands, err := handanalyzer.PossibleHands(p.hand)
			if err != nil {
				return true, err
			}

			idx, _ := handanalyzer.Best(hands)
			g.sendLogMessages(newLogMessage(p.PlayerID, nil, "{} ran out of time"))
			if err := g.selectShowdownCards(p, hands[idx].Cards); err != nil {
				return true, err
			}
		}
	}

	return true, nil
}
