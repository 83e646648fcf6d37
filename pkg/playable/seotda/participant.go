package seotda

import (
	"seotda-server/pkg/deck"
	"seotda-server/pkg/playable/seotda/betting"
)

// Participant is an individual in the seotda game
type Participant struct {
	*betting.State

	hand     []*deck.Card
	revealed *deck.Card
}

// NewParticipant returns a new participant who has paid the base stake
func NewParticipant(playerID int64, baseStake int) *Participant {
	return &Participant{
		State: betting.NewState(playerID, baseStake),
		hand:  make([]*deck.Card, 0, 3),
	}
}

// AddCard adds a card to the participant's hand
func (p *Participant) AddCard(card *deck.Card) {
	p.hand = append(p.hand, card)
}

// Hand returns a shallow copy of the participant's hand
func (p *Participant) Hand() []*deck.Card {
	return append([]*deck.Card{}, p.hand...)
}

// ClearHand removes all cards from the participant's hand
func (p *Participant) ClearHand() {
	p.hand = make([]*deck.Card, 0, 3)
	p.revealed = nil
}

// HasCard returns the card from the hand matching the specified card
func (p *Participant) HasCard(card *deck.Card) (*deck.Card, bool) {
	for _, c := range p.hand {
		if c.Equal(card) {
			return c, true
		}
	}

	return nil, false
}
