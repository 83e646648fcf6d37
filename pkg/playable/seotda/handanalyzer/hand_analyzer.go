package handanalyzer

import (
	"errors"
	"fmt"

	"seotda-server/pkg/deck"
)

// ErrHandSize is returned when a hand does not have the required number of cards
var ErrHandSize = errors.New("wrong number of cards for hand")

// ErrDuplicateCard is returned when the same card appears twice in a hand
var ErrDuplicateCard = errors.New("duplicate card in hand")

// Hand is the evaluation of two cards
type Hand struct {
	Category Category     `json:"category"`
	Kind     Kind         `json:"kind"`
	Value    int          `json:"value"`
	Label    string       `json:"label"`
	Cards    []*deck.Card `json:"cards"`
}

type special struct {
	kind  Kind
	value int
}

// specials are keyed by low rank * 100 + high rank
var specials = map[int]special{
	102: {Ali, 6},
	104: {Doksa, 5},
	109: {Gupping, 4},
	110: {Jangpping, 3},
	410: {Jangsa, 2},
	406: {Seryuk, 1},
	409: {Gusa, 0},
	407: {Amhaengeosa, 0},
	307: {Ttaengjabi, 0},
}

// Score evaluates exactly two cards
func Score(cards []*deck.Card) (*Hand, error) {
	if len(cards) != 2 {
		return nil, fmt.Errorf("%w: expected 2, got %d", ErrHandSize, len(cards))
	}

	a, b := cards[0], cards[1]
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil card", ErrHandSize)
	}

	if a.Equal(b) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, deck.CardToString(a))
	}

	low, high := a, b
	if low.Rank > high.Rank {
		low, high = high, low
	}

	h := &Hand{Cards: []*deck.Card{a, b}}

	if low.IsBright() && high.IsBright() && low.Rank != high.Rank {
		h.Category = Gwangttang
		switch {
		case low.Rank == 3 && high.Rank == 8:
			h.Value = 4
		case low.Rank == 1 && high.Rank == 8:
			h.Value = 3
		case low.Rank == 1 && high.Rank == 3:
			h.Value = 2
		default:
			h.Value = 1
		}

		if h.Value > 1 {
			h.Label = fmt.Sprintf("%d%d-bright-pair", low.Rank, high.Rank)
		} else {
			h.Label = "bright-pair"
		}

		return h, nil
	}

	if low.Rank == high.Rank {
		h.Category = Ttang
		h.Value = low.Rank
		h.Label = fmt.Sprintf("%d-rank-pair", low.Rank)
		return h, nil
	}

	if s, ok := specials[low.Rank*100+high.Rank]; ok {
		h.Category = Special
		h.Kind = s.kind
		h.Value = s.value
		if s.kind == Gusa && low.Suit == deck.Yul && high.Suit == deck.Yul {
			h.Kind = SillyGusa
		}

		h.Label = h.Kind.String()
		return h, nil
	}

	h.Value = (low.Rank%10 + high.Rank%10) % 10
	if h.Value == 0 {
		h.Category = Mangtong
		h.Label = "mangtong"
	} else {
		h.Category = Kkeut
		h.Label = fmt.Sprintf("%d-kkeut", h.Value)
	}

	return h, nil
}

// effective returns the category and value used when no role reversal applies
func (h *Hand) effective() (Category, int) {
	if h.Kind.IsRoleReversal() {
		return Mangtong, 0
	}

	return h.Category, h.Value
}

// Demoted returns a copy of the hand where a role reversal hand is a plain mangtong
func (h *Hand) Demoted() *Hand {
	if !h.Kind.IsRoleReversal() {
		return h
	}

	cp := *h
	cp.Category = Mangtong
	cp.Kind = None
	cp.Value = 0
	cp.Label = "mangtong"
	return &cp
}

func (h *Hand) String() string {
	return h.Label
}

// Compare compares two hands and returns:
// 1 if a wins, -1 if b wins, and 0 for a tie
func Compare(a, b *Hand) int {
	switch {
	case a.Kind == Amhaengeosa && b.Category == Gwangttang:
		return 1
	case b.Kind == Amhaengeosa && a.Category == Gwangttang:
		return -1
	case a.Kind == Ttaengjabi && b.Category == Ttang:
		return 1
	case b.Kind == Ttaengjabi && a.Category == Ttang:
		return -1
	}

	ca, va := a.effective()
	cb, vb := b.effective()

	switch {
	case ca > cb:
		return 1
	case ca < cb:
		return -1
	case va > vb:
		return 1
	case va < vb:
		return -1
	}

	return 0
}

// PossibleHands returns the three two card hands that can be made from three cards.
// The hands are in the order of the card pairs [0,1], [0,2], [1,2]
func PossibleHands(cards []*deck.Card) ([]*Hand, error) {
	if len(cards) != 3 {
		return nil, fmt.Errorf("%w: expected 3, got %d", ErrHandSize, len(cards))
	}

	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	hands := make([]*Hand, len(pairs))
	for i, pair := range pairs {
		hand, err := Score([]*deck.Card{cards[pair[0]], cards[pair[1]]})
		if err != nil {
			return nil, err
		}

		hands[i] = hand
	}

	return hands, nil
}

// Best returns the index of the hand that wins or ties against every other hand.
// If more than one hand qualifies, tie will be true and index is the first of them.
// If role reversal hands create a cycle, they lose their reversal power and are treated as mangtong.
// Best returns -1 when hands is empty.
func Best(hands []*Hand) (index int, tie bool) {
	if len(hands) == 0 {
		return -1, false
	}

	if idx := unbeaten(hands); len(idx) > 0 {
		return idx[0], len(idx) > 1
	}

	demoted := make([]*Hand, len(hands))
	for i, hand := range hands {
		demoted[i] = hand.Demoted()
	}

	idx := unbeaten(demoted)
	return idx[0], len(idx) > 1
}

func unbeaten(hands []*Hand) []int {
	idx := make([]int, 0, 1)
	for i, hand := range hands {
		lost := false
		for j, other := range hands {
			if i != j && Compare(hand, other) < 0 {
				lost = true
				break
			}
		}

		if !lost {
			idx = append(idx, i)
		}
	}

	return idx
}
