package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCard is returned when a card code cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents the class of a hwatu card
type Suit string

// suit constants
const (
	Bright Suit = "bright"
	Yul    Suit = "yul"
	Tti    Suit = "tti"
	Pi     Suit = "pi"
)

// featureSuits is the suit of the non-junk card of each month
var featureSuits = map[int]Suit{
	1:  Bright,
	2:  Yul,
	3:  Bright,
	4:  Yul,
	5:  Yul,
	6:  Yul,
	7:  Yul,
	8:  Bright,
	9:  Yul,
	10: Yul,
}

// FeatureSuit returns the suit of the feature card for the rank
func FeatureSuit(rank int) Suit {
	return featureSuits[rank]
}

// Card is an individual hwatu card
type Card struct {
	Rank int    `json:"rank"`
	Suit Suit   `json:"suit"`
	ID   string `json:"id"`
}

// NewCard returns a card with its ID populated
func NewCard(rank int, suit Suit) *Card {
	c := &Card{Rank: rank, Suit: suit}
	c.ID = CardToString(c)
	return c
}

func (c *Card) String() string {
	var suit string
	switch c.Suit {
	case Bright:
		suit = "광"
	case Yul:
		suit = "열"
	case Tti:
		suit = "띠"
	case Pi:
		suit = "피"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%d%s", c.Rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	if c == nil || card == nil {
		return false
	}

	return c.Suit == card.Suit && c.Rank == card.Rank
}

// IsBright returns true if the card is a bright (gwang)
func (c *Card) IsBright() bool {
	return c.Suit == Bright
}

// Valid returns true if the card exists in a seotda deck
func (c *Card) Valid() bool {
	if c == nil || c.Rank < 1 || c.Rank > 10 {
		return false
	}

	return c.Suit == Pi || c.Suit == featureSuits[c.Rank]
}

var cardRx = regexp.MustCompile(`(?i)^(10|[1-9])([bytp])\z`)

// ParseCard returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 1 and <= 10 and suit in [bytp]
func ParseCard(s string) (*Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "b":
		suit = Bright
	case "y":
		suit = Yul
	case "t":
		suit = Tti
	case "p":
		suit = Pi
	}

	return NewCard(rank, suit), nil
}

// CardFromString is like ParseCard, but panics on a bad card. It is meant for tests.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	card, err := ParseCard(s)
	if err != nil {
		panic(fmt.Sprintf("could not parse card: %v", err))
	}

	return card
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (3 bright) to a string (3b)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var suit string
	switch card.Suit {
	case Bright:
		suit = "b"
	case Yul:
		suit = "y"
	case Tti:
		suit = "t"
	case Pi:
		suit = "p"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 1b,3b,4p,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
