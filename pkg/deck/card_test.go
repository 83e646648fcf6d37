package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureSuit(t *testing.T) {
	brights := []int{}
	for rank := 1; rank <= 10; rank++ {
		if FeatureSuit(rank) == Bright {
			brights = append(brights, rank)
		}
	}

	assert.Equal(t, []int{1, 3, 8}, brights)
	assert.Equal(t, Yul, FeatureSuit(4))
	assert.Equal(t, Yul, FeatureSuit(9))
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "3광", NewCard(3, Bright).String())
	assert.Equal(t, "10열", NewCard(10, Yul).String())
	assert.Equal(t, "4피", NewCard(4, Pi).String())
	assert.Equal(t, "5띠", NewCard(5, Tti).String())
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("8b").Equal(NewCard(8, Bright)))
	a.False(CardFromString("8b").Equal(CardFromString("8p")))
	a.False(CardFromString("8b").Equal(nil))

	var c *Card
	a.False(c.Equal(CardFromString("1b")))
}

func TestCard_Valid(t *testing.T) {
	tests := []struct {
		card  *Card
		valid bool
	}{
		{&Card{Rank: 1, Suit: Bright}, true},
		{&Card{Rank: 1, Suit: Pi}, true},
		{&Card{Rank: 2, Suit: Bright}, false},
		{&Card{Rank: 9, Suit: Yul}, true},
		{&Card{Rank: 9, Suit: Tti}, false},
		{&Card{Rank: 11, Suit: Pi}, false},
		{&Card{Rank: 0, Suit: Pi}, false},
		{nil, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.valid, test.card.Valid(), "%#v", test.card)
	}
}

func TestParseCard(t *testing.T) {
	card, err := ParseCard("10y")
	assert.NoError(t, err)
	assert.Equal(t, &Card{Rank: 10, Suit: Yul, ID: "10y"}, card)

	card, err = ParseCard("1B")
	assert.NoError(t, err)
	assert.Equal(t, "1b", card.ID)

	for _, bad := range []string{"", "0p", "11p", "3x", "3bb"} {
		_, err = ParseCard(bad)
		assert.ErrorIs(t, err, ErrInvalidCard, bad)
	}
}

func TestCardFromString(t *testing.T) {
	assert.Nil(t, CardFromString(""))
	assert.PanicsWithValue(t, `could not parse card: invalid card: "12p"`, func() {
		CardFromString("12p")
	})
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("1b,3b,4p")
	assert.Equal(t, 3, len(cards))
	assert.Equal(t, "1b,3b,4p", CardsToString(cards))
	assert.Equal(t, 0, len(CardsFromString("")))
	assert.Equal(t, "", CardToString(nil))
}
