package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("As 10h Td 7c")
	require.NoError(t, err)
	assert.Equal(t, []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: Ten},
		{Suit: Diamonds, Rank: Ten},
		{Suit: Clubs, Rank: Seven},
	}, cards)

	_, err = ParseCards("1s")
	assert.Error(t, err)
	_, err = ParseCards("Ax")
	assert.Error(t, err)
}

func TestRankPoints(t *testing.T) {
	assert.Equal(t, 1, Ace.Points())
	assert.Equal(t, 10, King.Points())
	assert.Equal(t, 10, Ten.Points())
	assert.Equal(t, 2, Two.Points())
	assert.True(t, Queen.IsTen())
	assert.False(t, Ace.IsTen())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "T♥", NewCard(Hearts, Ten).String())
	assert.Equal(t, "9♣", NewCard(Clubs, Nine).String())
}
