package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/stretchr/testify/assert"
)

func handOf(cards string) *Hand {
	h := NewHand(money.FromDollars(10))
	h.Cards = append(h.Cards, deck.MustParseCards(cards)...)
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		cards string
		value int
		soft  bool
	}{
		{"Ts 7h", 17, false},
		{"As 6h", 17, true},
		{"As Ah", 12, true},
		{"As Ah 9c", 21, true},
		{"As 6h Tc", 17, false},
		{"As As As As 7d", 21, true},
		{"Ks Qh", 20, false},
		{"Ks Qh 5d", 25, false},
		{"As Kd", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := handOf(tt.cards)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.soft, h.IsSoft())
			assert.Equal(t, tt.value > 21, h.IsBusted())
		})
	}
}

func TestHandBlackjack(t *testing.T) {
	assert.True(t, handOf("As Kd").IsBlackjack())
	assert.False(t, handOf("7s 7d 7c").IsBlackjack(), "three card 21")

	split := handOf("As Kd")
	split.IsSplit = true
	assert.False(t, split.IsBlackjack(), "split hand")

	even := handOf("As Kd")
	even.TookEvenMoney = true
	assert.False(t, even.IsBlackjack())
}

func TestHandIsDone(t *testing.T) {
	assert.False(t, handOf("Ts 6h").IsDone())
	assert.True(t, handOf("Ts 6h 9c").IsDone(), "bust")
	assert.True(t, handOf("As Kd").IsDone(), "natural")

	doubled := handOf("5s 6h")
	doubled.IsDoubled = true
	assert.False(t, doubled.IsDone())
	doubled.Cards = append(doubled.Cards, deck.MustParseCards("2c")...)
	assert.True(t, doubled.IsDone(), "doubled hand with its one card")

	aces := handOf("As")
	aces.SplitFromAces = true
	assert.False(t, aces.IsDone())
	assert.True(t, aces.AddCard(deck.MustParseCards("3d")[0]))
	assert.True(t, aces.IsDone(), "split ace after one card")
	assert.False(t, aces.AddCard(deck.MustParseCards("4d")[0]))
	assert.Len(t, aces.Cards, 2)

	surrendered := handOf("Ts 6h")
	surrendered.IsSurrendered = true
	assert.True(t, surrendered.IsDone())
}

func TestHandCanSplit(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, handOf("8s 8h").CanSplit(rules))
	assert.False(t, handOf("8s 9h").CanSplit(rules))
	assert.False(t, handOf("Ks Qh").CanSplit(rules), "ranks differ even though both count ten")
	assert.False(t, handOf("8s 8h 8d").CanSplit(rules))

	aces := handOf("As Ah")
	assert.True(t, aces.CanSplit(rules))
	aces.IsSplit = true
	aces.SplitFromAces = true
	assert.False(t, aces.CanSplit(rules))
	rules.AllowResplitAces = true
	assert.True(t, aces.CanSplit(rules))
}

func TestHandCanDoubleAndSurrender(t *testing.T) {
	rules := DefaultRules()
	h := handOf("5s 6h")
	assert.True(t, h.CanDouble(rules))
	assert.True(t, h.CanSurrender(rules))

	h.IsSplit = true
	assert.True(t, h.CanDouble(rules))
	assert.False(t, h.CanSurrender(rules), "no surrender after split")

	rules.AllowDoubleAfterSplit = false
	assert.False(t, h.CanDouble(rules))

	rules = DefaultRules()
	rules.AllowSurrender = false
	assert.False(t, handOf("Ts 6h").CanSurrender(rules))
	assert.False(t, handOf("5s 6h 2c").CanDouble(rules))
}

func TestHandCanTakeEvenMoney(t *testing.T) {
	rules := DefaultRules()
	ace := deck.MustParseCards("Ac")[0]
	ten := deck.MustParseCards("Tc")[0]

	assert.True(t, handOf("As Kd").CanTakeEvenMoney(rules, ace))
	assert.False(t, handOf("As Kd").CanTakeEvenMoney(rules, ten))
	assert.False(t, handOf("Ts 9d").CanTakeEvenMoney(rules, ace))

	rules.EvenMoneyOffered = false
	assert.False(t, handOf("As Kd").CanTakeEvenMoney(rules, ace))
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "A♠ K♦ - BLACKJACK", handOf("As Kd").String())
	assert.Equal(t, "T♠ 6♥ - Current: 16", handOf("Ts 6h").String())

	h := handOf("8s 3d")
	h.IsSplit = true
	assert.Equal(t, "8♠ 3♦ - Current: 11 (Split)", h.String())
}
