package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Suits never affect blackjack play.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in deck order.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Suits lists every suit.
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Points returns the blackjack point value with aces counted low.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 1
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// IsTen reports whether the rank is worth ten points (T, J, Q, K).
func (r Rank) IsTen() bool {
	return r >= Ten && r <= King
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseRank parses a single rank character. "10" is accepted as Ten.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	case "T", "10":
		return Ten, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit: %c", c)
}

// ParseCard parses a card such as "As", "Td" or "10h".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %s", s)
	}
	rank, err := ParseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace separated list of cards, e.g. "As Kd 7c".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
