package deck

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/lox/blackjacksim/internal/randutil"
)

// CardsPerDeck is the size of a single standard deck.
const CardsPerDeck = 52

// Shoe is a multi-deck card supply with a discard pile. Cards are dealt
// from the tail of the undealt sequence and moved to the discard pile.
//
// Outside of a reshuffle, len(undealt)+len(discard) == decks*52.
type Shoe struct {
	decks       int
	penetration float64
	undealt     []Card
	discard     []Card
	rng         *rand.Rand
	reshuffles  int
}

// NewShoe creates a freshly shuffled shoe. A nil rng seeds from the wall clock.
func NewShoe(decks int, penetration float64, rng *rand.Rand) *Shoe {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	total := decks * CardsPerDeck
	s := &Shoe{
		decks:       decks,
		penetration: penetration,
		undealt:     make([]Card, 0, total),
		discard:     make([]Card, 0, total),
		rng:         rng,
	}
	s.Reshuffle()
	return s
}

// NewStackedShoe creates a shoe that deals the given cards first, in order.
// Every other card of the shoe is placed on the discard pile as if it had
// already been played, so an empty undealt sequence behaves like a shoe that
// is past its penetration limit.
func NewStackedShoe(decks int, penetration float64, cards []Card, rng *rand.Rand) (*Shoe, error) {
	if rng == nil {
		rng = randutil.New(1)
	}
	total := decks * CardsPerDeck
	if len(cards) > total {
		return nil, fmt.Errorf("stacked %d cards into a %d card shoe", len(cards), total)
	}

	remaining := make(map[Card]int, CardsPerDeck)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			remaining[NewCard(suit, rank)] = decks
		}
	}
	for _, c := range cards {
		if remaining[c] == 0 {
			return nil, fmt.Errorf("card %s appears more than %d times", c, decks)
		}
		remaining[c]--
	}

	s := &Shoe{
		decks:       decks,
		penetration: penetration,
		undealt:     make([]Card, 0, total),
		discard:     make([]Card, 0, total),
		rng:         rng,
	}
	for i := len(cards) - 1; i >= 0; i-- {
		s.undealt = append(s.undealt, cards[i])
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := NewCard(suit, rank)
			for n := remaining[c]; n > 0; n-- {
				s.discard = append(s.discard, c)
			}
		}
	}
	return s, nil
}

// Total returns the number of cards in a full shoe.
func (s *Shoe) Total() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks in the shoe.
func (s *Shoe) Decks() int {
	return s.decks
}

// Draw deals the next card. When the undealt sequence is empty the shoe is
// reshuffled if fewer than total*(1-penetration) cards have been discarded;
// otherwise ok is false and the shoe is exhausted.
func (s *Shoe) Draw() (card Card, ok bool) {
	if len(s.undealt) == 0 {
		if !s.reshuffleAllowed(len(s.discard)) {
			return Card{}, false
		}
		s.Reshuffle()
	}
	last := len(s.undealt) - 1
	card = s.undealt[last]
	s.undealt = s.undealt[:last]
	s.discard = append(s.discard, card)
	return card, true
}

// CanDraw reports whether n consecutive draws would all succeed.
func (s *Shoe) CanDraw(n int) bool {
	if n <= len(s.undealt) {
		return true
	}
	return s.reshuffleAllowed(len(s.discard)+len(s.undealt)) && n-len(s.undealt) <= s.Total()
}

func (s *Shoe) reshuffleAllowed(discarded int) bool {
	return float64(discarded) < float64(s.Total())*(1-s.penetration)
}

// PastCut reports whether the cut card has been reached, i.e. at least
// total*penetration cards have been discarded.
func (s *Shoe) PastCut() bool {
	return float64(len(s.discard)) >= float64(s.Total())*s.penetration
}

// Reshuffle clears the discard pile, rebuilds every deck and shuffles.
func (s *Shoe) Reshuffle() {
	s.discard = s.discard[:0]
	s.undealt = s.undealt[:0]
	for d := 0; d < s.decks; d++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.undealt = append(s.undealt, NewCard(suit, rank))
			}
		}
	}
	s.rng.Shuffle(len(s.undealt), func(i, j int) {
		s.undealt[i], s.undealt[j] = s.undealt[j], s.undealt[i]
	})
	s.reshuffles++
}

// Reshuffles returns how many times the shoe has been shuffled, including
// the initial shuffle of NewShoe.
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}

// CardsRemaining returns the number of undealt cards.
func (s *Shoe) CardsRemaining() int {
	return len(s.undealt)
}

// Discarded returns the size of the discard pile.
func (s *Shoe) Discarded() int {
	return len(s.discard)
}
