package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjacksim/internal/money"
)

// Rules is the table configuration. A Round never modifies its Rules.
type Rules struct {
	Penetration           float64 // fraction of the shoe dealt before the cut card
	MaxSplits             int     // splits allowed per round
	AllowResplitAces      bool
	AllowDoubleAfterSplit bool
	AllowSurrender        bool
	EarlySurrender        bool // surrender offered before the dealer checks for a natural
	InsuranceOffered      bool
	EvenMoneyOffered      bool
	DealerHitsSoft17      bool
	MinBet                money.Amount
	MaxBet                money.Amount
	Decks                 int
	BlackjackPayout       float64 // 1.5 for 3:2
	InsurancePayout       float64 // 2.0 for 2:1
}

// DefaultRules returns a common six-deck shoe game: 3:2 blackjack, dealer
// hits soft 17, double after split, late-in-the-shoe cut at 80%.
func DefaultRules() Rules {
	return Rules{
		Penetration:           0.80,
		MaxSplits:             3,
		AllowResplitAces:      false,
		AllowDoubleAfterSplit: true,
		AllowSurrender:        true,
		EarlySurrender:        true,
		InsuranceOffered:      true,
		EvenMoneyOffered:      true,
		DealerHitsSoft17:      true,
		MinBet:                money.FromDollars(10),
		MaxBet:                money.FromDollars(500),
		Decks:                 6,
		BlackjackPayout:       1.5,
		InsurancePayout:       2.0,
	}
}

// Validate reports every problem with the rules.
func (r Rules) Validate() error {
	var errs []error
	if r.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be at least 1, got %d", r.Decks))
	}
	if r.Penetration <= 0 || r.Penetration > 1 {
		errs = append(errs, fmt.Errorf("penetration must be in (0, 1], got %v", r.Penetration))
	}
	if r.MaxSplits < 0 {
		errs = append(errs, fmt.Errorf("max splits cannot be negative, got %d", r.MaxSplits))
	}
	if r.MinBet <= 0 {
		errs = append(errs, fmt.Errorf("minimum bet must be positive, got %s", r.MinBet))
	}
	if r.MaxBet < r.MinBet {
		errs = append(errs, fmt.Errorf("maximum bet %s is below minimum bet %s", r.MaxBet, r.MinBet))
	}
	if r.BlackjackPayout <= 0 {
		errs = append(errs, fmt.Errorf("blackjack payout must be positive, got %v", r.BlackjackPayout))
	}
	if r.InsurancePayout <= 0 {
		errs = append(errs, fmt.Errorf("insurance payout must be positive, got %v", r.InsurancePayout))
	}
	return errors.Join(errs...)
}

// ParseBet validates a bet given in currency units, e.g. "25.00".
func ParseBet(s string) (money.Amount, error) {
	a, err := money.Parse(s)
	if err != nil {
		return 0, newError(KindInvalidBet, "%v", err)
	}
	return a, nil
}
