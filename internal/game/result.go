package game

import "github.com/lox/blackjacksim/internal/money"

// Outcome is the settlement of one player hand.
type Outcome uint8

const (
	OutcomeWin Outcome = iota
	OutcomeLose
	OutcomePush
	OutcomeSurrender
	OutcomeBlackjack
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeSurrender:
		return "surrender"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// HandResult is how one hand settled. Payout is the amount credited back to
// the bankroll (stake included); Net is Payout minus the hand's full stake.
type HandResult struct {
	Outcome Outcome
	Payout  money.Amount
	Net     money.Amount
	Early   bool // settled by surrender or even money before resolution
}

// RoundResult is the immutable record of a completed round.
type RoundResult struct {
	Hands        []HandResult
	TotalNet     money.Amount // net of every hand plus insurance
	InsuranceNet money.Amount
	Insured      int
	InsuranceWon int
	DealerHand   Hand   // final dealer cards
	PlayerHands  []Hand // final player hands in play order
	Dead         bool   // settled by the dead-hand policy
	Wagers       WagerStats
	Splits       int
	Doubles      int
	Events       []RoundEvent // every step of the round in order
}
