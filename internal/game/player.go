package game

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/money"
)

// WagerStats splits total action by where it came from.
type WagerStats struct {
	Original   money.Amount // initial bets
	Additional money.Amount // splits and doubles
	Insurance  money.Amount
}

// Total returns every amount put at risk.
func (w WagerStats) Total() money.Amount {
	return w.Original + w.Additional + w.Insurance
}

// Add accumulates o into w.
func (w *WagerStats) Add(o WagerStats) {
	w.Original += o.Original
	w.Additional += o.Additional
	w.Insurance += o.Insurance
}

// Stats are a player's running totals across rounds.
type Stats struct {
	HandsPlayed      int
	HandsWon         int
	HandsLost        int
	HandsPushed      int
	HandsSurrendered int
	Blackjacks       int
	Splits           int
	Doubles          int
	InsurancesTaken  int
	InsurancesWon    int
	TotalWon         money.Amount
	TotalLost        money.Amount
	BiggestWin       money.Amount
	BiggestLoss      money.Amount
	Wagers           WagerStats
}

// Metrics are derived from Stats on request and never stored.
type Metrics struct {
	HandsPerHour  float64
	WinRate       float64 // percent of non-surrendered hands won
	AverageBet    money.Amount
	NetProfitLoss money.Amount
	HouseEdge     float64 // percent of total wagered
}

// Player holds the bankroll and statistics that persist across rounds.
// Rounds mutate a Player through their accounting; nothing else should.
type Player struct {
	Name     string
	Bankroll money.Amount
	Hands    []*Hand
	Stats    Stats

	clock        quartz.Clock
	sessionStart time.Time
}

// NewPlayer creates a player. A nil clock uses the real clock.
func NewPlayer(name string, bankroll money.Amount, clock quartz.Clock) *Player {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Player{
		Name:         name,
		Bankroll:     bankroll,
		Hands:        []*Hand{NewHand(0)},
		clock:        clock,
		sessionStart: clock.Now(),
	}
}

// ResetHands replaces the active hands with a single hand staked at bet.
func (p *Player) ResetHands(bet money.Amount) {
	clear(p.Hands)
	p.Hands = append(p.Hands[:0], NewHand(bet))
}

// ResetBankroll sets the bankroll, leaving statistics untouched.
func (p *Player) ResetBankroll(amount money.Amount) {
	p.Bankroll = amount
}

// UpdateStats records a settled hand. It must be called exactly once per
// hand. Results are measured against the original stake.
func (p *Player) UpdateStats(outcome Outcome, payout money.Amount, hand *Hand) {
	net := -hand.OriginalBet
	if payout > 0 {
		net = payout - hand.OriginalBet
	}

	switch outcome {
	case OutcomeWin:
		p.Stats.HandsWon++
		p.Stats.TotalWon += net
		p.Stats.BiggestWin = max(p.Stats.BiggestWin, net)
	case OutcomeLose:
		p.Stats.HandsLost++
		p.Stats.TotalLost += hand.OriginalBet
		p.Stats.BiggestLoss = max(p.Stats.BiggestLoss, hand.OriginalBet)
	case OutcomeBlackjack:
		p.Stats.HandsWon++
		p.Stats.Blackjacks++
		p.Stats.TotalWon += net
		p.Stats.BiggestWin = max(p.Stats.BiggestWin, net)
	case OutcomeSurrender:
		p.Stats.HandsSurrendered++
		p.Stats.TotalLost += hand.OriginalBet - payout
	case OutcomePush:
		p.Stats.HandsPushed++
	}
	p.Stats.HandsPlayed++
}

// WinPercentage returns hands won as a percentage of hands not surrendered.
func (p *Player) WinPercentage() float64 {
	total := p.Stats.HandsPlayed - p.Stats.HandsSurrendered
	if total <= 0 {
		return 0
	}
	return float64(p.Stats.HandsWon) / float64(total) * 100
}

// Metrics computes performance figures from the current statistics.
func (p *Player) Metrics() Metrics {
	m := Metrics{
		WinRate:       p.WinPercentage(),
		NetProfitLoss: p.Stats.TotalWon - p.Stats.TotalLost,
	}
	if elapsed := p.clock.Since(p.sessionStart); elapsed > 0 {
		m.HandsPerHour = float64(p.Stats.HandsPlayed) / elapsed.Hours()
	}
	if p.Stats.HandsPlayed > 0 {
		m.AverageBet = p.Stats.Wagers.Original / money.Amount(p.Stats.HandsPlayed)
	}
	if total := p.Stats.Wagers.Total(); total > 0 {
		m.HouseEdge = (p.Stats.TotalLost - p.Stats.TotalWon).Float64() / total.Float64() * 100
	}
	return m
}
