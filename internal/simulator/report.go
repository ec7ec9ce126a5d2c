package simulator

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/statistics"
)

// Outcomes counts settled player hands. Blackjacks are also counted as wins.
type Outcomes struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Pushes     int `json:"pushes"`
	Surrenders int `json:"surrenders"`
	Blackjacks int `json:"blackjacks"`
}

// Settled returns the number of hands settled.
func (o Outcomes) Settled() int {
	return o.Wins + o.Losses + o.Pushes + o.Surrenders
}

func (o *Outcomes) add(x Outcomes) {
	o.Wins += x.Wins
	o.Losses += x.Losses
	o.Pushes += x.Pushes
	o.Surrenders += x.Surrenders
	o.Blackjacks += x.Blackjacks
}

func (o *Outcomes) record(outcome game.Outcome) {
	switch outcome {
	case game.OutcomeBlackjack:
		o.Blackjacks++
		o.Wins++
	case game.OutcomeWin:
		o.Wins++
	case game.OutcomeLose:
		o.Losses++
	case game.OutcomePush:
		o.Pushes++
	case game.OutcomeSurrender:
		o.Surrenders++
	}
}

// Report is the reduced result of a batch. Hands counts rounds; a split
// round contributes several settled hands to Outcomes but one entry to
// NetResults.
type Report struct {
	ID             uuid.UUID      `json:"id"`
	Seed           int64          `json:"seed"`
	Hands          int            `json:"hands"`
	Workers        int            `json:"workers"`
	BaseBet        money.Amount   `json:"base_bet"`
	TotalWagered   money.Amount   `json:"total_wagered"`
	TotalWon       money.Amount   `json:"total_won"`
	TotalLost      money.Amount   `json:"total_lost"`
	Outcomes       Outcomes       `json:"outcomes"`
	Doubles        int            `json:"doubles"`
	Splits         int            `json:"splits"`
	DeadHands      int            `json:"dead_hands"`
	BankrollResets int            `json:"bankroll_resets"`
	Reshuffles     int            `json:"reshuffles"`
	HouseEdge      float64        `json:"house_edge_pct"`
	StdDev         float64        `json:"std_dev"`
	Elapsed        time.Duration  `json:"elapsed_ns"`
	Rules          game.Rules     `json:"-"`
	NetResults     []money.Amount `json:"-"`

	stats *statistics.Statistics
}

// Net returns the overall result for the player.
func (r *Report) Net() money.Amount {
	return r.TotalWon - r.TotalLost
}

// Rate returns n as a percentage of rounds played.
func (r *Report) Rate(n int) float64 {
	if r.Hands == 0 {
		return 0
	}
	return float64(n) / float64(r.Hands) * 100
}

// Statistics returns the distribution of per-round net results.
func (r *Report) Statistics() *statistics.Statistics {
	return r.stats
}

// WriteCSV writes one line per round: its index and net result.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"round", "net"}); err != nil {
		return err
	}
	for i, net := range r.NetResults {
		if err := cw.Write([]string{strconv.Itoa(i + 1), net.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// workerResult is everything one worker accumulates. Workers never share
// one, so no locking is needed.
type workerResult struct {
	worker         int
	nets           []money.Amount
	stats          statistics.Statistics
	outcomes       Outcomes
	wagered        money.Amount
	won            money.Amount
	lost           money.Amount
	doubles        int
	splits         int
	dead           int
	bankrollResets int
	reshuffles     int
}

func newWorkerResult(worker, hands int) *workerResult {
	return &workerResult{
		worker: worker,
		nets:   make([]money.Amount, 0, hands),
		stats:  statistics.Statistics{Values: make([]float64, 0, hands)},
	}
}

func (w *workerResult) add(res *game.RoundResult) {
	net := res.TotalNet
	w.nets = append(w.nets, net)
	w.stats.Add(statistics.Sample{Net: net.Float64(), Kind: kindOf(res)})

	w.wagered += res.Wagers.Total()
	if net > 0 {
		w.won += net
	} else {
		w.lost -= net
	}
	for _, h := range res.Hands {
		w.outcomes.record(h.Outcome)
	}
	w.doubles += res.Doubles
	w.splits += res.Splits
	if res.Dead {
		w.dead++
	}
}

func (w *workerResult) summary() WorkerSummary {
	return WorkerSummary{
		Worker:         w.worker,
		Hands:          len(w.nets),
		Outcomes:       w.outcomes,
		BankrollResets: w.bankrollResets,
		Reshuffles:     w.reshuffles,
	}
}

// kindOf picks the statistics bucket for a round.
func kindOf(res *game.RoundResult) statistics.Kind {
	switch {
	case res.Insured > 0:
		return statistics.KindInsured
	case res.Splits > 0:
		return statistics.KindSplit
	case res.Doubles > 0:
		return statistics.KindDoubled
	}
	for _, h := range res.Hands {
		switch h.Outcome {
		case game.OutcomeSurrender:
			return statistics.KindSurrendered
		case game.OutcomeBlackjack:
			return statistics.KindBlackjack
		}
	}
	return statistics.KindPlain
}

// reduce combines worker results in worker order. Money totals are exact
// integer sums so the order only matters for the float statistics.
func reduce(results []*workerResult) *Report {
	r := &Report{Workers: len(results), stats: &statistics.Statistics{}}

	total := 0
	for _, w := range results {
		total += len(w.nets)
	}
	r.NetResults = make([]money.Amount, 0, total)
	r.stats.Values = make([]float64, 0, total)

	for _, w := range results {
		r.NetResults = append(r.NetResults, w.nets...)
		r.stats.Merge(&w.stats)
		r.Outcomes.add(w.outcomes)
		r.TotalWagered += w.wagered
		r.TotalWon += w.won
		r.TotalLost += w.lost
		r.Doubles += w.doubles
		r.Splits += w.splits
		r.DeadHands += w.dead
		r.BankrollResets += w.bankrollResets
		r.Reshuffles += w.reshuffles
	}

	r.Hands = len(r.NetResults)
	if r.TotalWagered > 0 {
		r.HouseEdge = (r.TotalLost - r.TotalWon).Float64() / r.TotalWagered.Float64() * 100
	}
	r.StdDev = r.stats.StdDev()
	return r
}
