// Package simulator plays large batches of blackjack rounds under a fixed
// strategy and reduces them into a Report.
package simulator

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/strategy"
)

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration. Unset fields
// take their defaults; the result is validated when Run is called.
func New(config Config) *Simulator {
	return &Simulator{config: config.withDefaults()}
}

// Config returns the effective configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Run plays every round and returns the reduced report. Hands are split
// evenly across workers, the first workers taking one extra when the split
// is uneven. The batch always runs to completion.
func (s *Simulator) Run() (*Report, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	workers := min(cfg.Workers, cfg.Hands)
	perWorker, remainder := cfg.Hands/workers, cfg.Hands%workers

	batch := BatchInfo{ID: uuid.New(), Hands: cfg.Hands, Workers: workers, Seed: cfg.Seed}
	cfg.Observer.OnBatchStart(batch)
	cfg.Logger.Debug("Starting workers", "workers", workers, "per_worker", perWorker, "remainder", remainder)
	start := cfg.Clock.Now()

	results := make([]*workerResult, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}

		g.Go(func() error {
			res, err := s.runWorker(w, hands)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = res
			cfg.Observer.OnWorkerComplete(res.summary())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := reduce(results)
	report.ID = batch.ID
	report.Seed = cfg.Seed
	report.Rules = cfg.Rules
	report.BaseBet = cfg.BaseBet
	report.Elapsed = cfg.Clock.Since(start)

	if err := report.stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	cfg.Observer.OnBatchComplete(report)
	return report, nil
}

// runWorker plays hands rounds with a private shoe and player. The shoe is
// reshuffled at the cut card and the bankroll reseeded when it can no
// longer cover the base bet.
func (s *Simulator) runWorker(id, hands int) (*workerResult, error) {
	cfg := s.config
	shoe := deck.NewShoe(cfg.Rules.Decks, cfg.Rules.Penetration, randutil.ForWorker(cfg.Seed, id))
	player := game.NewPlayer(fmt.Sprintf("worker-%d", id), cfg.InitialBankroll, cfg.Clock)
	res := newWorkerResult(id, hands)
	initialShuffles := shoe.Reshuffles()
	scratch := make([]deck.Rank, 0, 8)

	for n := 0; n < hands; n++ {
		if player.Bankroll < cfg.BaseBet {
			player.ResetBankroll(cfg.InitialBankroll)
			res.bankrollResets++
		}
		if shoe.PastCut() {
			shoe.Reshuffle()
		}

		round := game.NewRound(cfg.Rules, player, shoe)
		result, err := playRound(round, cfg.BaseBet, cfg.Strategy, scratch)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n+1, err)
		}
		res.add(result)

		if cfg.ProgressEvery > 0 && (n+1)%cfg.ProgressEvery == 0 {
			cfg.Observer.OnWorkerProgress(WorkerProgress{Worker: id, Done: n + 1, Total: hands})
		}
	}

	res.reshuffles = shoe.Reshuffles() - initialShuffles
	return res, nil
}

// playRound plays one round to completion. Each hand, including hands
// created by splits, is played until it has no legal moves, the strategy
// stands or a move cannot be applied.
func playRound(round *game.Round, bet money.Amount, strat strategy.Func, scratch []deck.Rank) (*game.RoundResult, error) {
	if err := round.StartRound(bet); err != nil {
		return nil, err
	}
	if res, ok := round.Result(); ok {
		return res, nil
	}

	upcard, _ := round.DealerUpcard()
	for i := 0; i < len(round.Hands()); i++ {
		for {
			valid := round.ValidMoves(i)
			if valid.Empty() {
				break
			}
			action := strat(round.Hands()[i].Ranks(scratch[:0]), upcard.Rank)
			move := ChooseMove(action, valid)
			if move == game.MoveStand {
				break
			}
			ok, err := round.Execute(move, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
	}

	return round.FinishRound()
}

// ChooseMove turns a strategy action into a move from valid. Conditional
// actions fall back to their second choice, split and surrender fall back
// to hit, and anything that still is not legal becomes stand. Insurance and
// even money are never chosen.
func ChooseMove(action strategy.Action, valid game.MoveSet) game.Move {
	pick := func(preferred, fallback game.Move) game.Move {
		if valid.Has(preferred) {
			return preferred
		}
		if valid.Has(fallback) {
			return fallback
		}
		return game.MoveStand
	}

	switch action {
	case strategy.Stand:
		return game.MoveStand
	case strategy.Split, strategy.SplitOrHit:
		return pick(game.MoveSplit, game.MoveHit)
	case strategy.Double, strategy.DoubleOrHit:
		return pick(game.MoveDouble, game.MoveHit)
	case strategy.DoubleOrStand:
		return pick(game.MoveDouble, game.MoveStand)
	case strategy.Surrender, strategy.SurrenderOrHit:
		return pick(game.MoveSurrender, game.MoveHit)
	default:
		return pick(game.MoveHit, game.MoveStand)
	}
}
