package simulator

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/strategy"
)

// DefaultInitialBankroll is the bankroll each worker starts, and is
// reseeded, with.
var DefaultInitialBankroll = money.FromDollars(100_000)

// Config holds configuration for running simulations
type Config struct {
	Hands           int // rounds to play across all workers
	Workers         int // defaults to runtime.NumCPU()
	Rules           game.Rules
	InitialBankroll money.Amount
	BaseBet         money.Amount // defaults to Rules.MinBet
	Seed            int64
	Strategy        strategy.Func // defaults to strategy.Basic
	Observer        Observer
	Logger          *log.Logger
	Clock           quartz.Clock
	ProgressEvery   int // rounds between progress events per worker, 0 disables
}

// withDefaults fills every unset field.
func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.InitialBankroll == 0 {
		c.InitialBankroll = DefaultInitialBankroll
	}
	if c.BaseBet == 0 {
		c.BaseBet = c.Rules.MinBet
	}
	if c.Strategy == nil {
		c.Strategy = strategy.Basic
	}
	if c.Observer == nil {
		c.Observer = NullObserver{}
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return c
}

// Validate reports every problem with a defaulted configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Hands <= 0 {
		errs = append(errs, fmt.Errorf("hands must be positive, got %d", c.Hands))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	if c.BaseBet < c.Rules.MinBet || c.BaseBet > c.Rules.MaxBet {
		errs = append(errs, fmt.Errorf("base bet %s outside table limits %s-%s", c.BaseBet, c.Rules.MinBet, c.Rules.MaxBet))
	}
	if c.InitialBankroll < c.BaseBet {
		errs = append(errs, fmt.Errorf("initial bankroll %s is below the base bet %s", c.InitialBankroll, c.BaseBet))
	}
	if c.ProgressEvery < 0 {
		errs = append(errs, fmt.Errorf("progress interval cannot be negative, got %d", c.ProgressEvery))
	}
	return errors.Join(errs...)
}
