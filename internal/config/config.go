// Package config loads table rules and simulation settings from HCL.
//
// A file may contain a rules block, a simulation block, both or neither:
//
//	rules {
//	  decks               = 6
//	  dealer_hits_soft_17 = false
//	  min_bet             = 25
//	}
//
//	simulation {
//	  hands   = 1000000
//	  workers = 8
//	}
//
// Every attribute is optional and takes its default when omitted.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/simulator"
)

// DefaultHands is the batch size when neither the file nor the command line
// sets one.
const DefaultHands = 1_000_000

// Config is the effective configuration after defaults are applied.
type Config struct {
	Rules      game.Rules
	Simulation Simulation
}

// Simulation holds batch settings. Zero Workers means one per CPU, zero
// BaseBet means the table minimum and zero Seed means pick one at run time.
type Simulation struct {
	Hands           int
	Workers         int
	InitialBankroll money.Amount
	BaseBet         money.Amount
	Seed            int64
	ProgressEvery   int
}

// fileConfig mirrors the HCL layout. Pointer fields distinguish an omitted
// attribute from an explicit zero.
type fileConfig struct {
	Rules      *rulesBlock      `hcl:"rules,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type rulesBlock struct {
	Decks            *int     `hcl:"decks,optional"`
	Penetration      *float64 `hcl:"penetration,optional"`
	MaxSplits        *int     `hcl:"max_splits,optional"`
	ResplitAces      *bool    `hcl:"resplit_aces,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	Surrender        *bool    `hcl:"surrender,optional"`
	EarlySurrender   *bool    `hcl:"early_surrender,optional"`
	Insurance        *bool    `hcl:"insurance,optional"`
	EvenMoney        *bool    `hcl:"even_money,optional"`
	DealerHitsSoft17 *bool    `hcl:"dealer_hits_soft_17,optional"`
	MinBet           *float64 `hcl:"min_bet,optional"`
	MaxBet           *float64 `hcl:"max_bet,optional"`
	BlackjackPayout  *float64 `hcl:"blackjack_payout,optional"`
	InsurancePayout  *float64 `hcl:"insurance_payout,optional"`
}

type simulationBlock struct {
	Hands           *int     `hcl:"hands,optional"`
	Workers         *int     `hcl:"workers,optional"`
	InitialBankroll *float64 `hcl:"initial_bankroll,optional"`
	BaseBet         *float64 `hcl:"base_bet,optional"`
	Seed            *int64   `hcl:"seed,optional"`
	ProgressEvery   *int     `hcl:"progress_every,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules: game.DefaultRules(),
		Simulation: Simulation{
			Hands:           DefaultHands,
			InitialBankroll: simulator.DefaultInitialBankroll,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source on top of the defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	var errs []error
	if fc.Rules != nil {
		errs = append(errs, fc.Rules.apply(&cfg.Rules)...)
	}
	if fc.Simulation != nil {
		errs = append(errs, fc.Simulation.apply(&cfg.Simulation)...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *rulesBlock) apply(r *game.Rules) []error {
	setInt(&r.Decks, b.Decks)
	setFloat(&r.Penetration, b.Penetration)
	setInt(&r.MaxSplits, b.MaxSplits)
	setBool(&r.AllowResplitAces, b.ResplitAces)
	setBool(&r.AllowDoubleAfterSplit, b.DoubleAfterSplit)
	setBool(&r.AllowSurrender, b.Surrender)
	setBool(&r.EarlySurrender, b.EarlySurrender)
	setBool(&r.InsuranceOffered, b.Insurance)
	setBool(&r.EvenMoneyOffered, b.EvenMoney)
	setBool(&r.DealerHitsSoft17, b.DealerHitsSoft17)
	setFloat(&r.BlackjackPayout, b.BlackjackPayout)
	setFloat(&r.InsurancePayout, b.InsurancePayout)

	var errs []error
	errs = appendErr(errs, setMoney(&r.MinBet, b.MinBet, "rules.min_bet"))
	errs = appendErr(errs, setMoney(&r.MaxBet, b.MaxBet, "rules.max_bet"))
	return errs
}

func (b *simulationBlock) apply(s *Simulation) []error {
	setInt(&s.Hands, b.Hands)
	setInt(&s.Workers, b.Workers)
	setInt(&s.ProgressEvery, b.ProgressEvery)
	if b.Seed != nil {
		s.Seed = *b.Seed
	}

	var errs []error
	errs = appendErr(errs, setMoney(&s.InitialBankroll, b.InitialBankroll, "simulation.initial_bankroll"))
	errs = appendErr(errs, setMoney(&s.BaseBet, b.BaseBet, "simulation.base_bet"))
	return errs
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setMoney(dst *money.Amount, v *float64, name string) error {
	if v == nil {
		return nil
	}
	a, err := money.FromFloat(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = a
	return nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}

// Validate checks the rules and the simulation settings together.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative, got %d", c.Simulation.Workers))
	}
	if err := c.SimulatorConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SimulatorConfig converts the file settings into a simulator.Config. The
// caller supplies the strategy, observer, logger and clock; zero workers
// is left for the simulator to default.
func (c *Config) SimulatorConfig() simulator.Config {
	cfg := simulator.Config{
		Hands:           c.Simulation.Hands,
		Workers:         c.Simulation.Workers,
		Rules:           c.Rules,
		InitialBankroll: c.Simulation.InitialBankroll,
		BaseBet:         c.Simulation.BaseBet,
		Seed:            c.Simulation.Seed,
		ProgressEvery:   c.Simulation.ProgressEvery,
	}
	if cfg.BaseBet == 0 {
		cfg.BaseBet = cfg.Rules.MinBet
	}
	return cfg
}
