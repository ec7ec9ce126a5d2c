package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/blackjacksim/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" env:"BJSIM_CONFIG" type:"path" help:"HCL config file; a missing file means built-in defaults"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" env:"BJSIM_LOG_LEVEL" help:"Log level (debug|info|warn|error)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" default:"withargs" help:"Run a Monte Carlo simulation of basic strategy"`
	Strategy StrategyCmd      `cmd:"" help:"Print the basic strategy tables"`
	Rules    RulesCmd         `cmd:"" help:"Print the effective configuration as HCL"`
}

func main() {
	// A .env file is optional; BJSIM_* variables feed the env tags above.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjacksim"),
		kong.Description("Blackjack round engine and parallel Monte Carlo simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) logger() (*log.Logger, error) {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	return cfg, nil
}
