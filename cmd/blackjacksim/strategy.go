package main

import (
	"os"

	"github.com/lox/blackjacksim/internal/strategy"
)

type StrategyCmd struct{}

func (c *StrategyCmd) Run() error {
	return strategy.WriteTables(os.Stdout)
}
