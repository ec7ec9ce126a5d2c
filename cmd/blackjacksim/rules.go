package main

import (
	"os"
)

type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.WriteHCL(os.Stdout)
}
