package config

import (
	"io"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/blackjacksim/internal/money"
)

// WriteHCL renders the configuration in the same format Load reads, with
// every attribute spelled out.
func (c *Config) WriteHCL(w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	rules := root.AppendNewBlock("rules", nil).Body()
	r := c.Rules
	rules.SetAttributeValue("decks", cty.NumberIntVal(int64(r.Decks)))
	rules.SetAttributeValue("penetration", floatVal(r.Penetration))
	rules.SetAttributeValue("max_splits", cty.NumberIntVal(int64(r.MaxSplits)))
	rules.SetAttributeValue("resplit_aces", cty.BoolVal(r.AllowResplitAces))
	rules.SetAttributeValue("double_after_split", cty.BoolVal(r.AllowDoubleAfterSplit))
	rules.SetAttributeValue("surrender", cty.BoolVal(r.AllowSurrender))
	rules.SetAttributeValue("early_surrender", cty.BoolVal(r.EarlySurrender))
	rules.SetAttributeValue("insurance", cty.BoolVal(r.InsuranceOffered))
	rules.SetAttributeValue("even_money", cty.BoolVal(r.EvenMoneyOffered))
	rules.SetAttributeValue("dealer_hits_soft_17", cty.BoolVal(r.DealerHitsSoft17))
	rules.SetAttributeValue("min_bet", moneyVal(r.MinBet))
	rules.SetAttributeValue("max_bet", moneyVal(r.MaxBet))
	rules.SetAttributeValue("blackjack_payout", floatVal(r.BlackjackPayout))
	rules.SetAttributeValue("insurance_payout", floatVal(r.InsurancePayout))

	root.AppendNewline()

	sim := root.AppendNewBlock("simulation", nil).Body()
	s := c.Simulation
	sim.SetAttributeValue("hands", cty.NumberIntVal(int64(s.Hands)))
	sim.SetAttributeValue("workers", cty.NumberIntVal(int64(s.Workers)))
	sim.SetAttributeValue("initial_bankroll", moneyVal(s.InitialBankroll))
	sim.SetAttributeValue("base_bet", moneyVal(s.BaseBet))
	sim.SetAttributeValue("seed", cty.NumberIntVal(s.Seed))
	sim.SetAttributeValue("progress_every", cty.NumberIntVal(int64(s.ProgressEvery)))

	_, err := f.WriteTo(w)
	return err
}

// floatVal goes through the shortest decimal string so 0.8 is written as
// 0.8 and not its binary expansion.
func floatVal(f float64) cty.Value {
	return cty.MustParseNumberVal(strconv.FormatFloat(f, 'f', -1, 64))
}

func moneyVal(a money.Amount) cty.Value {
	return cty.MustParseNumberVal(a.String())
}
