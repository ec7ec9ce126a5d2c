package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/simulator"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
rules {
  decks               = 2
  penetration         = 0.65
  dealer_hits_soft_17 = false
  early_surrender     = false
  min_bet             = 25
  max_bet             = 1000.50
  blackjack_payout    = 1.2
}

simulation {
  hands            = 5000
  workers          = 4
  initial_bankroll = 2500.25
  seed             = 99
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := game.DefaultRules()
	want.Decks = 2
	want.Penetration = 0.65
	want.DealerHitsSoft17 = false
	want.EarlySurrender = false
	want.MinBet = money.FromDollars(25)
	want.MaxBet = money.MustParse("1000.50")
	want.BlackjackPayout = 1.2
	assert.Equal(t, want, cfg.Rules)

	assert.Equal(t, Simulation{
		Hands:           5000,
		Workers:         4,
		InitialBankroll: money.MustParse("2500.25"),
		Seed:            99,
	}, cfg.Simulation)
	assert.NoError(t, cfg.Validate())
}

func TestParsePartialBlocks(t *testing.T) {
	cfg, err := Parse([]byte(`simulation { hands = 10 }`), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultRules(), cfg.Rules)
	assert.Equal(t, 10, cfg.Simulation.Hands)
	assert.Equal(t, simulator.DefaultInitialBankroll, cfg.Simulation.InitialBankroll)

	cfg, err = Parse([]byte(`rules { surrender = false }`), "inline.hcl")
	require.NoError(t, err)
	assert.False(t, cfg.Rules.AllowSurrender)
	assert.Equal(t, DefaultHands, cfg.Simulation.Hands)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `rules {`, "failed to parse HCL file"},
		{"unknown attribute", `rules { colour = "red" }`, "failed to decode HCL"},
		{"wrong type", `simulation { hands = "lots" }`, "failed to decode HCL"},
		{"sub-cent bet", `rules { min_bet = 10.005 }`, "rules.min_bet"},
		{"sub-cent bankroll", `simulation { initial_bankroll = 0.001 }`, "simulation.initial_bankroll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSubCentIsCurrencyError(t *testing.T) {
	_, err := Parse([]byte(`simulation { base_bet = 10.001 }`), "bad.hcl")
	assert.ErrorIs(t, err, money.ErrNotCurrency)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Workers = -1
	cfg.Simulation.Hands = 0
	cfg.Rules.Decks = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers cannot be negative")
	assert.Contains(t, err.Error(), "hands must be positive")
	assert.Contains(t, err.Error(), "rules:")
}

func TestSimulatorConfig(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Seed = 5

	sc := cfg.SimulatorConfig()
	assert.Equal(t, DefaultHands, sc.Hands)
	assert.Equal(t, cfg.Rules.MinBet, sc.BaseBet)
	assert.Equal(t, int64(5), sc.Seed)
	assert.Zero(t, sc.Workers)

	cfg.Simulation.BaseBet = money.FromDollars(50)
	assert.Equal(t, money.FromDollars(50), cfg.SimulatorConfig().BaseBet)
}

func TestWriteHCLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Rules.Penetration = 0.8
	cfg.Rules.MinBet = money.MustParse("12.50")
	cfg.Rules.DealerHitsSoft17 = false
	cfg.Simulation.Workers = 3
	cfg.Simulation.Seed = 1_760_000_000_000_000_000

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteHCL(&buf))

	out := buf.String()
	assert.Contains(t, out, "rules {")
	assert.Contains(t, out, "simulation {")
	assert.Regexp(t, `penetration\s+= 0.8\n`, out)
	assert.Regexp(t, `min_bet\s+= 12.5\n`, out)

	back, err := Parse(buf.Bytes(), "roundtrip.hcl")
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "blackjack.example.hcl"))
	require.NoError(t, err)

	want := Default()
	want.Simulation.ProgressEvery = 100_000
	assert.Equal(t, want, cfg)
}
