package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/simulator"
)

func fixedNow() time.Time {
	return time.Unix(0, 123456789)
}

func smallReport(t *testing.T) *simulator.Report {
	t.Helper()
	cfg := config.Default()
	cfg.Simulation.Hands = 500
	cfg.Simulation.Workers = 2
	cfg.Simulation.Seed = 3

	sc := cfg.SimulatorConfig()
	sc.Clock = quartz.NewMock(t)
	report, err := simulator.New(sc).Run()
	require.NoError(t, err)
	return report
}

func TestSimulateApplyOverrides(t *testing.T) {
	seed := int64(77)
	cmd := SimulateCmd{Hands: 1000, Workers: 3, Seed: &seed, Bet: "25", Bankroll: "5000.50", Progress: 10}
	cfg := config.Default()

	require.NoError(t, cmd.apply(cfg, fixedNow))
	assert.Equal(t, 1000, cfg.Simulation.Hands)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, int64(77), cfg.Simulation.Seed)
	assert.Equal(t, money.FromDollars(25), cfg.Simulation.BaseBet)
	assert.Equal(t, money.MustParse("5000.50"), cfg.Simulation.InitialBankroll)
	assert.Equal(t, 10, cfg.Simulation.ProgressEvery)
}

func TestSimulateApplySeed(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, (&SimulateCmd{}).apply(cfg, fixedNow))
	assert.Equal(t, fixedNow().UnixNano(), cfg.Simulation.Seed, "no seed anywhere picks a time based one")

	cfg = config.Default()
	cfg.Simulation.Seed = 9
	require.NoError(t, (&SimulateCmd{}).apply(cfg, fixedNow))
	assert.Equal(t, int64(9), cfg.Simulation.Seed, "config seed is kept")

	zero := int64(0)
	cfg = config.Default()
	cfg.Simulation.Seed = 9
	require.NoError(t, (&SimulateCmd{Seed: &zero}).apply(cfg, fixedNow))
	assert.Zero(t, cfg.Simulation.Seed, "explicit flag wins")
}

func TestSimulateApplyBadMoney(t *testing.T) {
	err := (&SimulateCmd{Bet: "10.001"}).apply(config.Default(), fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bet")
	assert.ErrorIs(t, err, game.ErrInvalidBet)

	err = (&SimulateCmd{Bankroll: "lots"}).apply(config.Default(), fixedNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrNotCurrency)
}

func TestExportFormat(t *testing.T) {
	for _, path := range []string{"out.json", "OUT.CSV", "dir/report.csv"} {
		_, err := exportFormat(path)
		assert.NoError(t, err, path)
	}
	_, err := exportFormat("report.xml")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestWriteReport(t *testing.T) {
	report := smallReport(t)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, report))
	out := buf.String()

	for _, want := range []string{
		"Blackjack simulation",
		report.ID.String(),
		"500 (2 workers, seed 3)",
		"6 decks, 80% penetration, H17, DAS, early surrender, blackjack pays 1.5:1",
		"House edge",
		"Percentiles",
		"plain",
	} {
		assert.Contains(t, out, want)
	}
}

func TestExportFiles(t *testing.T) {
	report := smallReport(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "report.csv")
	require.NoError(t, export(csvPath, report))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, report.Hands+1)
	assert.Equal(t, "round,net", lines[0])

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, export(jsonPath, report))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(500), got["hands"])
	assert.Equal(t, report.TotalWagered.String(), got["total_wagered"])
	assert.Contains(t, got, "percentiles")
	assert.Contains(t, got, "rules")
	assert.NotContains(t, got, "NetResults")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234,567.50", formatMoney(money.MustParse("1234567.50")))
	assert.Equal(t, "$0.00", formatMoney(money.Zero))
	assert.Contains(t, styledMoney(money.FromDollars(10)), "+$10.00")
	assert.Contains(t, styledMoney(money.MustParse("-10.25")), "-$10.25")
}
