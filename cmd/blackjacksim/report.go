package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/money"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var reportPercentiles = []float64{0.05, 0.25, 0.75, 0.95}

func formatMoney(a money.Amount) string {
	return "$" + humanize.FormatFloat("#,###.##", a.Float64())
}

// styledMoney colours from the player's point of view.
func styledMoney(a money.Amount) string {
	switch {
	case a > 0:
		return gainStyle.Render("+" + formatMoney(a))
	case a < 0:
		return lossStyle.Render("-" + formatMoney(a.Abs()))
	default:
		return formatMoney(a)
	}
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

// edgeMargin is the half-width of the 95% interval on the house edge, in
// percent of total wagered.
func edgeMargin(r *simulator.Report) float64 {
	if r.TotalWagered <= 0 || r.Hands == 0 {
		return 0
	}
	perRound := r.TotalWagered.Float64() / float64(r.Hands)
	return 1.96 * r.Statistics().StdError() / perRound * 100
}

func writeReport(w io.Writer, r *simulator.Report) error {
	stats := r.Statistics()
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Blackjack simulation")+" "+dimStyle.Render(r.ID.String()))
	fmt.Fprintln(&b)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	section := func(name string) {
		fmt.Fprintln(tw, sectionStyle.Render(name))
	}
	row := func(label, value string) {
		fmt.Fprintf(tw, "  %s\t%s\n", label, value)
	}

	section("Run")
	row("Hands", fmt.Sprintf("%s (%d workers, seed %d)", count(r.Hands), r.Workers, r.Seed))
	row("Elapsed", describeElapsed(r.Elapsed, r.Hands))
	row("Rules", describeRules(r.Rules))
	row("Base bet", formatMoney(r.BaseBet))

	section("Money")
	row("Wagered", formatMoney(r.TotalWagered))
	row("Won", formatMoney(r.TotalWon))
	row("Lost", formatMoney(r.TotalLost))
	row("Net", styledMoney(r.Net()))
	row("House edge", fmt.Sprintf("%.3f%% ± %.3f%%", r.HouseEdge, edgeMargin(r)))

	section("Outcomes")
	o := r.Outcomes
	for _, item := range []struct {
		label string
		n     int
	}{
		{"Wins", o.Wins},
		{"Blackjacks", o.Blackjacks},
		{"Losses", o.Losses},
		{"Pushes", o.Pushes},
		{"Surrenders", o.Surrenders},
		{"Doubles", r.Doubles},
		{"Splits", r.Splits},
		{"Dead hands", r.DeadHands},
	} {
		row(item.label, fmt.Sprintf("%s (%.2f%%)", count(item.n), r.Rate(item.n)))
	}
	row("Bankroll resets", count(r.BankrollResets))
	row("Reshuffles", count(r.Reshuffles))

	section("Per round")
	low, high := stats.ConfidenceInterval95()
	row("Mean", fmt.Sprintf("%.4f", stats.Mean()))
	row("Median", fmt.Sprintf("%.2f", stats.Median()))
	row("Std dev", fmt.Sprintf("%.4f", r.StdDev))
	row("Std error", fmt.Sprintf("%.4f", stats.StdError()))
	row("95% CI", fmt.Sprintf("[%.4f, %.4f]", low, high))
	ps := stats.Percentiles(reportPercentiles...)
	row("Percentiles", fmt.Sprintf("P5=%.2f P25=%.2f P75=%.2f P95=%.2f", ps[0], ps[1], ps[2], ps[3]))
	row("Biggest win", fmt.Sprintf("%.2f", stats.BiggestWin))
	row("Biggest loss", fmt.Sprintf("%.2f", stats.BiggestLoss))

	section("By round type")
	for _, k := range statistics.Kinds {
		bucket := stats.ByKind[k]
		if bucket.Rounds == 0 {
			continue
		}
		row(k.String(), fmt.Sprintf("%s rounds, %.4f mean", count(bucket.Rounds), bucket.Mean()))
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func describeElapsed(d time.Duration, hands int) string {
	rounded := d.Round(time.Millisecond)
	if d <= 0 {
		return rounded.String()
	}
	rate := float64(hands) / d.Seconds()
	return fmt.Sprintf("%s (%s hands/sec)", rounded, humanize.Comma(int64(rate)))
}

func describeRules(r game.Rules) string {
	parts := []string{
		fmt.Sprintf("%d decks", r.Decks),
		fmt.Sprintf("%.0f%% penetration", r.Penetration*100),
	}
	if r.DealerHitsSoft17 {
		parts = append(parts, "H17")
	} else {
		parts = append(parts, "S17")
	}
	if r.AllowDoubleAfterSplit {
		parts = append(parts, "DAS")
	}
	if r.AllowResplitAces {
		parts = append(parts, "RSA")
	}
	switch {
	case r.AllowSurrender && r.EarlySurrender:
		parts = append(parts, "early surrender")
	case r.AllowSurrender:
		parts = append(parts, "late surrender")
	}
	parts = append(parts, fmt.Sprintf("blackjack pays %g:1", r.BlackjackPayout))
	return strings.Join(parts, ", ")
}

// reportExport is the JSON form of a report: the headline numbers plus the
// distribution summary.
type reportExport struct {
	*simulator.Report
	Rules       game.Rules             `json:"rules"`
	Mean        float64                `json:"mean"`
	Median      float64                `json:"median"`
	StdError    float64                `json:"std_error"`
	CI95        [2]float64             `json:"ci95"`
	Percentiles map[string]float64     `json:"percentiles"`
	ByKind      map[string]kindSummary `json:"by_kind"`
}

type kindSummary struct {
	Rounds int     `json:"rounds"`
	Mean   float64 `json:"mean"`
}

func newReportExport(r *simulator.Report) reportExport {
	stats := r.Statistics()
	low, high := stats.ConfidenceInterval95()

	e := reportExport{
		Report:      r,
		Rules:       r.Rules,
		Mean:        stats.Mean(),
		Median:      stats.Median(),
		StdError:    stats.StdError(),
		CI95:        [2]float64{low, high},
		Percentiles: make(map[string]float64, len(reportPercentiles)),
		ByKind:      make(map[string]kindSummary),
	}
	for i, v := range stats.Percentiles(reportPercentiles...) {
		e.Percentiles[fmt.Sprintf("p%.0f", reportPercentiles[i]*100)] = v
	}
	for _, k := range statistics.Kinds {
		if b := stats.ByKind[k]; b.Rounds > 0 {
			e.ByKind[k.String()] = kindSummary{Rounds: b.Rounds, Mean: b.Mean()}
		}
	}
	return e
}
