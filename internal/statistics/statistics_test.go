package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if got := stats.Percentiles(0.1, 0.9); len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("Expected zero percentiles for empty stats, got %v", got)
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Sample{Net: 15, Kind: KindBlackjack})

	if stats.Rounds != 1 {
		t.Errorf("Expected 1 round, got %d", stats.Rounds)
	}
	if stats.Mean() != 15 {
		t.Errorf("Expected mean of 15, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 15 {
		t.Errorf("Expected median of 15, got %f", stats.Median())
	}
	if stats.Winning != 1 || stats.BiggestWin != 15 {
		t.Errorf("Expected 1 winning round of 15, got %d / %f", stats.Winning, stats.BiggestWin)
	}
	if stats.ByKind[KindBlackjack].Rounds != 1 {
		t.Errorf("Expected 1 blackjack round, got %d", stats.ByKind[KindBlackjack].Rounds)
	}
	if !stats.IsLedgerBalanced() {
		t.Error("Expected ledger to be balanced")
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	samples := []Sample{
		{Net: 10, Kind: KindPlain},
		{Net: -20, Kind: KindDoubled},
		{Net: 30, Kind: KindSplit},
		{Net: 0, Kind: KindPlain},
		{Net: -5, Kind: KindSurrendered},
	}
	for _, s := range samples {
		stats.Add(s)
	}

	expectedMean := (10.0 - 20.0 + 30.0 + 0.0 - 5.0) / 5.0
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}

	// sorted values: -20, -5, 0, 10, 30
	if stats.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", stats.Median())
	}

	if stats.Winning != 2 || stats.Losing != 2 || stats.Even != 1 {
		t.Errorf("Expected 2/2/1 winning/losing/even, got %d/%d/%d", stats.Winning, stats.Losing, stats.Even)
	}
	if stats.BiggestLoss != 20 {
		t.Errorf("Expected biggest loss of 20, got %f", stats.BiggestLoss)
	}
	if stats.ByKind[KindPlain].Rounds != 2 {
		t.Errorf("Expected 2 plain rounds, got %d", stats.ByKind[KindPlain].Rounds)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}

	for i := 1; i <= 5; i++ {
		stats.Add(Sample{Net: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}

	got := stats.Percentiles(0.25, 0.75)
	if got[0] != 2.0 || got[1] != 4.0 {
		t.Errorf("Expected [2 4], got %v", got)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}

	for _, v := range []float64{10, -10, 10, 25, -10} {
		stats.Add(Sample{Net: v})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_KindAnalysis(t *testing.T) {
	stats := &Statistics{}

	stats.Add(Sample{Net: 20, Kind: KindDoubled})
	stats.Add(Sample{Net: -20, Kind: KindDoubled})
	stats.Add(Sample{Net: 40, Kind: KindDoubled})
	stats.Add(Sample{Net: -5, Kind: KindSurrendered})

	if got := stats.KindMean(KindDoubled); math.Abs(got-40.0/3) > 1e-9 {
		t.Errorf("Doubled mean: expected %f, got %f", 40.0/3, got)
	}
	if got := stats.KindMean(KindSurrendered); got != -5 {
		t.Errorf("Surrendered mean: expected -5, got %f", got)
	}
	if got := stats.KindMean(KindSplit); got != 0 {
		t.Errorf("Expected 0 for a kind with no rounds, got %f", got)
	}
	if got := stats.KindMean(Kind(99)); got != 0 {
		t.Errorf("Expected 0 for unknown kind, got %f", got)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}

	// [1, 3, 5] -> sample variance 4
	for _, v := range []float64{1, 3, 5} {
		stats.Add(Sample{Net: v})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}

	for i, v := range []float64{10, -10, 15, 0, -20, 10, 5} {
		s := Sample{Net: v, Kind: Kind(i % int(numKinds))}
		if i < 3 {
			a.Add(s)
		} else {
			b.Add(s)
		}
		all.Add(s)
	}
	a.Merge(b)

	if a.Rounds != all.Rounds || a.Sum != all.Sum || a.SumSq != all.SumSq {
		t.Errorf("Merged totals differ: %d/%f/%f vs %d/%f/%f", a.Rounds, a.Sum, a.SumSq, all.Rounds, all.Sum, all.SumSq)
	}
	if a.ByKind != all.ByKind {
		t.Errorf("Merged kinds differ: %v vs %v", a.ByKind, all.ByKind)
	}
	for i := range all.Values {
		if a.Values[i] != all.Values[i] {
			t.Fatalf("Value %d: expected %f, got %f", i, all.Values[i], a.Values[i])
		}
	}
	if a.BiggestWin != 15 || a.BiggestLoss != 20 {
		t.Errorf("Expected biggest win 15 and loss 20, got %f and %f", a.BiggestWin, a.BiggestLoss)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected merged stats to validate, got %v", err)
	}
}

func TestStatistics_Validate_LedgerMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Sample{Net: 10})
	stats.ByKind[KindPlain].Sum = 5

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with ledger mismatch")
	}
	if !strings.Contains(err.Error(), "ledger mismatch") {
		t.Errorf("Expected ledger mismatch error, got: %v", err)
	}
}

func TestStatistics_Validate_InvalidRoundsCount(t *testing.T) {
	stats := &Statistics{}

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with invalid rounds count")
	}
	if !strings.Contains(err.Error(), "invalid rounds count") {
		t.Errorf("Expected invalid rounds count error, got: %v", err)
	}
}

func TestStatistics_Validate_ValuesMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Sample{Net: 10})
	stats.Rounds = 2

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with values array mismatch")
	}
	if !strings.Contains(err.Error(), "values array length") {
		t.Errorf("Expected values array length error, got: %v", err)
	}
}

func TestStatistics_Validate_OutcomeMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Sample{Net: 10})
	stats.Add(Sample{Net: -10})
	stats.Winning = 2

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with outcome mismatch")
	}
	if !strings.Contains(err.Error(), "does not match rounds") {
		t.Errorf("Expected outcome mismatch error, got: %v", err)
	}
}

func TestStatistics_Validate_KindMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Sample{Net: 10})
	stats.Add(Sample{Net: 0})
	stats.ByKind[KindPlain].Rounds = 1

	err := stats.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with kind rounds mismatch")
	}
	if !strings.Contains(err.Error(), "kind rounds total") {
		t.Errorf("Expected kind rounds total error, got: %v", err)
	}
}
