package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Kind classifies a round by the most significant thing that happened in it.
type Kind uint8

const (
	KindPlain Kind = iota
	KindBlackjack
	KindDoubled
	KindSplit
	KindSurrendered
	KindInsured
	numKinds
)

// Kinds lists every kind in display order.
var Kinds = [...]Kind{KindPlain, KindBlackjack, KindDoubled, KindSplit, KindSurrendered, KindInsured}

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindBlackjack:
		return "blackjack"
	case KindDoubled:
		return "doubled"
	case KindSplit:
		return "split"
	case KindSurrendered:
		return "surrendered"
	case KindInsured:
		return "insured"
	default:
		return "unknown"
	}
}

// Sample is the net result of a single round in currency units
type Sample struct {
	Net  float64
	Kind Kind
}

// Bucket accumulates results for one kind of round
type Bucket struct {
	Rounds int
	Sum    float64
	SumSq  float64
}

// Mean returns the mean result of the bucket
func (b Bucket) Mean() float64 {
	if b.Rounds == 0 {
		return 0
	}
	return b.Sum / float64(b.Rounds)
}

func (b *Bucket) add(o Bucket) {
	b.Rounds += o.Rounds
	b.Sum += o.Sum
	b.SumSq += o.SumSq
}

// Statistics tracks the distribution of round results
type Statistics struct {
	Rounds int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Winning int // rounds with a positive net
	Losing  int // rounds with a negative net
	Even    int

	BiggestWin  float64
	BiggestLoss float64 // most negative net, as a positive number

	ByKind [numKinds]Bucket
}

// Mean returns the arithmetic mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(sample Sample) {
	net := sample.Net
	s.Rounds++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	switch {
	case net > 0:
		s.Winning++
		s.BiggestWin = math.Max(s.BiggestWin, net)
	case net < 0:
		s.Losing++
		s.BiggestLoss = math.Max(s.BiggestLoss, -net)
	default:
		s.Even++
	}

	if sample.Kind < numKinds {
		b := &s.ByKind[sample.Kind]
		b.Rounds++
		b.Sum += net
		b.SumSq += net * net
	}
}

// Merge folds o into s. Values are appended in order, so merging worker
// results in worker order gives a deterministic sequence.
func (s *Statistics) Merge(o *Statistics) {
	s.Rounds += o.Rounds
	s.Sum += o.Sum
	s.SumSq += o.SumSq
	s.Values = append(s.Values, o.Values...)
	s.Winning += o.Winning
	s.Losing += o.Losing
	s.Even += o.Even
	s.BiggestWin = math.Max(s.BiggestWin, o.BiggestWin)
	s.BiggestLoss = math.Max(s.BiggestLoss, o.BiggestLoss)
	for k := range s.ByKind {
		s.ByKind[k].add(o.ByKind[k])
	}
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return percentile(s.sorted(), p)
}

// Percentiles is like Percentile for several points, sorting only once
func (s *Statistics) Percentiles(ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(s.Values) == 0 {
		return out
	}
	sorted := s.sorted()
	for i, p := range ps {
		out[i] = percentile(sorted, p)
	}
	return out
}

func percentile(sorted []float64, p float64) float64 {
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// KindMean returns the mean result for rounds of kind k
func (s *Statistics) KindMean(k Kind) float64 {
	if k >= numKinds {
		return 0
	}
	return s.ByKind[k].Mean()
}

// IsLedgerBalanced checks that the per-kind buckets add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	var sum float64
	for _, b := range s.ByKind {
		sum += b.Sum
	}
	return math.Abs(s.Sum-sum) <= 1e-6*math.Max(1, math.Abs(s.Sum))
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: sum=%.6f does not match per-kind sums", s.Sum)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.Winning+s.Losing+s.Even != s.Rounds {
		return fmt.Errorf("winning (%d) + losing (%d) + even (%d) does not match rounds (%d)",
			s.Winning, s.Losing, s.Even, s.Rounds)
	}

	kindRounds := 0
	for _, b := range s.ByKind {
		kindRounds += b.Rounds
	}
	if kindRounds != s.Rounds {
		return fmt.Errorf("kind rounds total (%d) does not match total rounds (%d)",
			kindRounds, s.Rounds)
	}

	return nil
}
