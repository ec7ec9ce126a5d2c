package simulator

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Observer receives notifications about batch progress. Worker callbacks
// arrive concurrently from every worker goroutine, so implementations must
// be safe for concurrent use.
type Observer interface {
	// OnBatchStart is called once before any worker starts.
	OnBatchStart(batch BatchInfo)

	// OnWorkerProgress is called every Config.ProgressEvery rounds.
	OnWorkerProgress(progress WorkerProgress)

	// OnWorkerComplete is called when a worker has played all its rounds.
	OnWorkerComplete(summary WorkerSummary)

	// OnBatchComplete is called once with the reduced report.
	OnBatchComplete(report *Report)
}

// BatchInfo describes a batch about to run.
type BatchInfo struct {
	ID      uuid.UUID
	Hands   int
	Workers int
	Seed    int64
}

// WorkerProgress reports how far one worker has got.
type WorkerProgress struct {
	Worker int
	Done   int
	Total  int
}

// WorkerSummary is one worker's totals, before reduction.
type WorkerSummary struct {
	Worker         int
	Hands          int
	Outcomes       Outcomes
	BankrollResets int
	Reshuffles     int
}

// NullObserver is a no-op implementation.
type NullObserver struct{}

func (NullObserver) OnBatchStart(BatchInfo)          {}
func (NullObserver) OnWorkerProgress(WorkerProgress) {}
func (NullObserver) OnWorkerComplete(WorkerSummary)  {}
func (NullObserver) OnBatchComplete(*Report)         {}

// MultiObserver fan-outs events to multiple observers.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver builds a composite observer, pruning nil entries and
// returning a NullObserver when none remain.
func NewMultiObserver(observers ...Observer) Observer {
	filtered := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}

	switch len(filtered) {
	case 0:
		return NullObserver{}
	case 1:
		return filtered[0]
	default:
		return MultiObserver{observers: filtered}
	}
}

func (m MultiObserver) OnBatchStart(batch BatchInfo) {
	for _, o := range m.observers {
		o.OnBatchStart(batch)
	}
}

func (m MultiObserver) OnWorkerProgress(progress WorkerProgress) {
	for _, o := range m.observers {
		o.OnWorkerProgress(progress)
	}
}

func (m MultiObserver) OnWorkerComplete(summary WorkerSummary) {
	for _, o := range m.observers {
		o.OnWorkerComplete(summary)
	}
}

func (m MultiObserver) OnBatchComplete(report *Report) {
	for _, o := range m.observers {
		o.OnBatchComplete(report)
	}
}

// LogObserver writes batch events to a charmbracelet logger. The logger
// serialises its own writes, which makes the observer safe for concurrent
// use.
type LogObserver struct {
	logger *log.Logger
	clock  quartz.Clock
	start  time.Time
}

// NewLogObserver creates a LogObserver. A nil clock uses the real clock.
func NewLogObserver(logger *log.Logger, clock quartz.Clock) *LogObserver {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &LogObserver{logger: logger.WithPrefix("simulator"), clock: clock}
}

func (o *LogObserver) OnBatchStart(batch BatchInfo) {
	o.start = o.clock.Now()
	o.logger.Info("Starting simulation",
		"id", batch.ID,
		"hands", batch.Hands,
		"workers", batch.Workers,
		"seed", batch.Seed)
}

func (o *LogObserver) OnWorkerProgress(p WorkerProgress) {
	o.logger.Debug("Worker progress",
		"worker", p.Worker,
		"done", p.Done,
		"total", p.Total,
		"elapsed", o.clock.Since(o.start).Round(time.Millisecond))
}

func (o *LogObserver) OnWorkerComplete(s WorkerSummary) {
	o.logger.Debug("Worker finished",
		"worker", s.Worker,
		"hands", s.Hands,
		"wins", s.Outcomes.Wins,
		"losses", s.Outcomes.Losses,
		"resets", s.BankrollResets,
		"reshuffles", s.Reshuffles)
}

func (o *LogObserver) OnBatchComplete(r *Report) {
	o.logger.Info("Simulation complete",
		"id", r.ID,
		"hands", r.Hands,
		"house_edge", r.HouseEdge,
		"net", r.Net(),
		"elapsed", r.Elapsed.Round(time.Millisecond))
}
