package bench

import (
	"context"
	"time"

	"github.com/gatewayops/status-index/status"
)

// Gatherer exposes both dispatch strategies. *status.Aggregator satisfies
// it; the benchmark drives the explicit strategies, never the adaptive one.
type Gatherer interface {
	GatherSequential(ctx context.Context, services []status.Descriptor, timeout time.Duration) *status.Snapshot
	GatherConcurrent(ctx context.Context, services []status.Descriptor, timeout time.Duration) *status.Snapshot
}

// Options controls a benchmark run.
type Options struct {
	// Cycles is how many snapshots each strategy gathers. Values below 1
	// are treated as 1.
	Cycles int
	// Timeout bounds each individual probe.
	Timeout time.Duration
}

// Stats holds the wall-time distribution of one strategy across cycles.
type Stats struct {
	Cycles int           `json:"cycles"`
	Min    time.Duration `json:"min"`
	Avg    time.Duration `json:"avg"`
	Max    time.Duration `json:"max"`
}

// Report compares both strategies over the same catalog.
type Report struct {
	Services   int   `json:"services"`
	Sequential Stats `json:"sequential"`
	Concurrent Stats `json:"concurrent"`
}

// Speedup is the sequential-to-concurrent average wall time ratio, zero
// when the concurrent average is zero.
func (r Report) Speedup() float64 {
	if r.Concurrent.Avg <= 0 {
		return 0
	}

	return float64(r.Sequential.Avg) / float64(r.Concurrent.Avg)
}

// Run gathers Cycles snapshots per strategy and measures the wall time of
// each cycle. Probe outcomes are discarded; only timing is kept.
func Run(ctx context.Context, g Gatherer, services []status.Descriptor, opts Options) Report {
	cycles := opts.Cycles
	if cycles < 1 {
		cycles = 1
	}

	return Report{
		Services: len(services),
		Sequential: measure(cycles, func() {
			g.GatherSequential(ctx, services, opts.Timeout)
		}),
		Concurrent: measure(cycles, func() {
			g.GatherConcurrent(ctx, services, opts.Timeout)
		}),
	}
}

func measure(cycles int, gather func()) Stats {
	s := Stats{Cycles: cycles}

	var total time.Duration
	for i := 0; i < cycles; i++ {
		start := time.Now()
		gather()
		elapsed := time.Since(start)

		total += elapsed
		if i == 0 || elapsed < s.Min {
			s.Min = elapsed
		}
		if elapsed > s.Max {
			s.Max = elapsed
		}
	}
	s.Avg = total / time.Duration(cycles)

	return s
}
