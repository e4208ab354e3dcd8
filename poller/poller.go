package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gatewayops/status-index/status"
)

// Gatherer produces one snapshot per cycle. *status.Aggregator satisfies it.
type Gatherer interface {
	GatherAdaptive(ctx context.Context, services []status.Descriptor, timeout time.Duration) *status.Snapshot
}

// Sink receives every snapshot a poller produces, after the cached latest
// has been replaced. A failing sink never stops the poll loop.
type Sink interface {
	Record(ctx context.Context, snap *status.Snapshot) error
}

// Poller wraps a gatherer in a timer loop and caches the latest snapshot
// for readers. The first cycle runs immediately on Start, then once per
// interval until the context is cancelled or Stop is called.
type Poller struct {
	gatherer Gatherer
	services []status.Descriptor
	interval time.Duration
	timeout  time.Duration
	sinks    []Sink

	ticker *time.Ticker
	done   chan struct{}

	mu     sync.RWMutex
	latest *status.Snapshot
}

// New creates a new Poller over the given catalog.
func New(g Gatherer, services []status.Descriptor, interval, timeout time.Duration, sinks ...Sink) *Poller {
	return &Poller{
		gatherer: g,
		services: services,
		interval: interval,
		timeout:  timeout,
		sinks:    sinks,
		done:     make(chan struct{}, 1),
	}
}

// Start runs the first cycle synchronously, then keeps cycling in the
// background until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.ticker = time.NewTicker(p.interval)

	go func() {
		for {
			select {
			case <-ctx.Done():
				p.ticker.Stop()
				return
			case <-p.done:
				return
			case <-p.ticker.C:
				p.cycle(ctx)
			}
		}
	}()

	p.cycle(ctx)
}

// Stop ends the poll loop. The cached latest snapshot stays readable.
// Stopping a poller that was never started is a no-op.
func (p *Poller) Stop() {
	if nil == p.ticker {
		return
	}
	p.ticker.Stop()
	p.done <- struct{}{}
}

// Latest returns the most recent snapshot, or nil before the first cycle
// completes.
func (p *Poller) Latest() *status.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.latest
}

func (p *Poller) cycle(ctx context.Context) {
	cycleID := uuid.New().String()
	started := time.Now()

	snap := p.gatherer.GatherAdaptive(ctx, p.services, p.timeout)

	p.mu.Lock()
	p.latest = snap
	p.mu.Unlock()

	log.WithFields(log.Fields{
		"cycle":       cycleID,
		"elapsed":     time.Since(started),
		"required_ok": snap.Summary.Required.OK,
		"optional_ok": snap.Summary.Optional.OK,
		"services":    len(snap.Results),
	}).Info("Poll cycle complete")

	for _, sink := range p.sinks {
		if err := sink.Record(ctx, snap); nil != err {
			log.WithField("cycle", cycleID).Errorf("Snapshot sink failed: %v", err)
		}
	}
}
