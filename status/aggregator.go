package status

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"
)

var (
	errNilProber     = errors.New("prober must not be nil")
	errBadTimeout    = errors.New("probe timeout must be positive")
	errNoData        = errors.New("models response is missing the 'data' field")
	errDataNotList   = errors.New("models response 'data' field is not a list")
	errNoModelsRoute = errors.New("models endpoint is not configured")
)

// Aggregator probes the service catalog and folds the outcomes into
// snapshots. Probe failures never escape a gather cycle: they are folded
// into the per-service results.
type Aggregator struct {
	prober     Prober
	timeout    time.Duration
	modelsURL  string
	concurrent bool
}

// Config carries the aggregator dependencies and defaults.
type Config struct {
	// Prober dispatches the individual HTTP probes.
	Prober Prober
	// Timeout bounds each probe when the caller passes no explicit one.
	Timeout time.Duration
	// ModelsURL is the full URL of the gateway model inventory endpoint.
	ModelsURL string
	// Concurrent fixes the strategy GatherAdaptive uses for the lifetime
	// of the aggregator.
	Concurrent bool
}

// New creates a new Aggregator
func New(cfg Config) (*Aggregator, error) {
	if nil == cfg.Prober {
		return nil, errNilProber
	}
	if cfg.Timeout <= 0 {
		return nil, errBadTimeout
	}

	return &Aggregator{
		prober:     cfg.Prober,
		timeout:    cfg.Timeout,
		modelsURL:  cfg.ModelsURL,
		concurrent: cfg.Concurrent,
	}, nil
}

// CheckService probes one service. The probe is bounded by the given
// timeout, falling back to the aggregator default when it is not positive.
func (a *Aggregator) CheckService(ctx context.Context, service Descriptor, timeout time.Duration) CheckResult {
	if timeout <= 0 {
		timeout = a.timeout
	}

	target := service.URL
	if service.Endpoint != "" {
		joined, err := url.JoinPath(service.URL, service.Endpoint)
		if nil != err {
			return CheckResult{Service: service, Error: err.Error()}
		}
		target = joined
	}

	out := a.prober.Probe(ctx, target, timeout)
	rs := CheckResult{Service: service, Latency: out.Latency}
	if nil != out.Err {
		rs.Error = out.Err.Error()

		return rs
	}
	rs.Reachable = true

	return rs
}

// GatherSequential probes the services one at a time, in catalog order,
// then queries the model inventory.
func (a *Aggregator) GatherSequential(ctx context.Context, services []Descriptor, timeout time.Duration) *Snapshot {
	results := make([]CheckResult, 0, len(services))
	for _, service := range services {
		results = append(results, a.CheckService(ctx, service, timeout))
	}

	return a.snapshot(results, a.ListModels(ctx, timeout))
}

// GatherConcurrent probes every service at once. Each goroutine owns the
// result slot matching its descriptor index, so the catalog order is kept
// without locking.
func (a *Aggregator) GatherConcurrent(ctx context.Context, services []Descriptor, timeout time.Duration) *Snapshot {
	results := make([]CheckResult, len(services))
	var models ModelsResult

	var wg sync.WaitGroup
	wg.Add(len(services) + 1)
	for i, service := range services {
		go func(i int, service Descriptor) {
			defer wg.Done()
			results[i] = a.CheckService(ctx, service, timeout)
		}(i, service)
	}
	go func() {
		defer wg.Done()
		models = a.ListModels(ctx, timeout)
	}()
	wg.Wait()

	return a.snapshot(results, models)
}

// GatherAdaptive runs the strategy fixed at construction time. The choice
// never changes while the aggregator lives, so repeated cycles behave the
// same way.
func (a *Aggregator) GatherAdaptive(ctx context.Context, services []Descriptor, timeout time.Duration) *Snapshot {
	if a.concurrent {
		return a.GatherConcurrent(ctx, services, timeout)
	}

	return a.GatherSequential(ctx, services, timeout)
}

// ListModels queries the model inventory endpoint and extracts the
// advertised model IDs. The model list is never nil: failures yield an
// empty list next to the error, so consumers always see "models":[].
func (a *Aggregator) ListModels(ctx context.Context, timeout time.Duration) ModelsResult {
	if a.modelsURL == "" {
		return ModelsResult{Models: []string{}, Error: errNoModelsRoute.Error()}
	}
	if timeout <= 0 {
		timeout = a.timeout
	}

	out := a.prober.Probe(ctx, a.modelsURL, timeout)
	rs := ModelsResult{Models: []string{}, Latency: out.Latency}
	if nil != out.Err {
		rs.Error = out.Err.Error()

		return rs
	}

	models, err := extractModels(out.Document)
	if nil != err {
		rs.Error = err.Error()

		return rs
	}
	rs.Models = models

	return rs
}

// extractModels pulls the model IDs out of an OpenAI-style inventory
// document. Entries without a string "id" are skipped.
func extractModels(doc map[string]interface{}) ([]string, error) {
	data, ok := doc["data"]
	if !ok {
		return nil, errNoData
	}
	entries, ok := data.([]interface{})
	if !ok {
		return nil, errDataNotList
	}

	models := make([]string, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := entry["id"].(string); ok {
			models = append(models, id)
		}
	}

	return models, nil
}

func (a *Aggregator) snapshot(results []CheckResult, models ModelsResult) *Snapshot {
	return &Snapshot{
		Results:    results,
		Models:     models,
		Summary:    Summarize(results),
		CapturedAt: time.Now().UTC(),
	}
}
