package status

import (
	"context"
	"time"
)

type (
	//Outcome is what a single probe dispatch produced. Latency is nil only
	//when the probe failed before it could be dispatched.
	Outcome struct {
		Document map[string]interface{}
		Latency  *time.Duration
		Err      error
	}

	//Prober dispatches one HTTP probe against a URL, bounded by the given
	//timeout, and classifies any failure into Outcome.Err
	Prober interface {
		Probe(ctx context.Context, url string, timeout time.Duration) Outcome
	}
)
