package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gatewayops/status-index/status"
)

// Stable labels surfaced on classified probe failures. Failures the probe
// cannot classify keep their underlying error message.
var (
	ErrTimeout    = errors.New("timeout")
	ErrConnection = errors.New("connection-refused")
	ErrMalformed  = errors.New("malformed-response")
)

// HTTPProber probes service endpoints over HTTP and expects JSON bodies
// back.
type HTTPProber struct {
	r *resty.Client
}

// New creates a new HTTP prober. The timeout passed to each Probe call is
// the only deadline applied: the underlying client carries none of its
// own, so one slow probe can never shorten or outlive another.
func New() *HTTPProber {
	return &HTTPProber{
		r: resty.NewWithClient(&http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        64,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		}),
	}
}

// Probe issues a GET against the URL. The response must arrive, with a
// 2xx status and a JSON object body, strictly before the timeout elapses;
// anything else is a classified failure.
func (p *HTTPProber) Probe(ctx context.Context, url string, timeout time.Duration) status.Outcome {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.r.R().
		SetContext(probeCtx).
		SetHeader("Accept", "application/json").
		Get(url)
	elapsed := time.Since(start)

	out := status.Outcome{Latency: &elapsed}
	if nil != err {
		out.Err = classify(err)

		return out
	}
	if !resp.IsSuccess() {
		out.Err = fmt.Errorf("unexpected status %d", resp.StatusCode())

		return out
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &doc); nil != err {
		out.Err = ErrMalformed

		return out
	}
	out.Document = doc

	return out
}

// classify maps transport failures onto the stable labels. Deadline hits
// become timeouts, dial and resolver failures become connection-refused,
// the rest pass through unchanged.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrConnection
	}

	return err
}
