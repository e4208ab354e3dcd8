package history

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/gatewayops/status-index/poller"
	"github.com/gatewayops/status-index/status"
)

func sampleSnapshot() *status.Snapshot {
	lat := 12 * time.Millisecond

	results := []status.CheckResult{
		{
			Service:   status.Descriptor{Name: "gateway", URL: "http://gateway:4000", Endpoint: "/health/readiness", Required: true},
			Reachable: true,
			Latency:   &lat,
		},
		{
			Service: status.Descriptor{Name: "cache", URL: "http://cache:6379", Endpoint: "/ping"},
			Error:   "connection-refused",
		},
	}

	return &status.Snapshot{
		Results:    results,
		Models:     status.ModelsResult{Models: []string{"gpt-4o", "claude-sonnet"}, Latency: &lat},
		Summary:    status.Summarize(results),
		CapturedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotRoundTripsThroughRowEncoding(t *testing.T) {
	RegisterTestingT(t)

	snap := sampleSnapshot()

	results, models, err := encodeSnapshot(snap)
	Ω(err).ShouldNot(HaveOccurred())

	var decoded status.Snapshot
	Ω(decodeSnapshot(&decoded, results, models)).Should(Succeed())

	Ω(decoded.Results).Should(Equal(snap.Results))
	Ω(decoded.Models).Should(Equal(snap.Models))
}

func TestDecodeRejectsCorruptRow(t *testing.T) {
	RegisterTestingT(t)

	var decoded status.Snapshot
	err := decodeSnapshot(&decoded, []byte(`not-json`), []byte(`{}`))
	Ω(err).Should(HaveOccurred())
}

func TestClampLimit(t *testing.T) {
	RegisterTestingT(t)

	Ω(clampLimit(50)).Should(Equal(50))
	Ω(clampLimit(1)).Should(Equal(1))
	Ω(clampLimit(0)).Should(Equal(1))
	Ω(clampLimit(-7)).Should(Equal(1))
}

// Store satisfies the poller sink contract; real persistence is covered by
// integration runs against a live database.
func TestStoreShape(t *testing.T) {
	var _ poller.Sink = (*Store)(nil)
}
