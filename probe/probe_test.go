package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestProbeParsesJSONBody(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"UP","version":"1.4.2"}`))
	}))
	defer srv.Close()

	out := New().Probe(context.Background(), srv.URL, time.Second)

	Ω(out.Err).ShouldNot(HaveOccurred())
	Ω(out.Latency).ShouldNot(BeNil())
	Ω(out.Document).Should(HaveKeyWithValue("status", "UP"))
	Ω(out.Document).Should(HaveKeyWithValue("version", "1.4.2"))
}

func TestProbeLateResponseIsTimeout(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Answers, but only after the probe deadline has passed. Arriving
		// at or after the deadline counts as a failure.
		time.Sleep(120 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	out := New().Probe(context.Background(), srv.URL, 30*time.Millisecond)

	Ω(out.Err).Should(MatchError(ErrTimeout))
	Ω(out.Latency).ShouldNot(BeNil())
	Ω(*out.Latency).Should(BeNumerically(">=", 25*time.Millisecond))
	Ω(out.Document).Should(BeNil())
}

func TestProbeConnectionRefused(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := New().Probe(context.Background(), url, time.Second)

	Ω(out.Err).Should(MatchError(ErrConnection))
	Ω(out.Latency).ShouldNot(BeNil())
}

func TestProbeUnresolvableHost(t *testing.T) {
	RegisterTestingT(t)

	out := New().Probe(context.Background(), "http://gateway.invalid:9/health", time.Second)

	Ω(out.Err).Should(MatchError(ErrConnection))
}

func TestProbeMalformedBody(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`status: up`))
	}))
	defer srv.Close()

	out := New().Probe(context.Background(), srv.URL, time.Second)

	Ω(out.Err).Should(MatchError(ErrMalformed))
	Ω(out.Document).Should(BeNil())
}

func TestProbeNonSuccessStatus(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"DOWN"}`))
	}))
	defer srv.Close()

	out := New().Probe(context.Background(), srv.URL, time.Second)

	Ω(out.Err).Should(HaveOccurred())
	Ω(out.Err.Error()).Should(Equal("unexpected status 503"))
}

func TestProbeEmptyBodyIsMalformed(t *testing.T) {
	RegisterTestingT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out := New().Probe(context.Background(), srv.URL, time.Second)

	Ω(out.Err).Should(MatchError(ErrMalformed))
}
