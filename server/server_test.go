package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/gatewayops/status-index/buildinfo"
)

func newTestServer() *IndexServer {
	cfg := EmptyConfig()
	_ = LoadConfig(cfg)
	srv := New(cfg, buildinfo.GetBuildInfo())
	srv.initDefaultRoutes()

	return srv
}

func TestHealthRouteUp(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestServer()
	srv.AddHealthCheckFunc(func() error { return nil })

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	srv.mux.ServeHTTP(rr, req)

	Ω(rr.Code).Should(Equal(http.StatusOK))

	var body map[string]interface{}
	Ω(json.Unmarshal(rr.Body.Bytes(), &body)).Should(Succeed())
	Ω(body).Should(HaveKeyWithValue("status", "UP"))
	Ω(body).ShouldNot(HaveKey("errors"))
}

func TestHealthRouteDown(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestServer()
	srv.AddHealthCheckFunc(func() error { return nil })
	srv.AddHealthCheckFunc(func() error { return errors.New("poller stalled") })

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	srv.mux.ServeHTTP(rr, req)

	Ω(rr.Code).Should(Equal(http.StatusBadRequest))

	var body struct {
		Status string   `json:"status"`
		Errors []string `json:"errors"`
	}
	Ω(json.Unmarshal(rr.Body.Bytes(), &body)).Should(Succeed())
	Ω(body.Status).Should(Equal("DOWN"))
	Ω(body.Errors).Should(ConsistOf("poller stalled"))
}

func TestInfoRoute(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestServer()

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/info", nil)
	srv.mux.ServeHTTP(rr, req)

	Ω(rr.Code).Should(Equal(http.StatusOK))

	var body map[string]interface{}
	Ω(json.Unmarshal(rr.Body.Bytes(), &body)).Should(Succeed())
	Ω(body).Should(HaveKey("build"))
	Ω(body).Should(HaveKey("host"))
}

func TestAddHandlerRendersErrors(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestServer()
	srv.AddHandler(http.MethodGet, "/status", func(w http.ResponseWriter, r *http.Request) error {
		return NewStatusError(http.StatusServiceUnavailable, "no snapshot yet")
	})

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	srv.mux.ServeHTTP(rr, req)

	Ω(rr.Code).Should(Equal(http.StatusServiceUnavailable))
}
