package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/gatewayops/status-index/buildinfo"
	"github.com/gatewayops/status-index/hostinfo"
)

// IndexServer is the HTTP surface of the status index.
type IndexServer struct {
	mux       *chi.Mux
	cfg       *Config
	buildInfo *buildinfo.BuildInfo
	hChecks   []HealthCheck
}

// New creates new instance of IndexServer struct
func New(cfg *Config, buildInfo *buildinfo.BuildInfo) *IndexServer {
	srv := &IndexServer{
		mux:       chi.NewMux(),
		cfg:       cfg,
		hChecks:   []HealthCheck{},
		buildInfo: buildInfo,
	}

	srv.mux.Use(middleware.Recoverer)

	return srv
}

// WithRouter gives access to Chi router to add routes and perform other modifications
func (srv *IndexServer) WithRouter(f func(router *chi.Mux)) {
	f(srv.mux)
}

// AddHandler is the preferred way to add a route to the server. The handler
// may return an error which is rendered as an HTTP response.
func (srv *IndexServer) AddHandler(method, pattern string, f func(w http.ResponseWriter, r *http.Request) error) {
	srv.mux.Method(method, pattern, Handler{f})
}

// AddHealthCheck adds health check
func (srv *IndexServer) AddHealthCheck(h HealthCheck) {
	srv.hChecks = append(srv.hChecks, h)
}

// AddHealthCheckFunc adds health check function
func (srv *IndexServer) AddHealthCheckFunc(f func() error) {
	srv.hChecks = append(srv.hChecks, HealthCheckFunc(f))
}

// StartServer starts the HTTP server and blocks until ctx is cancelled or
// the listener fails.
func (srv *IndexServer) StartServer(ctx context.Context) error {
	srv.initDefaultRoutes()

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(srv.cfg.Port),
		Handler: srv.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting on port %d", srv.cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Shutting down")

		return httpServer.Shutdown(shutdownCtx)
	}
}

// initDefaultRoutes initializes default routes

func (srv *IndexServer) initDefaultRoutes() {
	srv.mux.Get("/health", srv.healthHandler)
	srv.mux.Get("/info", srv.infoHandler)
}

func (srv *IndexServer) infoHandler(w http.ResponseWriter, rq *http.Request) {
	bi := map[string]interface{}{
		"build": srv.buildInfo,
		"host":  hostinfo.Collect(),
	}
	if err := WriteJSON(http.StatusOK, bi, w); err != nil {
		log.Error(err)
	}
}

func (srv *IndexServer) healthHandler(w http.ResponseWriter, rq *http.Request) {
	// collect status results
	var errs []string
	for _, hc := range srv.hChecks {
		if err := hc.Check(); nil != err {
			errs = append(errs, err.Error())
		}
	}

	rs := map[string]interface{}{}
	status := http.StatusOK
	if len(errs) > 0 {
		rs["status"] = "DOWN"
		rs["errors"] = errs
		status = http.StatusBadRequest
	} else {
		rs["status"] = "UP"
	}

	if err := WriteJSON(status, rs, w); err != nil {
		log.Error(err)
	}
}
