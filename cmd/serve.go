package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gatewayops/status-index/buildinfo"
	"github.com/gatewayops/status-index/history"
	"github.com/gatewayops/status-index/poller"
	"github.com/gatewayops/status-index/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the status index HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			services, err := resolveCatalog(ctx, cfg)
			if err != nil {
				return err
			}

			agg, err := newAggregator(cfg)
			if err != nil {
				return err
			}

			var (
				store *history.Store
				sinks []poller.Sink
			)
			if cfg.HistoryDSN != "" {
				store, err = history.Open(ctx, cfg.HistoryDSN)
				if err != nil {
					return err
				}
				defer store.Close()

				if err := store.EnsureSchema(ctx); err != nil {
					return err
				}
				sinks = append(sinks, store)
			}

			p := poller.New(agg, services, cfg.PollInterval, cfg.ProbeTimeout, sinks...)
			p.Start(ctx)
			defer p.Stop()

			srv := server.New(cfg, buildinfo.GetBuildInfo())
			srv.AddHealthCheckFunc(func() error {
				if p.Latest() == nil {
					return errors.New("no snapshot gathered yet")
				}
				return nil
			})
			registerStatusRoutes(srv, p, store, cfg.HistoryLimit)

			return srv.StartServer(ctx)
		},
	}
}

func registerStatusRoutes(srv *server.IndexServer, p *poller.Poller, store *history.Store, historyLimit int) {
	srv.AddHandler(http.MethodGet, "/status", func(w http.ResponseWriter, r *http.Request) error {
		snap := p.Latest()
		if snap == nil {
			return server.NewStatusError(http.StatusServiceUnavailable, "no snapshot yet")
		}
		return server.WriteJSON(http.StatusOK, snap, w)
	})

	srv.AddHandler(http.MethodGet, "/status/summary", func(w http.ResponseWriter, r *http.Request) error {
		snap := p.Latest()
		if snap == nil {
			return server.NewStatusError(http.StatusServiceUnavailable, "no snapshot yet")
		}
		return server.WriteJSON(http.StatusOK, snap.Summary, w)
	})

	srv.AddHandler(http.MethodGet, "/status/models", func(w http.ResponseWriter, r *http.Request) error {
		snap := p.Latest()
		if snap == nil {
			return server.NewStatusError(http.StatusServiceUnavailable, "no snapshot yet")
		}
		return server.WriteJSON(http.StatusOK, snap.Models, w)
	})

	srv.AddHandler(http.MethodGet, "/status/history", func(w http.ResponseWriter, r *http.Request) error {
		if store == nil {
			return server.NewStatusError(http.StatusNotFound, "history is not configured")
		}

		limit := historyLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return server.NewStatusError(http.StatusBadRequest, "limit must be a positive integer")
			}
			limit = parsed
		}

		entries, err := store.Recent(r.Context(), limit)
		if err != nil {
			return server.ToStatusError(http.StatusInternalServerError, err)
		}
		return server.WriteJSON(http.StatusOK, entries, w)
	})
}
