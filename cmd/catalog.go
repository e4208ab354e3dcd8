package cmd

import (
	"context"

	"github.com/gatewayops/status-index/catalog"
	"github.com/gatewayops/status-index/probe"
	"github.com/gatewayops/status-index/server"
	"github.com/gatewayops/status-index/status"
)

// resolveCatalog picks the descriptor source from the configuration: an
// explicit catalog file wins, then traefik discovery, then kubernetes
// discovery, then the built-in gateway catalog.
func resolveCatalog(ctx context.Context, cfg *server.Config) ([]status.Descriptor, error) {
	switch {
	case cfg.CatalogFile != "":
		return catalog.LoadFile(cfg.CatalogFile)
	case cfg.TraefikURL != "":
		return catalog.DiscoverTraefik(cfg.TraefikURL, cfg.ProbeTimeout)
	case cfg.K8sNamespace != "":
		return catalog.Discover(ctx, cfg.K8sNamespace, cfg.K8sSelector)
	default:
		return catalog.Default(cfg.GatewayURL), nil
	}
}

// newAggregator builds the aggregator every command shares. The dispatch
// strategy is fixed here, once per process.
func newAggregator(cfg *server.Config) (*status.Aggregator, error) {
	return status.New(status.Config{
		Prober:     probe.New(),
		Timeout:    cfg.ProbeTimeout,
		ModelsURL:  cfg.GatewayURL + cfg.ModelsEndpoint,
		Concurrent: status.DetectCapability().ConcurrentDispatch && cfg.ConcurrentProbes,
	})
}
