package server

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
)

// Config represents the status-index service configuration. Everything is
// sourced from SI_-prefixed environment variables.
type Config struct {
	Port     int    `env:"SI_SERVER_PORT" envDefault:"8080"`
	LogLevel string `env:"SI_LOG_LEVEL" envDefault:"info"`

	// GatewayURL is the base address of the LLM routing gateway this
	// index watches. The built-in catalog and the models probe both
	// derive from it.
	GatewayURL     string `env:"SI_GATEWAY_URL" envDefault:"http://localhost:4000"`
	ModelsEndpoint string `env:"SI_MODELS_ENDPOINT" envDefault:"/v1/models"`

	// Catalog sources, checked in this order: explicit file, traefik
	// discovery, kubernetes discovery, built-in gateway catalog.
	CatalogFile  string `env:"SI_CATALOG_FILE"`
	TraefikURL   string `env:"SI_TRAEFIK_URL"`
	K8sNamespace string `env:"SI_K8S_NAMESPACE"`
	K8sSelector  string `env:"SI_K8S_SELECTOR"`

	ProbeTimeout     time.Duration `env:"SI_PROBE_TIMEOUT" envDefault:"5s"`
	PollInterval     time.Duration `env:"SI_POLL_INTERVAL" envDefault:"30s"`
	ConcurrentProbes bool          `env:"SI_CONCURRENT_PROBES" envDefault:"true"`

	// HistoryDSN enables the snapshot history store when set.
	HistoryDSN   string `env:"SI_HISTORY_DSN"`
	HistoryLimit int    `env:"SI_HISTORY_LIMIT" envDefault:"50"`
}

// LoadConfig populates cfg from the environment
func LoadConfig(cfg interface{}) error {
	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, "unable to parse environment configuration")
	}

	return nil
}

// EmptyConfig creates empty config
func EmptyConfig() *Config {
	return &Config{}
}
