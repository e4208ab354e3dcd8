package cmd

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatewayops/status-index/server"
)

var cfg = server.EmptyConfig()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status-index",
		Short: "Service status index for an LLM request-routing gateway",
		Long: "status-index probes the configured service catalog of an LLM " +
			"request-routing gateway deployment, aggregates liveness and latency " +
			"into snapshots, and serves them over HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// Optional .env for local runs; real deployments set the
			// environment directly.
			_ = godotenv.Load()

			if err := server.LoadConfig(cfg); err != nil {
				return err
			}

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
			}
			log.SetLevel(level)

			return nil
		},
	}
}

// Execute runs the CLI. Command failures exit with status 1.
func Execute() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newBenchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
