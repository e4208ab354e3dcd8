package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gatewayops/status-index/status"
)

func newCheckCmd() *cobra.Command {
	var asJSON bool

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run one gather cycle and print the snapshot",
		Long: "check probes every service in the catalog once, prints the " +
			"snapshot, and exits non-zero when any required service is down.",
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

			snap := agg.GatherAdaptive(ctx, services, cfg.ProbeTimeout)

			if asJSON {
				raw, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), renderSnapshot(snap))
			}

			return degradedError(snap.Summary)
		},
	}
	checkCmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")

	return checkCmd
}

// degradedError turns a degraded summary into the error that makes the
// check command exit non-zero. A healthy summary yields nil.
func degradedError(s status.Summary) error {
	if !s.Degraded() {
		return nil
	}

	down := s.Required.Total - s.Required.OK

	return fmt.Errorf("%d of %d required services unreachable", down, s.Required.Total)
}
