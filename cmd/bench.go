package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gatewayops/status-index/bench"
)

func newBenchCmd() *cobra.Command {
	var (
		cycles int
		asJSON bool
	)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare sequential and concurrent gather wall times",
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

			report := bench.Run(ctx, agg, services, bench.Options{
				Cycles:  cycles,
				Timeout: cfg.ProbeTimeout,
			})

			if asJSON {
				raw, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))

				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderReport(report))

			return nil
		},
	}
	benchCmd.Flags().IntVar(&cycles, "cycles", 5, "gather cycles per strategy")
	benchCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return benchCmd
}

func renderReport(report bench.Report) string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tCYCLES\tMIN\tAVG\tMAX")
	fmt.Fprintf(w, "sequential\t%d\t%s\t%s\t%s\n",
		report.Sequential.Cycles, report.Sequential.Min, report.Sequential.Avg, report.Sequential.Max)
	fmt.Fprintf(w, "concurrent\t%d\t%s\t%s\t%s\n",
		report.Concurrent.Cycles, report.Concurrent.Min, report.Concurrent.Avg, report.Concurrent.Max)
	_ = w.Flush()

	fmt.Fprintf(&b, "\n%d services, speedup %.2fx\n", report.Services, report.Speedup())

	return b.String()
}
