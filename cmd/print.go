package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gatewayops/status-index/status"
)

// renderSnapshot formats a snapshot as the text table the check command
// prints: one row per service, then the summary and model inventory.
func renderSnapshot(snap *status.Snapshot) string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tCLASS\tSTATE\tLATENCY\tERROR")
	for _, r := range snap.Results {
		class := "optional"
		if r.Service.Required {
			class = "required"
		}

		state := "DOWN"
		if r.Reachable {
			state = "UP"
		}

		latency := "-"
		if r.Latency != nil {
			latency = r.Latency.Round(10 * time.Microsecond).String()
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Service.Name, class, state, latency, r.Error)
	}
	_ = w.Flush()

	fmt.Fprintf(&b, "\nrequired: %d/%d up, optional: %d/%d up\n",
		snap.Summary.Required.OK, snap.Summary.Required.Total,
		snap.Summary.Optional.OK, snap.Summary.Optional.Total)

	if snap.Models.Error != "" {
		fmt.Fprintf(&b, "models: unavailable (%s)\n", snap.Models.Error)
	} else {
		fmt.Fprintf(&b, "models: %s\n", strings.Join(snap.Models.Models, ", "))
	}

	return b.String()
}
