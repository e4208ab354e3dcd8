package status

// Summarize folds check results into per-class tallies. It only reads the
// results, so calling it again on the same slice gives the same summary.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		if r.Service.Required {
			s.Required.Total++
			if r.Reachable {
				s.Required.OK++
			}
		} else {
			s.Optional.Total++
			if r.Reachable {
				s.Optional.OK++
			}
		}
	}

	return s
}

// Degraded reports whether any required service missed its probe.
func (s Summary) Degraded() bool {
	return s.Required.OK < s.Required.Total
}
