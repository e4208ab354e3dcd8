package server

// HealthCheck is one self-health probe of the index process, reported by
// the /health route. Distinct from catalog probes: this covers the index
// itself, not the services it watches.
type HealthCheck interface {
	Check() error
}

// HealthCheckFunc adapts a plain function to HealthCheck
type HealthCheckFunc func() error

// Check runs the probe
func (f HealthCheckFunc) Check() error {
	return f()
}
