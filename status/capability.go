package status

// Capability reports which gather strategies this build can run.
type Capability struct {
	ConcurrentDispatch bool `json:"concurrent_dispatch"`
}

// DetectCapability is evaluated once at process start. Goroutine fan-out
// is part of every build, so concurrent dispatch is a deployment choice
// rather than a runtime discovery; the configuration may still force the
// sequential strategy.
func DetectCapability() Capability {
	return Capability{ConcurrentDispatch: true}
}
