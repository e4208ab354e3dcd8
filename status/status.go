package status

import "time"

// Descriptor identifies one upstream service of the gateway deployment.
type Descriptor struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	URL      string `json:"url" yaml:"url" validate:"required,url"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Required bool   `json:"required" yaml:"required"`
}

// CheckResult is the outcome of probing a single service.
type CheckResult struct {
	Service   Descriptor     `json:"service"`
	Reachable bool           `json:"reachable"`
	Latency   *time.Duration `json:"latency,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// ModelsResult is the outcome of the model inventory probe.
type ModelsResult struct {
	Models  []string       `json:"models"`
	Latency *time.Duration `json:"latency,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Tally counts how many services of one class responded.
type Tally struct {
	OK    int `json:"ok"`
	Total int `json:"total"`
}

// Summary holds per-class tallies of a gather cycle.
type Summary struct {
	Required Tally `json:"required"`
	Optional Tally `json:"optional"`
}

// Snapshot is the complete outcome of one gather cycle over the catalog.
// Results keep the catalog order, one entry per descriptor.
type Snapshot struct {
	Results    []CheckResult `json:"results"`
	Models     ModelsResult  `json:"models"`
	Summary    Summary       `json:"summary"`
	CapturedAt time.Time     `json:"captured_at"`
}
