package buildinfo

import "runtime"

var (
	// branch contains the current Git revision. Use make to build to make
	// sure this gets set.
	branch string

	// buildDate contains the date of the current build.
	buildDate string

	// version contains the version being built.
	version string

	// repo contains the repository name.
	repo string
)

// BuildInfo contains information about the current build
type BuildInfo struct {
	Name      string `json:"name,omitempty"`
	Version   string `json:"version,omitempty"`
	Branch    string `json:"branch,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Repo      string `json:"repo,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// GetBuildInfo returns build info data
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   version,
		Branch:    branch,
		BuildDate: buildDate,
		Repo:      repo,
		GoVersion: runtime.Version(),
	}
}
