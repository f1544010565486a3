package buildinfo

import "runtime"

var (
	// GitCommit is set by govvv at build time.
	GitCommit = "n/a"
	// GitBranch is set by govvv at build time.
	GitBranch = "n/a"
	// GitState is set by govvv at build time.
	GitState = "n/a"
	// BuildDate is set by govvv at build time.
	BuildDate = "n/a"
	// Version is set by govvv at build time.
	Version = "n/a"
)

// Summary is the build information reported by the /version endpoint.
type Summary struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GitBranch string `json:"git_branch"`
	GitState  string `json:"git_state"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// GetSummary returns the build information of the running binary.
func GetSummary() Summary {
	return Summary{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		GitState:  GitState,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
