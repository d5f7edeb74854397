// Package version exposes build metadata for the launchgen binary.
package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/launchgen/internal/version.Version=v1.0.0".
var Version = "unknown"

// Additional build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return fmt.Sprintf("launchgen %s", Version)
	}
	return fmt.Sprintf("launchgen %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
