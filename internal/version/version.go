package version

import "fmt"

// Build information, overridden at release time with
// -ldflags "-X github.com/arthur-debert/wpstack/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short is the version string shown by --version.
func Short() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
