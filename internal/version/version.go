// Package version holds build metadata for the geocoord binary, injected via ldflags:
//
//	-X github.com/kailas-cloud/geocoord/internal/version.Version=v0.3.0
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
