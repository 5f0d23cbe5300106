// Package version holds build metadata stamped in by the linker.
package version

var (
	// Version is the release version, overridden at build time with
	// -ldflags "-X .../internal/version.Version=v1.2.3".
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "unknown"
)
