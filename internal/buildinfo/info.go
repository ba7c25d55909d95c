// Package buildinfo holds release metadata stamped in at build time.
package buildinfo

// Overridden via -ldflags "-X ..." by the release build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
