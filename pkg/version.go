// Package migward provides application-wide metadata.
package migward

var (
	// Version is set by the build with ldflags.
	Version = "v0.1.0"

	// Build is a timestamp set by the build with ldflags.
	Build = "n/a"
)
