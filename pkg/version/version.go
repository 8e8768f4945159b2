// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set during build time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GoVersion = runtime.Version()
)

// Info returns a map with all version information.
func Info() map[string]string {
	return map[string]string{
		"version":   Version,
		"buildTime": BuildTime,
		"gitCommit": GitCommit,
		"goVersion": GoVersion,
	}
}

// String returns a single-line version summary suitable for --version output.
func String() string {
	return fmt.Sprintf("mindcore %s (commit %s, built %s, %s)", Version, GitCommit, BuildTime, GoVersion)
}
