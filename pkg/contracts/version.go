// Package contracts carries the cross-cutting contracts of the module: the
// canonical domain records and the build version surface.
package contracts

import (
	"fmt"
	"runtime"
)

// Version is the current version of the application.
const Version = "0.1.0"

var (
	// BuildTime is set during build using ldflags.
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags.
	GitCommit = "unknown"
)

// VersionString returns the one-line version banner printed by the binaries.
func VersionString() string {
	return fmt.Sprintf("OTE market data extractor v%s (built: %s, commit: %s, go: %s, %s/%s)",
		Version, BuildTime, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
