// Package buildinfo holds the version stamped into the wellmap binary.
//
//	go build -ldflags "-X github.com/wellmap/wellmap/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/wellmap/wellmap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/wellmap/wellmap/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" ./cmd/wellmap
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install` when no ldflags were given.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String returns a multi-line summary for `wellmap --version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Resolved(), Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Resolved(), Commit, Date)
}
