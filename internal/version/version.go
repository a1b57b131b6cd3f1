package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X proctab/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String falls back to the module version recorded by `go install`.
func String() string {
	base := Version
	if base == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			base = bi.Main.Version
		}
	}
	if Commit != "" {
		base += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		base += fmt.Sprintf(" %s", Date)
	}
	return base
}
