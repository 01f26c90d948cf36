// Command tl is a local, single-user to-do list manager with a terminal
// board and a scriptable CLI. Tasks live in .todos/ next to the project.
package main

import (
	"runtime/debug"

	"github.com/marcus/tasklist/cmd"
)

// Version is stamped at release time with -ldflags "-X main.Version=v1.2.3"
var Version = "dev"

// resolveVersion prefers a stamped version, then the build info of the binary
func resolveVersion(stamped string) string {
	if stamped != "" && stamped != "dev" {
		return stamped
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return stamped
	}
	return buildInfoVersion(info, stamped)
}

// buildInfoVersion returns the module version for go install builds, or
// devel+<rev>[+dirty] for builds from a checkout.
func buildInfoVersion(info *debug.BuildInfo, fallback string) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	vcs := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		vcs[s.Key] = s.Value
	}
	rev := vcs["vcs.revision"]
	if rev == "" {
		return fallback
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	v := "devel+" + rev
	if vcs["vcs.modified"] == "true" {
		v += "+dirty"
	}
	return v
}

func main() {
	cmd.SetVersion(resolveVersion(Version))
	cmd.Execute()
}
