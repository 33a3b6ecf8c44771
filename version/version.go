// Package version holds build metadata of the documentary binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision(debug.ReadBuildInfo)
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String describes the build on one line, for --version output. Unset
// fields are omitted.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	parts := []string{"revision " + Revision}
	if Branch != "" {
		parts = append(parts, "branch "+Branch)
	}

	if BuildUser != "" {
		parts = append(parts, "built by "+BuildUser)
	}

	if BuildDate != "" {
		parts = append(parts, "on "+BuildDate)
	}

	return fmt.Sprintf("%s (%s, %s %s/%s)", v, strings.Join(parts, ", "), GoVersion, GoOS, GoArch)
}

func getRevision(read func() (*debug.BuildInfo, bool)) string {
	rev := "unknown"

	buildInfo, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
