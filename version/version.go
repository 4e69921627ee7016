// Package version holds the build metadata injected by the linker:
//
//	go build -ldflags "-X github.com/philipparndt/printplate/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the build metadata of the running binary
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get collects the build metadata
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// IsRelease reports whether the binary was built with a version set
func (i Info) IsRelease() bool {
	return i.Version != "dev"
}

// String renders the version, adding commit and build date for releases
func (i Info) String() string {
	if !i.IsRelease() {
		return i.Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.GitCommit, i.BuildDate)
}

// GetVersion returns the bare version string
func GetVersion() string {
	return Version
}
