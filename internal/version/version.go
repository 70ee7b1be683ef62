// Package version holds build metadata for swatch, set at link time:
//
//	go build -ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=x.y.z \
//	  -X github.com/jmylchreest/swatch/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/swatch/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

const unknown = "unknown"

var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Info describes the running build. It is reported by "swatch version"
// and GET /version.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build information of this binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// Stamped reports whether commit and date were set at link time.
func (i Info) Stamped() bool {
	return i.Commit != unknown && i.Date != unknown
}

func (i Info) String() string {
	if !i.Stamped() {
		return fmt.Sprintf("swatch version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
		i.Version, i.ShortCommit(), i.Date, i.GoVersion, i.Platform)
}

// String returns the one-line description of this build.
func String() string {
	return GetInfo().String()
}

// Short returns the bare version for cobra's --version.
func Short() string {
	return Version
}
