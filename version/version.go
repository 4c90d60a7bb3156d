package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// Product prefixes the User-Agent of outbound provider calls.
const Product = "traduckxion"

// Set with -ldflags -X.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
	Release   bool   `json:"release"`
}

var (
	once   sync.Once
	cached Info
)

// Get returns the build information, read once per process.
func Get() Info {
	once.Do(func() { cached = read(Version, Commit, BuildTime, readBuildInfo) })
	return cached
}

func readBuildInfo() (*debug.BuildInfo, bool) { return debug.ReadBuildInfo() }

func read(v, commit, built string, buildInfo func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: v, Commit: commit, BuildTime: built}
	if bi, ok := buildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	info.Release = info.Version != "dev" && !info.Dirty
	return info
}

// Short is the version plus abbreviated commit, as shown on /health.
func (i Info) Short() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// String is the one-line form printed by the version command.
func (i Info) String() string {
	parts := []string{Product, i.Short()}
	if i.GoVersion != "" {
		parts = append(parts, i.GoVersion)
	}
	if i.BuildTime != "" {
		parts = append(parts, fmt.Sprintf("(built %s)", i.BuildTime))
	}
	return strings.Join(parts, " ")
}

// UserAgent identifies this build to provider APIs.
func UserAgent() string {
	return Product + "/" + Get().Version
}
