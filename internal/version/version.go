// Package version reports the bridge's version and build provenance.
package version

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Release builds inject these via
//
//	go build -ldflags "-X github.com/dariusconca170-prog/turboget-bridge/internal/version.gitCommit=VALUE"
//
// go install builds fall back to debug.ReadBuildInfo instead.
var (
	gitCommit string
	buildDate string
)

// Info is a snapshot of version and build metadata.
type Info struct {
	// Version is the semantic version from the embedded VERSION file.
	Version string

	// GitCommit is the short commit hash, suffixed "-dirty" for modified trees.
	GitCommit string

	// BuildDate is an ISO 8601 timestamp, or "unknown" when not injected.
	BuildDate string
}

// String renders Info as the multi-line block printed by the version command.
func (i Info) String() string {
	return fmt.Sprintf("Version:    %s\nGit Commit: %s\nBuild Date: %s",
		i.Version, i.GitCommit, i.BuildDate)
}

// Get collects the version, commit, and build date for this binary.
func Get() Info {
	return Info{
		Version:   getVersion(),
		GitCommit: getGitCommit(),
		BuildDate: getBuildDate(),
	}
}

func getVersion() string {
	return strings.TrimSpace(versionFile)
}

// getGitCommit prefers the linker-injected hash, then VCS build info,
// then "unknown".
func getGitCommit() string {
	if gitCommit != "" {
		return gitCommit
	}

	revision, dirty := readBuildInfo()
	if revision != "" {
		if dirty {
			return revision + "-dirty"
		}
		return revision
	}

	return "unknown"
}

func getBuildDate() string {
	if buildDate != "" {
		return buildDate
	}
	return "unknown"
}

// readBuildInfo pulls the VCS revision (shortened to 7 characters) and dirty
// flag out of debug.ReadBuildInfo.
func readBuildInfo() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return revision, dirty
}
