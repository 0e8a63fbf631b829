// Package version reports the LuxOS build version. Values can be injected
// at build time with -ldflags "-X luxos/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version of the build.
	Version = "0.3.0"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

// releaseNames maps minor releases to names on a brightness scale.
var releaseNames = map[string]string{
	"0.1.0": "Ember",
	"0.2.0": "Candle",
	"0.3.0": "Lantern",
	"0.4.0": "Beacon",
	"0.5.0": "Flare",
	"1.0.0": "Nova",
}

// Info describes a build.
type Info struct {
	Version   string          `json:"version"`
	Codename  string          `json:"codename"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetVersion returns the version string.
func GetVersion() string {
	return Version
}

// GetCodename returns the release name of the current version.
func GetCodename() string {
	return GetCodenameForVersion(Version)
}

// GetCodenameForVersion returns the release name for version. Patch and
// prerelease versions share the name of their major.minor.0 release.
func GetCodenameForVersion(version string) string {
	sv, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	return releaseNames[fmt.Sprintf("%d.%d.0", sv.Major(), sv.Minor())]
}

// GetBaseVersion returns major.minor.patch without prerelease or metadata.
func GetBaseVersion() string {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return Version
	}
	return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
}

// GetCommitCount returns the commit count encoded as the first build
// metadata field, as in 0.3.0+42.abc1234.
func GetCommitCount() int {
	sv, err := semver.NewVersion(Version)
	if err != nil || sv.Metadata() == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.SplitN(sv.Metadata(), ".", 2)[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// GetInfo returns the build description.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		Codename:  GetCodename(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// GetFormattedVersion returns a one-line version string.
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("LuxOS v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("LuxOS v%s", info.Version)}
	if info.Codename != "" {
		parts[0] += fmt.Sprintf(" '%s'", info.Codename)
	}
	if info.GitCommit != "unknown" && info.GitCommit != "" {
		commit := info.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit "+commit)
	}
	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns a multi-line build description.
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("LuxOS v%s (error: %v)", Version, err)
	}

	lines := []string{GetFormattedVersion()}
	if info.Codename != "" {
		lines = append(lines, "Release: "+info.Codename)
	}
	lines = append(lines,
		"Git Commit: "+info.GitCommit,
		"Build Date: "+info.BuildDate,
	)
	if n := GetCommitCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("Commit Count: %d", n))
	}
	lines = append(lines,
		"Go Version: "+info.GoVersion,
		"Platform: "+info.Platform,
	)
	return strings.Join(lines, "\n")
}

// IsPrerelease reports whether the version carries a prerelease tag.
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// SetBuildInfo overrides the build variables.
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}
