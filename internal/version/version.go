// Package version holds build metadata for the zhfmt CLI. The variables
// can be overridden at build time via -ldflags "-X zhfmt/internal/version.Version=...".
package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is a trimmed snapshot of the build metadata.
type Info struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

// Get returns the metadata, filling commit and date from the embedded
// VCS stamp when ldflags left them empty.
func Get() Info {
	info := Info{
		Version:    strings.TrimSpace(Version),
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// Colored renders "major.minor.patch-suffix" with each number in its own
// color. Anything that is not dotted is returned as is.
func Colored(v string, enabled bool) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	paint := func(c *color.Color, s string) string {
		if !enabled {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	out := paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
