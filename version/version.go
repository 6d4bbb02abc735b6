package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the build metadata served on /version.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Release   bool   `json:"release"`
	Dirty     bool   `json:"dirty"`
}

// Get assembles the build info, filling gaps from the metadata the Go
// toolchain embeds.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		Release:   Version != "dev",
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" && len(s.Value) >= 7 {
				info.Commit = s.Value[:7]
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// Short renders "version-commit", with a dirty marker when the working tree
// was modified at build time.
func Short() string {
	info := Get()
	s := info.Version
	if info.Commit != "" {
		s += "-" + info.Commit
	}
	if info.Dirty {
		s += "-dirty"
	}
	return s
}

// Full renders the short version plus the build time, for -version output.
func Full() string {
	s := Short()
	if info := Get(); info.BuildTime != "" {
		s += fmt.Sprintf(" (built %s)", info.BuildTime)
	}
	return s
}
