// Package version reports the build identity of a binary
package version

import "runtime/debug"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X servicegeek/internal/core/version.version=v0.1.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Info returns the build information for service
// without an ldflags commit it falls back to the vcs stamp of the build
func Info(service string) BuildInfo {
	c := commit
	if c == "" {
		c = vcsRevision()
	}
	return BuildInfo{Service: service, Version: version, Commit: c, Date: date}
}

func vcsRevision() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "none"
}
