// Package buildinfo reports the version the binary was built from.
//
// Values are set at build time via ldflags, e.g.
//
//	go build -ldflags "-X github.com/taxwizard/tax-estimator/internal/buildinfo.version=v1.2.0"
package buildinfo

import (
	"runtime/debug"
)

var (
	version = ""
	commit  = ""
	date    = ""
)

// Version returns the release version.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)"
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// Commit returns the short commit hash.
// Priority: ldflags > vcs.revision > "unknown"
func Commit() string {
	if commit != "" {
		return commit
	}
	if rev := vcsSetting("vcs.revision"); rev != "" {
		if len(rev) > 7 {
			return rev[:7]
		}
		return rev
	}
	return "unknown"
}

// Date returns the build date.
// Priority: ldflags > vcs.time > "unknown"
func Date() string {
	if date != "" {
		return date
	}
	if t := vcsSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

func vcsSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
