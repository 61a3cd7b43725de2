// Package version resolves the version string the command line tools print:
// an explicit build-time value when one was linked in, otherwise the VCS
// revision from the embedded build info.
package version

import "runtime/debug"

// Version is set at build time:
//
//	go build -ldflags "-X github.com/m8tools/m8/version.Version=$(git describe --dirty)"
var Version string

// VersionOrHash is Version when set, otherwise the short VCS revision hash,
// suffixed with -dirty when the working tree had local changes.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return vcsHash()
}()

func vcsHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified {
		revision += "-dirty"
	}
	return revision
}
