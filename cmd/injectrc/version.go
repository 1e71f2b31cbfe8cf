package main

import (
	"fmt"
	"runtime"
	runtimedebug "runtime/debug"
)

// FormatVersion renders the version report from the build info embedded in
// the binary. Untagged builds show "dev" plus the VCS revision when one was
// recorded.
func FormatVersion() string {
	version := "dev"
	revision := ""
	modified := ""

	if info, ok := runtimedebug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
				if len(revision) > 12 {
					revision = revision[:12]
				}
			case "vcs.modified":
				if s.Value == "true" {
					modified = ", modified"
				}
			}
		}
	}

	out := "injectrc " + version
	if revision != "" {
		out += fmt.Sprintf(" (%s%s)", revision, modified)
	}
	out += fmt.Sprintf("\ngo %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return out
}
