package main

import (
	"runtime/debug"
	"strings"

	"github.com/cogciprocate/shoutit/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) cli.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if ok && info != nil {
		v, c, d = resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
	}
	return cli.BuildInfo{Version: v, Commit: c, Date: d}
}

func main() {
	cli.Execute(resolvedRuntimeVersionInfo(version, commit, date))
}
