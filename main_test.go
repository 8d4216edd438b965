package main

import (
	"runtime/debug"
	"testing"
)

func TestResolveVersionInfo(t *testing.T) {
	type want struct{ v, c, d string }
	tests := []struct {
		name       string
		in         want
		modVersion string
		settings   map[string]string
		want       want
	}{
		{
			name:       "ldflags win",
			in:         want{"1.0.0", "deadbeef", "2026-01-01"},
			modVersion: "v9.9.9",
			settings:   map[string]string{"vcs.revision": "ffff", "vcs.time": "later"},
			want:       want{"1.0.0", "deadbeef", "2026-01-01"},
		},
		{
			name:       "fallback to build info",
			in:         want{"dev", "none", "unknown"},
			modVersion: "v0.3.0",
			settings:   map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-10-19T00:00:00Z"},
			want:       want{"v0.3.0", "0123456789ab", "2026-10-19T00:00:00Z"},
		},
		{
			name:       "devel module keeps dev",
			in:         want{"dev", "none", "unknown"},
			modVersion: "(devel)",
			settings:   map[string]string{},
			want:       want{"dev", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.in.v, tc.in.c, tc.in.d, tc.modVersion, tc.settings)
			if got := (want{v, c, d}); got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestBuildSettingsMap(t *testing.T) {
	m := buildSettingsMap([]debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}})
	if m["vcs.revision"] != "abc" || len(m) != 1 {
		t.Fatalf("unexpected settings map: %v", m)
	}
}
