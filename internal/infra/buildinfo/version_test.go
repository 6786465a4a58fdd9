package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	tests := []struct {
		name  string
		value string
	}{
		{"Version", info.Version},
		{"Commit", info.Commit},
		{"BuildTime", info.BuildTime},
		{"GoVersion", info.GoVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
		})
	}
}

func TestString(t *testing.T) {
	info := Get()
	want := info.Version + " (" + info.Commit + ") built at " + info.BuildTime
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	embedded := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.25.0",
			Main:      debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123abcd"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}

	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		read      func() (*debug.BuildInfo, bool)
		want      Info
	}{
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "feedface", buildTime: "today",
			read: embedded,
			want: Info{Version: "v1.0.0", Commit: "feedface", BuildTime: "today", GoVersion: "go1.25.0"},
		},
		{
			name:    "embedded fills defaults",
			version: "dev", commit: "unknown", buildTime: "unknown",
			read: embedded,
			want: Info{Version: "v0.3.1", Commit: "0123abcd", BuildTime: "2026-01-02T03:04:05Z", GoVersion: "go1.25.0"},
		},
		{
			name:    "devel main version ignored",
			version: "dev", commit: "unknown", buildTime: "unknown",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{GoVersion: "go1.25.0", Main: debug.Module{Version: "(devel)"}}, true
			},
			want: Info{Version: "dev", Commit: "unknown", BuildTime: "unknown", GoVersion: "go1.25.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve(tt.version, tt.commit, tt.buildTime, tt.read)
			if got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolve_NoBuildInfo(t *testing.T) {
	got := resolve("dev", "unknown", "unknown", func() (*debug.BuildInfo, bool) { return nil, false })
	if got.Version != "dev" || got.Commit != "unknown" {
		t.Errorf("resolve() = %+v, want defaults kept", got)
	}
	if !strings.HasPrefix(got.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want runtime version", got.GoVersion)
	}
}
