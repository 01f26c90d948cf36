package main

import (
	"runtime/debug"
	"testing"
)

func TestResolveVersionPrefersStamp(t *testing.T) {
	if got := resolveVersion("v1.4.0"); got != "v1.4.0" {
		t.Errorf("resolveVersion = %q, want stamped version", got)
	}
}

func TestBuildInfoVersion(t *testing.T) {
	vcs := func(rev, modified string) []debug.BuildSetting {
		return []debug.BuildSetting{
			{Key: "vcs.revision", Value: rev},
			{Key: "vcs.modified", Value: modified},
		}
	}

	tests := []struct {
		name     string
		info     debug.BuildInfo
		expected string
	}{
		{"go install", debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}, "v0.3.1"},
		{"clean checkout", debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: vcs("0123456789abcdef", "false")}, "devel+0123456789ab"},
		{"dirty checkout", debug.BuildInfo{Settings: vcs("abc123", "true")}, "devel+abc123+dirty"},
		{"no vcs stamp", debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildInfoVersion(&tt.info, "dev"); got != tt.expected {
				t.Errorf("buildInfoVersion = %q, want %q", got, tt.expected)
			}
		})
	}
}
