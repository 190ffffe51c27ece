package version

import (
	"testing"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     BuildInfo
		expected string
	}{
		{
			"development build",
			BuildInfo{Version: "dev", BuildTime: "unknown", GoVersion: "go1.24.1"},
			"dev (development build, go1.24.1)",
		},
		{
			"release build",
			BuildInfo{Version: "v1.2.0", BuildTime: "2024-04-01T09:30:00Z", GitCommit: "0123456789abcdef"},
			"v1.2.0 (built 2024-04-01 09:30:00 UTC, commit 01234567)",
		},
		{
			"short commit",
			BuildInfo{Version: "v1.2.0", BuildTime: "2024-04-01T09:30:00Z", GitCommit: "abc"},
			"v1.2.0 (built 2024-04-01 09:30:00 UTC, commit abc)",
		},
		{
			"unparseable build time",
			BuildInfo{Version: "v1.2.0", BuildTime: "yesterday", GitCommit: "abc"},
			"v1.2.0 (built yesterday, commit abc)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := info(tt.info); got != tt.expected {
				t.Errorf("info() = %q; want %q", got, tt.expected)
			}
		})
	}
}
