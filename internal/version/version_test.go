package version

import (
	"strings"
	"testing"
)

func TestGetUsesOverrides(t *testing.T) {
	orig := []string{Version, GitCommit, GitMessage, BuildDate}
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = orig[0], orig[1], orig[2], orig[3]
	})

	Version = " 1.2.3 "
	GitCommit = "abc123def456"
	GitMessage = "fix quotes"
	BuildDate = "2024-01-15T10:30:00Z"

	got := Get()
	want := Info{Version: "1.2.3", GitCommit: "abc123def456", GitMessage: "fix quotes", BuildDate: "2024-01-15T10:30:00Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetDefaultsVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = ""
	if got := Get().Version; got != "dev" {
		t.Errorf("Version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		want    string
	}{
		{"0.1.0-dev", false, "0.1.0-dev"},
		{"1.2.3", false, "1.2.3"},
		{"dev", true, "dev"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, tt.enabled); got != tt.want {
			t.Errorf("Colored(%q, %v) = %q, want %q", tt.in, tt.enabled, got, tt.want)
		}
	}

	got := Colored("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("expected ANSI colors, got %q", got)
	}
}
