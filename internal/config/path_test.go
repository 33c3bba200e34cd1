package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("ORBI_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty path", "", ""},
		{"plain path", "/tmp/orbi.db", "/tmp/orbi.db"},
		{"tilde prefix", "~/orbi/orbi.db", filepath.Join(home, "orbi", "orbi.db")},
		{"bare tilde", "~", home},
		{"environment variable", "$ORBI_TEST_DIR/orbi.db", "/var/data/orbi.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	// A tilde in the middle of a path is not expanded.
	if got := ExpandPath("/data/~backup"); strings.Contains(got, home) && home != "/" {
		t.Errorf("ExpandPath expanded a mid-path tilde: %q", got)
	}
}
