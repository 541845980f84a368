package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCurrent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"  1.2.3\n", "1.2.3"},
		{"", "dev"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Current(); got != tt.want {
			t.Errorf("Current() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyledWithoutColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"2.0.1", "2.0.1"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Styled(); got != tt.want {
			t.Errorf("Styled() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}
