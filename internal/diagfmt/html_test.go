package diagfmt

import "testing"

func TestANSIToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "a < b & c", "a &lt; b &amp; c"},
		{"bold red", "\x1b[31;1mx\x1b[0m", `<span style="color:#aa0000;font-weight:bold">x</span>`},
		{"specific resets", "\x1b[1;33mw\x1b[22;39m.", `<span style="color:#aa5500;font-weight:bold">w</span>.`},
		{"empty params reset", "\x1b[4mu\x1b[m!", `<span style="text-decoration:underline">u</span>!`},
		{"restyle closes span", "\x1b[36ma\x1b[34mb\x1b[0m", `<span style="color:#00aaaa">a</span><span style="color:#0000aa">b</span>`},
		{"unclosed at end", "\x1b[92mz", `<span style="color:#55ff55">z</span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ANSIToHTML(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestANSIToHTMLRejects(t *testing.T) {
	for _, in := range []string{
		"\x1b",
		"\x1bX",
		"\x1b[31",
		"\x1b[2J",
		"\x1b[38;5;1m",
	} {
		if _, err := ANSIToHTML(in); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}
