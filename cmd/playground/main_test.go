package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI in-process. Persistent flags keep their values between
// runs, so every call spells out the flags it relies on.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	stopSession()
	return out.String(), errOut.String(), err
}

func TestRunFromStdin(t *testing.T) {
	out, errOut, err := execute(t, "let y = 1; 40 + 2", "run", "--mode", "plain", "--format", "text", "-")
	if err != nil {
		t.Fatal(err)
	}
	if out != "42\n" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "warning SEM3003") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestRunJSONFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tb")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "dis", "--mode", "plain", "--format", "json", path)
	if !errors.Is(err, errFindings) {
		t.Fatalf("err = %v, want errFindings", err)
	}
	if !strings.HasPrefix(out, `{"result":null,"diagnostics":"[1:1-1:2] error SEM3001: cannot find name 'x'`) {
		t.Fatalf("stdout = %q", out)
	}
}

func TestConfigFileIsDiscovered(t *testing.T) {
	dir := t.TempDir()
	cfg := "[pipeline]\nast_policy = \"lenient\"\n"
	if err := os.WriteFile(filepath.Join(dir, "playground.toml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "bad.tb")
	if err := os.WriteFile(path, []byte("1 / 0"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, errOut, err := execute(t, "", "ast", "--mode", "plain", "--format", "text", path)
	if !errors.Is(err, errFindings) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(out, "File (span: 1:1-1:6)") {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "SEM3005") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestReadOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want outputFormat
		ok   bool
	}{
		{"", formatText, true},
		{"JSON", formatJSON, true},
		{"msgpack", formatMsgpack, true},
		{"yaml", "", false},
	}
	for _, tt := range tests {
		got, err := readOutputFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("readOutputFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestDisplayPath(t *testing.T) {
	base := filepath.Join("root", "progs")
	if got := displayPath(base, filepath.Join(base, "a", "b.tb")); got != filepath.Join("a", "b.tb") {
		t.Errorf("displayPath = %q", got)
	}
	other := filepath.Join("elsewhere", "c.tb")
	if got := displayPath(base, other); got != other {
		t.Errorf("displayPath = %q", got)
	}
}

func TestCacheDirFollowsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	out, _, err := execute(t, "", "cache", "dir")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(base, cacheApp) + "\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	if _, _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
}

func TestStdinIsNormalisedLikeFiles(t *testing.T) {
	raw := "\xEF\xBB\xBFlet _a = 1;\r\nx"
	dir := t.TempDir()
	path := filepath.Join(dir, "in.tb")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	fromFile, _, err := execute(t, "", "dis", "--mode", "plain", "--format", "json", path)
	if !errors.Is(err, errFindings) {
		t.Fatalf("file: err = %v", err)
	}
	fromStdin, _, err := execute(t, raw, "dis", "--mode", "plain", "--format", "json", "-")
	if !errors.Is(err, errFindings) {
		t.Fatalf("stdin: err = %v", err)
	}
	if fromStdin != fromFile || !strings.Contains(fromStdin, "[2:1-2:2] error SEM3001") {
		t.Fatalf("stdin %q\nfile  %q", fromStdin, fromFile)
	}
}
