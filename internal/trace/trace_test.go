package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	outer := Begin(tr, ScopeDriver, "driver.interpret", 0)
	inner := Begin(tr, ScopePass, "sema.names", outer.ID())
	detail := Begin(tr, ScopeDetail, "vm.run", inner.ID())
	detail.End("")
	inner.End("1 finding")
	outer.End("")

	out := buf.String()
	for _, want := range []string{"→ driver.interpret", "→ sema.names", "← sema.names (1 finding)", "← driver.interpret"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "vm.run") {
		t.Errorf("detail span leaked at phase level:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopePass, "parse", 0).WithExtra("tokens", "3").End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"kind":"end"`) || !strings.Contains(lines[1], `"extra":{"tokens":"3"}`) {
		t.Errorf("unexpected end event: %s", lines[1])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "bcd" {
		t.Errorf("got %q, want bcd", got)
	}
}

func TestNopSpanStillMeasures(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 {
		t.Errorf("nop span must have no id")
	}
	if sp.End("") < 0 {
		t.Errorf("negative duration")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected an error")
	}
}
