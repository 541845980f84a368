package diag

import (
	"fmt"
	"strings"
)

// Tally counts findings by severity class. It is derived from a batch of
// diagnostics and never stored alongside them.
type Tally struct {
	Info     int
	Warnings int
	Errors   int
}

// Aggregate classifies every message and decides whether the pipeline must
// stop before execution: only error-class findings abort, warnings and info
// never do.
func Aggregate(items []Diagnostic) (Tally, bool) {
	var t Tally
	for i := range items {
		switch sev := items[i].Severity; {
		case sev.IsError():
			t.Errors++
		case sev == SevInfo:
			t.Info++
		default:
			t.Warnings++
		}
	}
	return t, t.Errors > 0
}

// Total returns the number of counted findings.
func (t Tally) Total() int {
	return t.Info + t.Warnings + t.Errors
}

// Summary renders the trailing report line, e.g.
// "1 message (0 info, 1 warning, 0 errors)".
func (t Tally) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s (%d info, %d %s, %d %s)",
		t.Total(), plural(t.Total(), "message"),
		t.Info,
		t.Warnings, plural(t.Warnings, "warning"),
		t.Errors, plural(t.Errors, "error"),
	)
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
