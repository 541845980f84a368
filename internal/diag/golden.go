package diag

import (
	"fmt"
	"strings"

	"playground/internal/source"
)

// FormatShort renders diagnostics one per line in emission order:
// "<severity> <CODE> <line>:<col> <message>". Source-wide findings use "-"
// for the position. The output is stable and meant for tests and tooling.
func FormatShort(items []Diagnostic, fs *source.FileSet) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range items {
		d := &items[i]
		pos := "-"
		if fs != nil && d.Primary.IsValid() {
			start, _ := fs.Resolve(d.Primary)
			pos = fmt.Sprintf("%d:%d", start.Line, start.Col)
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity.Label(), d.Code.ID(), pos, sanitizeMessage(d.Message))
		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
